package gamemaster

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"hive/game"
)

var ErrGameOver = errors.New("game is over")

type Update struct {
	Action game.Action
	State  *game.GameState
}

// UpdateGetter returns the oldest update its caller has not seen yet. It
// never blocks: false means nothing new has been played.
type UpdateGetter func() (Update, bool)

type Engine interface {
	Init() (*game.GameState, UpdateGetter)
	Play(game.Action) error
}

// localEngine holds the authoritative state of one game and only lets legal
// actions through. It is safe for concurrent use.
type localEngine struct {
	mu      sync.Mutex
	state   *game.GameState
	updates []Update
}

func NewLocalEngine(rules game.Rules) *localEngine {
	return &localEngine{state: game.NewGameState(rules)}
}

// ResumeLocalEngine continues a game from a snapshot.
func ResumeLocalEngine(snapshot game.Snapshot, rules game.Rules) (*localEngine, error) {
	state, err := game.FromSnapshot(snapshot, rules)
	if err != nil {
		return nil, fmt.Errorf("resuming game: %w", err)
	}
	return &localEngine{state: state}, nil
}

// Init returns the current state and a getter for the updates that follow.
func (e *localEngine) Init() (*game.GameState, UpdateGetter) {
	e.mu.Lock()
	defer e.mu.Unlock()

	seen := len(e.updates)
	return e.state, func() (Update, bool) {
		e.mu.Lock()
		defer e.mu.Unlock()

		if seen >= len(e.updates) {
			return Update{}, false
		}
		u := e.updates[seen]
		seen++
		return u, true
	}
}

func (e *localEngine) Play(action game.Action) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrGameOver, e.state.Result())
	}

	next, err := e.state.Apply(action)
	if err != nil {
		return err
	}
	e.state = next
	e.updates = append(e.updates, Update{Action: action, State: next})

	log.Debug().Int("turn", next.Turn()).Stringer("action", action).Msg("played")
	if next.IsTerminal() {
		log.Info().Msgf("game over after %d turns: %s", next.Turn(), next.Result())
	}
	return nil
}

func (e *localEngine) State() *game.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// Options answers a destination query against the current state.
func (e *localEngine) Options(query game.Query) []game.Hex {
	return game.Destinations(e.State(), query)
}

func (e *localEngine) Snapshot() game.Snapshot {
	return e.State().Snapshot()
}

// History returns every update played so far.
func (e *localEngine) History() []Update {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]Update(nil), e.updates...)
}
