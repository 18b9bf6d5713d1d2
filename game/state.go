package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sync"

	"hive/utils"
)

// GameState is one position of a game. It is never modified after
// construction; Apply derives a new state and shares unchanged stacks.
type GameState struct {
	hive    *Hive
	turn    int
	reserve [NumTeams][NumInsects]int
	rules   Rules
	result  Result

	once    sync.Once
	actions []Action
}

// NewGameState returns an empty board with full reserves on turn 0.
func NewGameState(rules Rules) *GameState {
	s := &GameState{hive: NewHive(), rules: rules}
	for team := range s.reserve {
		s.reserve[team] = rules.Multiplicity
	}
	return s
}

// Player returns the team to act. White moves on even turns.
func (s *GameState) Player() Team {
	return Team(s.turn % 2)
}

func (s *GameState) Turn() int {
	return s.turn
}

func (s *GameState) Rules() Rules {
	return s.rules
}

// Hive returns a copy of the board.
func (s *GameState) Hive() *Hive {
	return s.hive.Clone()
}

// Reserve returns how many stones of insect team still has to drop.
func (s *GameState) Reserve(team Team, insect Insect) int {
	return s.reserve[team][insect]
}

// Availables lists every stone not yet on the board, white first.
func (s *GameState) Availables() []Stone {
	var stones []Stone
	for team, counts := range s.reserve {
		for insect, count := range counts {
			for i := 0; i < count; i++ {
				stones = append(stones, Stone{Insect: Insect(insect), Team: Team(team)})
			}
		}
	}
	return stones
}

func (s *GameState) QueenPlaced(team Team) bool {
	return s.reserve[team][Queen] == 0
}

func (s *GameState) Result() Result {
	return s.result
}

func (s *GameState) IsTerminal() bool {
	return s.result != Ongoing
}

// LegalActions returns the actions the current team may take. The set is
// computed once per state; the returned slice is the caller's to modify.
func (s *GameState) LegalActions() []Action {
	s.once.Do(func() {
		s.actions = s.generateActions()
	})
	return append([]Action(nil), s.actions...)
}

func (s *GameState) generateActions() []Action {
	if s.IsTerminal() {
		return nil
	}

	team := s.Player()
	var actions []Action
	switch {
	case s.turn == 0 && s.hive.Len() == 0:
		actions = s.drops(team, []Hex{Origin}, s.insects(team))
	case s.turn == 1 && s.hive.Len() == 1 && s.hive.IsOccupied(Origin):
		actions = s.drops(team, []Hex{Origin.Neighbor(2)}, s.insects(team))
	case s.turn >= s.rules.QueenDeadline && !s.QueenPlaced(team):
		actions = s.drops(team, s.hive.GenerateDrops(team), []Insect{Queen})
	default:
		actions = s.drops(team, s.hive.GenerateDrops(team), s.insects(team))
		if s.QueenPlaced(team) {
			for _, move := range s.hive.GenerateMoves(team) {
				actions = append(actions, move)
			}
		}
	}

	if len(actions) == 0 {
		return []Action{Pass{}}
	}
	return actions
}

// insects returns the kinds team still holds, in insect order.
func (s *GameState) insects(team Team) []Insect {
	var insects []Insect
	for insect, count := range s.reserve[team] {
		if count > 0 {
			insects = append(insects, Insect(insect))
		}
	}
	return insects
}

func (s *GameState) drops(team Team, hexes []Hex, insects []Insect) []Action {
	actions := make([]Action, 0, len(hexes)*len(insects))
	for _, hex := range hexes {
		for _, insect := range insects {
			if s.reserve[team][insect] == 0 {
				continue
			}
			actions = append(actions, Drop{Stone: Stone{Insect: insect, Team: team}, Destination: hex})
		}
	}
	return actions
}

// Apply returns the state after action. Actions outside LegalActions are
// rejected with ErrIllegalAction.
func (s *GameState) Apply(action Action) (*GameState, error) {
	s.once.Do(func() {
		s.actions = s.generateActions()
	})
	if utils.FindIndex(s.actions, action) < 0 {
		return nil, fmt.Errorf("%w: %v on turn %d", ErrIllegalAction, action, s.turn)
	}

	next := &GameState{
		hive:    s.hive,
		turn:    s.turn + 1,
		reserve: s.reserve,
		rules:   s.rules,
	}

	switch action := action.(type) {
	case Move:
		next.hive = s.hive.Clone()
		stone, err := next.hive.RemoveTop(action.Origin)
		if err != nil {
			return nil, err
		}
		if err := next.hive.Place(action.Destination, stone); err != nil {
			return nil, err
		}
	case Drop:
		next.hive = s.hive.Clone()
		if err := next.hive.Place(action.Destination, action.Stone); err != nil {
			return nil, err
		}
		next.reserve[action.Stone.Team][action.Stone.Insect]--
	case Pass:
	default:
		return nil, fmt.Errorf("%w: unknown action %T", ErrIllegalAction, action)
	}

	next.result = next.hive.Result()
	return next, nil
}

// Play implements State.
func (s *GameState) Play(action Action) (State, error) {
	next, err := s.Apply(action)
	if err != nil {
		return nil, err
	}
	return next, nil
}

// Children returns the successor of every legal action, in LegalActions order.
func (s *GameState) Children() []*GameState {
	actions := s.LegalActions()
	children := make([]*GameState, 0, len(actions))
	for _, action := range actions {
		child, err := s.Apply(action)
		if err != nil {
			panic(fmt.Sprintf("legal action %v failed: %v", action, err))
		}
		children = append(children, child)
	}
	return children
}

// Advance applies the action chosen by policy.
func (s *GameState) Advance(policy Policy) (*GameState, error) {
	actions := s.LegalActions()
	if len(actions) == 0 {
		return nil, fmt.Errorf("%w: game is over (%s)", ErrIllegalAction, s.result)
	}
	return s.Apply(policy(actions))
}

func (s *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(s.turn))

	for _, counts := range s.reserve {
		for _, count := range counts {
			binary.Write(hasher, binary.LittleEndian, int64(count))
		}
	}

	for _, hex := range s.hive.Hexes() {
		binary.Write(hasher, binary.LittleEndian, int64(hex.Q))
		binary.Write(hasher, binary.LittleEndian, int64(hex.R))
		binary.Write(hasher, binary.LittleEndian, int64(s.hive.Height(hex)))
		for _, stone := range s.hive.stacks[hex] {
			binary.Write(hasher, binary.LittleEndian, int64(stone.Insect))
			binary.Write(hasher, binary.LittleEndian, int64(stone.Team))
		}
	}

	return StateHash(hasher.Sum64())
}

func (s *GameState) String() string {
	return fmt.Sprintf("turn %d, %s to act, %d stones on board, %s", s.turn, s.Player(), s.hive.Len(), s.result)
}
