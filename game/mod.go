package game

type StateHash uint64

// State should be immutable - Play always returns a new state and leaves the
// receiver untouched.
type State interface {
	Player() Team
	LegalActions() []Action
	Play(Action) (State, error)
	Result() Result
	Hash() StateHash
}

// Evaluate scores a state between -1 and 1 for how favorable it is to team.
type Evaluate func(state State, team Team) float64

// Policy picks one of the given actions. It is never called with an empty slice.
type Policy func(actions []Action) Action
