package game

import "golang.org/x/exp/rand"

// NewRandomPolicy picks uniformly at random from a generator seeded with seed.
// The returned policy is not safe for concurrent use.
func NewRandomPolicy(seed uint64) Policy {
	rng := rand.New(rand.NewSource(seed))
	return func(actions []Action) Action {
		return actions[rng.Intn(len(actions))]
	}
}

// FirstPolicy always picks the first action.
func FirstPolicy(actions []Action) Action {
	return actions[0]
}
