// meta/meta.go
package meta

// Goroutines defines the number of goroutines to use.
const Goroutines = 4

// Episodes defines the number of episodes for MCTS.
const Episodes = 400

// Cutoff defines the rollout cutoff for MCTS.
const Cutoff = 100

// Exploration defines the UCB1 exploration constant.
const Exploration = 1.4

// Depth defines the alpha-beta search depth.
const Depth = 2

// MaxTurns defines the number of turns after which a game is a draw.
const MaxTurns = 300
