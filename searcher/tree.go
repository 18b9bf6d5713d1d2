package searcher

import (
	"context"
	"errors"
	"fmt"

	"hive/experiments/metrics"
	"hive/game"
	"hive/utils"
)

var (
	// ErrNoUntriedActions is returned when expanding a fully expanded node.
	ErrNoUntriedActions = errors.New("no untried actions")
	// ErrUnvisitedChild is returned when selecting among children that have not all been visited.
	ErrUnvisitedChild = errors.New("unvisited child")
)

// NodeID indexes a node in its tree.
type NodeID int

const noParent NodeID = -1

type node struct {
	state    game.State
	action   game.Action // Action taken from the parent, nil at the root
	parent   NodeID
	children []NodeID
	untried  []game.Action
	visits   int
	tally    [game.NumResults]int
}

// Tree is a search tree stored as an arena: nodes refer to each other by
// index, the parent index is only used to walk back up.
type Tree struct {
	nodes       []node
	policy      game.Policy
	cutoff      int
	exploration float64
	metrics     metrics.Collector
}

// NewTree roots a tree at state. Rollouts follow policy and are scored as a
// draw after cutoff moves.
func NewTree(state game.State, policy game.Policy, cutoff int, exploration float64) *Tree {
	t := &Tree{
		policy:      policy,
		cutoff:      cutoff,
		exploration: exploration,
		metrics:     metrics.NewDummyCollector(),
	}
	t.add(state, nil, noParent)
	return t
}

func (t *Tree) add(state game.State, action game.Action, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		state:   state,
		action:  action,
		parent:  parent,
		untried: state.LegalActions(),
	})
	if parent != noParent {
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}
	return id
}

func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) State(id NodeID) game.State {
	return t.nodes[id].state
}

func (t *Tree) Action(id NodeID) game.Action {
	return t.nodes[id].action
}

func (t *Tree) Parent(id NodeID) NodeID {
	return t.nodes[id].parent
}

func (t *Tree) Children(id NodeID) []NodeID {
	return append([]NodeID(nil), t.nodes[id].children...)
}

func (t *Tree) Visits(id NodeID) int {
	return t.nodes[id].visits
}

// Tally returns how many playouts through id ended with result.
func (t *Tree) Tally(id NodeID, result game.Result) int {
	return t.nodes[id].tally[result]
}

func (t *Tree) IsFullyExpanded(id NodeID) bool {
	return len(t.nodes[id].untried) == 0
}

func (t *Tree) IsTerminal(id NodeID) bool {
	return t.nodes[id].state.Result() != game.Ongoing
}

// Expand applies the last untried action of id and attaches the new child.
func (t *Tree) Expand(id NodeID) (NodeID, error) {
	n := &t.nodes[id]
	if len(n.untried) == 0 {
		return 0, ErrNoUntriedActions
	}
	action := n.untried[len(n.untried)-1]
	n.untried = n.untried[:len(n.untried)-1]

	state, err := n.state.Play(action)
	if err != nil {
		return 0, fmt.Errorf("expanding %v: %w", action, err)
	}
	return t.add(state, action, id), nil
}

// Rollout plays from id with the rollout policy until the game ends. A game
// still going after cutoff moves is a draw.
func (t *Tree) Rollout(id NodeID) (game.Result, error) {
	state := t.nodes[id].state
	for depth := 0; depth < t.cutoff; depth++ {
		if result := state.Result(); result != game.Ongoing {
			t.metrics.AddFullPlayout()
			return result, nil
		}
		actions := state.LegalActions()
		if len(actions) == 0 {
			return game.Draw, nil
		}
		next, err := state.Play(t.policy(actions))
		if err != nil {
			return game.Draw, fmt.Errorf("rollout at depth %d: %w", depth, err)
		}
		state = next
	}
	if result := state.Result(); result != game.Ongoing {
		t.metrics.AddFullPlayout()
		return result, nil
	}
	return game.Draw, nil
}

// Backpropagate records result on id and all of its ancestors.
func (t *Tree) Backpropagate(id NodeID, result game.Result) {
	for id != noParent {
		n := &t.nodes[id]
		n.visits++
		n.tally[result]++
		id = n.parent
	}
}

// SelectBestChild returns the child of id with the highest UCB1 score for
// the team acting at id. The first child wins ties.
func (t *Tree) SelectBestChild(id NodeID, exploration float64) (NodeID, error) {
	n := t.nodes[id]
	if len(n.children) == 0 {
		return 0, fmt.Errorf("%w: node %d has no children", ErrUnvisitedChild, id)
	}
	for _, child := range n.children {
		if t.nodes[child].visits == 0 {
			return 0, fmt.Errorf("%w: node %d", ErrUnvisitedChild, child)
		}
	}

	policy := newUCT(cSquared(exploration), float64(n.visits))
	team := n.state.Player()
	best := utils.ArgMax(n.children, func(child NodeID) float64 {
		c := t.nodes[child]
		q := c.tally[game.WinFor(team)] - c.tally[game.WinFor(team.Opponent())]
		return policy.evaluate(float64(q), float64(c.visits))
	})
	return n.children[best], nil
}

// Run performs iterations rounds of selection, expansion, rollout and
// backpropagation. It stops early once ctx is done and reports the number of
// completed rounds.
func (t *Tree) Run(ctx context.Context, iterations int) (int, error) {
	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := t.iterate(); err != nil {
			return i, err
		}
	}
	return iterations, nil
}

func (t *Tree) iterate() error {
	id := t.Root()
	for !t.IsTerminal(id) && t.IsFullyExpanded(id) && len(t.nodes[id].children) > 0 {
		child, err := t.SelectBestChild(id, t.exploration)
		if err != nil {
			return err
		}
		id = child
	}

	if !t.IsTerminal(id) && !t.IsFullyExpanded(id) {
		child, err := t.Expand(id)
		if err != nil {
			return err
		}
		id = child
	}

	result, err := t.Rollout(id)
	if err != nil {
		return err
	}
	t.Backpropagate(id, result)
	t.metrics.AddEpisode()
	return nil
}

// Visit is the search statistic of one root action.
type Visit struct {
	Action game.Action
	Visits int
	// Value is the mean outcome for the team acting at the root, from -1 to 1.
	Value float64
}

// Policy returns the statistics of the root's children in expansion order.
func (t *Tree) Policy() []Visit {
	root := t.nodes[t.Root()]
	team := root.state.Player()
	visits := make([]Visit, 0, len(root.children))
	for _, id := range root.children {
		c := t.nodes[id]
		value := 0.0
		if c.visits > 0 {
			q := c.tally[game.WinFor(team)] - c.tally[game.WinFor(team.Opponent())]
			value = float64(q) / float64(c.visits)
		}
		visits = append(visits, Visit{Action: c.action, Visits: c.visits, Value: value})
	}
	return visits
}

// BestAction returns the action of the most visited root child. Without any
// children it falls back to the first legal action, or nil if there is none.
func (t *Tree) BestAction() game.Action {
	return robustChild(t.Policy(), t.nodes[t.Root()].state)
}

func robustChild(policy []Visit, state game.State) game.Action {
	best := utils.ArgMax(policy, func(v Visit) float64 { return float64(v.Visits) })
	if best >= 0 && policy[best].Visits > 0 {
		return policy[best].Action
	}
	actions := state.LegalActions()
	if len(actions) == 0 {
		return nil
	}
	return game.FirstPolicy(actions)
}

// BestAction searches state for iterations rounds on a single tree.
func BestAction(ctx context.Context, state game.State, iterations int, policy game.Policy) (game.Action, error) {
	tree := NewTree(state, policy, MaxCutoff, Exploration)
	_, err := tree.Run(ctx, iterations)
	return tree.BestAction(), err
}
