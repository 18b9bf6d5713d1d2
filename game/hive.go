package game

import (
	"fmt"
	"sort"
)

// Result is the outcome of a game as seen from the board.
type Result int

const (
	Ongoing Result = iota
	WhiteWins
	BlackWins
	Draw
)

const NumResults = 4

// WinFor returns the result in which team wins.
func WinFor(team Team) Result {
	if team == White {
		return WhiteWins
	}
	return BlackWins
}

// Winner reports the winning team, if any.
func (r Result) Winner() (Team, bool) {
	switch r {
	case WhiteWins:
		return White, true
	case BlackWins:
		return Black, true
	default:
		return 0, false
	}
}

func (r Result) String() string {
	switch r {
	case Ongoing:
		return "ongoing"
	case WhiteWins:
		return "white wins"
	case BlackWins:
		return "black wins"
	case Draw:
		return "draw"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// Hive maps occupied hexes to their stacks of stones, bottom to top.
//
// Stacks are never modified in place: Place and RemoveTop store freshly
// allocated slices, so a clone may share unchanged stacks with its source.
type Hive struct {
	stacks map[Hex][]Stone
	stones int
}

func NewHive() *Hive {
	return &Hive{stacks: make(map[Hex][]Stone)}
}

// Clone returns a copy of the board that can be changed independently.
func (h *Hive) Clone() *Hive {
	stacks := make(map[Hex][]Stone, len(h.stacks)+1)
	for hex, stack := range h.stacks {
		stacks[hex] = stack
	}
	return &Hive{stacks: stacks, stones: h.stones}
}

// Height returns the number of stones stacked on hex.
func (h *Hive) Height(hex Hex) int {
	return len(h.stacks[hex])
}

// Top returns the uppermost stone on hex.
func (h *Hive) Top(hex Hex) (Stone, bool) {
	stack := h.stacks[hex]
	if len(stack) == 0 {
		return Stone{}, false
	}
	return stack[len(stack)-1], true
}

// Stack returns a copy of the stones on hex, bottom to top.
func (h *Hive) Stack(hex Hex) []Stone {
	return append([]Stone(nil), h.stacks[hex]...)
}

func (h *Hive) IsOccupied(hex Hex) bool {
	_, ok := h.stacks[hex]
	return ok
}

// Len returns the number of stones on the board.
func (h *Hive) Len() int {
	return h.stones
}

// Hexes returns the occupied hexes in a stable order.
func (h *Hive) Hexes() []Hex {
	hexes := make([]Hex, 0, len(h.stacks))
	for hex := range h.stacks {
		hexes = append(hexes, hex)
	}
	sortHexes(hexes)
	return hexes
}

// Place pushes stone on top of hex. It only guards the board structure: the
// stone must land on a stack or next to one unless the board is empty.
func (h *Hive) Place(hex Hex, stone Stone) error {
	if len(h.stacks) > 0 && !h.IsOccupied(hex) && !h.touches(hex) {
		return fmt.Errorf("%w: %s at %s is detached from the hive", ErrInvalidPlacement, stone, hex)
	}
	old := h.stacks[hex]
	stack := make([]Stone, len(old)+1)
	copy(stack, old)
	stack[len(old)] = stone
	h.stacks[hex] = stack
	h.stones++
	return nil
}

// RemoveTop pops the uppermost stone on hex.
func (h *Hive) RemoveTop(hex Hex) (Stone, error) {
	old := h.stacks[hex]
	if len(old) == 0 {
		return Stone{}, fmt.Errorf("%w: nothing to remove at %s", ErrEmptyHex, hex)
	}
	stone := old[len(old)-1]
	if len(old) == 1 {
		delete(h.stacks, hex)
	} else {
		h.stacks[hex] = append([]Stone(nil), old[:len(old)-1]...)
	}
	h.stones--
	return stone, nil
}

// touches reports whether any neighbor of hex is occupied.
func (h *Hive) touches(hex Hex) bool {
	for _, n := range hex.Neighbors() {
		if h.IsOccupied(n) {
			return true
		}
	}
	return false
}

// IsConnected reports whether the occupied hexes form a single group.
func (h *Hive) IsConnected() bool {
	return h.connectedSkipping(Hex{}, false)
}

// IsConnectedWithout reports whether the hive stays in one piece once the top
// stone of hex is lifted. Lifting a stone off a stack never splits the hive.
func (h *Hive) IsConnectedWithout(hex Hex) bool {
	if h.Height(hex) != 1 {
		return h.IsConnected()
	}
	return h.connectedSkipping(hex, true)
}

// connectedSkipping flood fills the occupied hexes, treating skip as empty.
func (h *Hive) connectedSkipping(skip Hex, skipping bool) bool {
	total := len(h.stacks)
	if skipping {
		total--
	}
	if total <= 0 {
		return true
	}

	var start Hex
	for hex := range h.stacks {
		if !skipping || hex != skip {
			start = hex
			break
		}
	}

	visited := map[Hex]bool{start: true}
	queue := []Hex{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, n := range current.Neighbors() {
			if visited[n] || !h.IsOccupied(n) || (skipping && n == skip) {
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}
	return len(visited) == total
}

// GenerateDrops returns the empty hexes where team may drop a new stone.
func (h *Hive) GenerateDrops(team Team) []Hex {
	switch {
	case h.stones == 0:
		return []Hex{Origin}
	case h.stones == 1:
		for hex := range h.stacks {
			neighbors := hex.Neighbors()
			drops := neighbors[:]
			sortHexes(drops)
			return drops
		}
	}

	candidates := make(map[Hex]bool)
	for hex := range h.stacks {
		for _, n := range hex.Neighbors() {
			if !h.IsOccupied(n) {
				candidates[n] = true
			}
		}
	}

	drops := make([]Hex, 0, len(candidates))
	for candidate := range candidates {
		if h.onlyTouches(candidate, team) {
			drops = append(drops, candidate)
		}
	}
	sortHexes(drops)
	return drops
}

// onlyTouches reports whether every occupied neighbor of hex is topped by team.
func (h *Hive) onlyTouches(hex Hex, team Team) bool {
	for _, n := range hex.Neighbors() {
		if top, ok := h.Top(n); ok && top.Team != team {
			return false
		}
	}
	return true
}

// queen returns where team's queen sits, if it has been dropped.
func (h *Hive) queen(team Team) (Hex, bool) {
	for hex, stack := range h.stacks {
		for _, stone := range stack {
			if stone.Insect == Queen && stone.Team == team {
				return hex, true
			}
		}
	}
	return Hex{}, false
}

// Pressure counts the occupied hexes around team's queen.
func (h *Hive) Pressure(team Team) int {
	hex, ok := h.queen(team)
	if !ok {
		return 0
	}
	count := 0
	for _, n := range hex.Neighbors() {
		if h.IsOccupied(n) {
			count++
		}
	}
	return count
}

// Result checks both queens: a surrounded queen loses, two surrounded queens draw.
func (h *Hive) Result() Result {
	whiteLost := h.Pressure(White) == 6
	blackLost := h.Pressure(Black) == 6
	switch {
	case whiteLost && blackLost:
		return Draw
	case whiteLost:
		return BlackWins
	case blackLost:
		return WhiteWins
	default:
		return Ongoing
	}
}

func sortHexes(hexes []Hex) {
	sort.Slice(hexes, func(i, j int) bool { return less(hexes[i], hexes[j]) })
}
