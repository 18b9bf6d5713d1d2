package game

import "fmt"

// Hex is a position on the board in axial coordinates.
// The third cube coordinate is implicit: s = -q - r.
type Hex struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Origin is where the first stone of every game is dropped.
var Origin = Hex{0, 0}

// Directions lists the six neighbor offsets in rotational order, so that
// directions i-1 and i+1 are the two hexes flanking the edge towards i.
var Directions = [6]Hex{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

func (h Hex) S() int {
	return -h.Q - h.R
}

func (h Hex) Add(other Hex) Hex {
	return Hex{Q: h.Q + other.Q, R: h.R + other.R}
}

func (h Hex) Scale(k int) Hex {
	return Hex{Q: h.Q * k, R: h.R * k}
}

// Neighbor returns the adjacent hex in direction dir (taken modulo 6).
func (h Hex) Neighbor(dir int) Hex {
	return h.Add(Directions[wrap(dir)])
}

// Neighbors returns the six adjacent hexes in rotational order.
func (h Hex) Neighbors() [6]Hex {
	var result [6]Hex
	for i, dir := range Directions {
		result[i] = h.Add(dir)
	}
	return result
}

// Flanks returns the two hexes adjacent to both h and h.Neighbor(dir).
func (h Hex) Flanks(dir int) (Hex, Hex) {
	return h.Neighbor(dir - 1), h.Neighbor(dir + 1)
}

func (h Hex) IsAdjacent(other Hex) bool {
	return Distance(h, other) == 1
}

func (h Hex) String() string {
	return fmt.Sprintf("(%d,%d)", h.Q, h.R)
}

// Distance returns the number of steps between two hexes.
func Distance(a, b Hex) int {
	return max(abs(a.Q-b.Q), abs(a.R-b.R), abs(a.S()-b.S()))
}

// less orders hexes by q then r, used wherever output must be deterministic.
func less(a, b Hex) bool {
	if a.Q != b.Q {
		return a.Q < b.Q
	}
	return a.R < b.R
}

func wrap(dir int) int {
	return ((dir % 6) + 6) % 6
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
