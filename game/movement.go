package game

const spiderSteps = 3

// GenerateMoves returns every move available to team's stones on top of a
// stack, sorted by origin then destination.
func (h *Hive) GenerateMoves(team Team) []Move {
	var moves []Move
	for _, origin := range h.Hexes() {
		stone, _ := h.Top(origin)
		if stone.Team != team || !h.IsConnectedWithout(origin) {
			continue
		}
		for _, destination := range h.destinations(origin) {
			moves = append(moves, Move{Origin: origin, Destination: destination})
		}
	}
	return moves
}

// destinations lists where the top stone of origin may go, ignoring whether
// lifting it would split the hive.
func (h *Hive) destinations(origin Hex) []Hex {
	stone, ok := h.Top(origin)
	if !ok {
		return nil
	}

	// The stone moves over the hive without itself.
	board := h.Clone()
	if _, err := board.RemoveTop(origin); err != nil {
		return nil
	}

	var result []Hex
	switch stone.Insect {
	case Queen:
		result = board.slides(origin)
	case Spider:
		result = board.walks(origin, spiderSteps)
	case Ant:
		result = board.crawls(origin)
	case Grasshopper:
		result = board.jumps(origin)
	case Beetle:
		result = board.climbs(origin)
	}
	return dedupe(result)
}

// slides returns the ground-level hexes one step from `from`. Exactly one
// flank may be occupied: two would close the gate, none would lose contact.
func (h *Hive) slides(from Hex) []Hex {
	var result []Hex
	for dir := range Directions {
		to := from.Neighbor(dir)
		if h.IsOccupied(to) {
			continue
		}
		left, right := from.Flanks(dir)
		if h.IsOccupied(left) != h.IsOccupied(right) {
			result = append(result, to)
		}
	}
	return result
}

// walks returns the hexes whose shortest slide distance from origin is
// exactly steps.
func (h *Hive) walks(origin Hex, steps int) []Hex {
	var result []Hex
	for hex, d := range h.distances(origin, steps) {
		if d == steps {
			result = append(result, hex)
		}
	}
	return result
}

// crawls returns every hex reachable through any number of slides.
func (h *Hive) crawls(origin Hex) []Hex {
	var result []Hex
	for hex, d := range h.distances(origin, -1) {
		if d > 0 {
			result = append(result, hex)
		}
	}
	return result
}

// distances runs a breadth first search over slides from origin and maps
// each reached hex to its slide distance. A negative limit searches the
// whole perimeter.
func (h *Hive) distances(origin Hex, limit int) map[Hex]int {
	distance := map[Hex]int{origin: 0}
	queue := []Hex{origin}
	for len(queue) > 0 {
		at := queue[0]
		queue = queue[1:]
		d := distance[at]
		if limit >= 0 && d >= limit {
			continue
		}
		for _, next := range h.slides(at) {
			if _, seen := distance[next]; seen {
				continue
			}
			distance[next] = d + 1
			queue = append(queue, next)
		}
	}
	return distance
}

// jumps returns the first empty hex past each adjacent line of stones.
func (h *Hive) jumps(origin Hex) []Hex {
	var result []Hex
	for _, dir := range Directions {
		if !h.IsOccupied(origin.Add(dir)) {
			continue
		}
		i := 2
		for h.IsOccupied(origin.Add(dir.Scale(i))) {
			i++
		}
		result = append(result, origin.Add(dir.Scale(i)))
	}
	return result
}

// climbs moves one step at the level of the higher of the two stacks. The
// gate only closes when both flanks rise above that level.
func (h *Hive) climbs(origin Hex) []Hex {
	var result []Hex
	below := h.Height(origin)
	for dir := range Directions {
		to := origin.Neighbor(dir)
		level := max(below, h.Height(to))
		left, right := origin.Flanks(dir)
		if level == 0 {
			if h.IsOccupied(left) != h.IsOccupied(right) {
				result = append(result, to)
			}
			continue
		}
		if h.Height(left) > level && h.Height(right) > level {
			continue
		}
		result = append(result, to)
	}
	return result
}

func dedupe(hexes []Hex) []Hex {
	if len(hexes) == 0 {
		return nil
	}
	sortHexes(hexes)
	result := hexes[:1]
	for _, hex := range hexes[1:] {
		if hex != result[len(result)-1] {
			result = append(result, hex)
		}
	}
	return result
}
