package game

import "fmt"

// Rules holds the parameters that vary between Hive variants.
type Rules struct {
	// QueenDeadline is the first turn on which a team that still holds its
	// queen must drop it. Turns count plies from zero.
	QueenDeadline int
	// Multiplicity is the number of stones of each insect a team starts with.
	Multiplicity [NumInsects]int
}

// NewStandardRules returns the base game without expansions: the queen must be
// down by each team's fourth stone.
func NewStandardRules() Rules {
	return Rules{
		QueenDeadline: 6,
		Multiplicity:  [NumInsects]int{Queen: 1, Spider: 2, Ant: 3, Grasshopper: 3, Beetle: 2},
	}
}

func (r Rules) Validate() error {
	if r.Multiplicity[Queen] != 1 {
		return fmt.Errorf("each team needs exactly one queen, got %d", r.Multiplicity[Queen])
	}
	for insect, count := range r.Multiplicity {
		if count < 0 {
			return fmt.Errorf("negative multiplicity %d for %s", count, Insect(insect))
		}
	}
	if r.QueenDeadline < 0 {
		return fmt.Errorf("negative queen deadline %d", r.QueenDeadline)
	}
	return nil
}

// Stones returns the number of stones each team starts with.
func (r Rules) Stones() int {
	total := 0
	for _, count := range r.Multiplicity {
		total += count
	}
	return total
}
