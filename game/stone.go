package game

import "fmt"

// Insect is the kind of a stone and decides how it moves.
type Insect int

const (
	Queen Insect = iota
	Spider
	Ant
	Grasshopper
	Beetle
)

const NumInsects = 5

var insectNames = [NumInsects]string{"queen", "spider", "ant", "grasshopper", "beetle"}

func (i Insect) String() string {
	if i < 0 || int(i) >= NumInsects {
		return fmt.Sprintf("insect(%d)", int(i))
	}
	return insectNames[i]
}

func (i Insect) MarshalText() ([]byte, error) {
	if i < 0 || int(i) >= NumInsects {
		return nil, fmt.Errorf("unknown insect %d", int(i))
	}
	return []byte(insectNames[i]), nil
}

func (i *Insect) UnmarshalText(text []byte) error {
	for kind, name := range insectNames {
		if name == string(text) {
			*i = Insect(kind)
			return nil
		}
	}
	return fmt.Errorf("unknown insect %q", text)
}

// Team identifies a side. White is team A and moves on even turns.
type Team int

const (
	White Team = iota
	Black
)

const NumTeams = 2

var teamNames = [NumTeams]string{"white", "black"}

func (t Team) Opponent() Team {
	return 1 - t
}

func (t Team) String() string {
	if t < 0 || int(t) >= NumTeams {
		return fmt.Sprintf("team(%d)", int(t))
	}
	return teamNames[t]
}

func (t Team) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= NumTeams {
		return nil, fmt.Errorf("unknown team %d", int(t))
	}
	return []byte(teamNames[t]), nil
}

func (t *Team) UnmarshalText(text []byte) error {
	for team, name := range teamNames {
		if name == string(text) {
			*t = Team(team)
			return nil
		}
	}
	return fmt.Errorf("unknown team %q", text)
}

// Stone is a single piece owned by a team.
type Stone struct {
	Insect Insect `json:"piece_kind"`
	Team   Team   `json:"team"`
}

func (s Stone) String() string {
	return fmt.Sprintf("%s %s", s.Team, s.Insect)
}
