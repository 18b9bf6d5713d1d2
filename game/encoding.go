package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// HiveEntry is one stone of a serialized board. Height is its zero-based
// position in the stack.
type HiveEntry struct {
	Q      int    `json:"q"`
	R      int    `json:"r"`
	Height int    `json:"height"`
	Insect Insect `json:"piece_kind"`
	Team   Team   `json:"team"`
}

// Snapshot is the serialized form of a GameState.
type Snapshot struct {
	TurnNumber int         `json:"turn_number"`
	Hive       []HiveEntry `json:"hive"`
	Availables []Stone     `json:"availables"`
}

// Snapshot lists the board hex by hex, bottom to top, and the reserves white
// first. Equal states always produce equal snapshots.
func (s *GameState) Snapshot() Snapshot {
	snapshot := Snapshot{
		TurnNumber: s.turn,
		Hive:       make([]HiveEntry, 0, s.hive.Len()),
		Availables: s.Availables(),
	}
	if snapshot.Availables == nil {
		snapshot.Availables = []Stone{}
	}
	for _, hex := range s.hive.Hexes() {
		for height, stone := range s.hive.stacks[hex] {
			snapshot.Hive = append(snapshot.Hive, HiveEntry{
				Q:      hex.Q,
				R:      hex.R,
				Height: height,
				Insect: stone.Insect,
				Team:   stone.Team,
			})
		}
	}
	return snapshot
}

func (s *GameState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// FromSnapshot rebuilds a state, checking that every stack is complete, that
// the hive is in one piece and that board and reserves add up to the stones
// of rules.
func FromSnapshot(snapshot Snapshot, rules Rules) (*GameState, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if snapshot.TurnNumber < 0 {
		return nil, fmt.Errorf("negative turn number %d", snapshot.TurnNumber)
	}

	entries := append([]HiveEntry(nil), snapshot.Hive...)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Height < entries[j].Height })

	hive := NewHive()
	var counts [NumTeams][NumInsects]int
	for _, entry := range entries {
		if err := checkStone(entry.Insect, entry.Team); err != nil {
			return nil, err
		}
		hex := Hex{Q: entry.Q, R: entry.R}
		if entry.Height != hive.Height(hex) {
			return nil, fmt.Errorf("%w: stack at %s has a gap or duplicate at height %d", ErrInvalidPlacement, hex, entry.Height)
		}
		hive.stacks[hex] = append(hive.Stack(hex), Stone{Insect: entry.Insect, Team: entry.Team})
		hive.stones++
		counts[entry.Team][entry.Insect]++
	}
	if !hive.IsConnected() {
		return nil, fmt.Errorf("%w: hive is not connected", ErrInvalidPlacement)
	}

	var reserve [NumTeams][NumInsects]int
	for _, stone := range snapshot.Availables {
		if err := checkStone(stone.Insect, stone.Team); err != nil {
			return nil, err
		}
		reserve[stone.Team][stone.Insect]++
		counts[stone.Team][stone.Insect]++
	}
	for team := range counts {
		for insect, count := range counts[team] {
			if count != rules.Multiplicity[insect] {
				return nil, fmt.Errorf("%w: %d %s stones in play, want %d", ErrInvalidPlacement,
					count, Stone{Insect: Insect(insect), Team: Team(team)}, rules.Multiplicity[insect])
			}
		}
	}

	return &GameState{
		hive:    hive,
		turn:    snapshot.TurnNumber,
		reserve: reserve,
		rules:   rules,
		result:  hive.Result(),
	}, nil
}

// DecodeState parses a JSON snapshot.
func DecodeState(data []byte, rules Rules) (*GameState, error) {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return FromSnapshot(snapshot, rules)
}

func checkStone(insect Insect, team Team) error {
	if insect < 0 || int(insect) >= NumInsects || team < 0 || int(team) >= NumTeams {
		return fmt.Errorf("%w: unknown stone %s", ErrInvalidPlacement, Stone{Insect: insect, Team: team})
	}
	return nil
}

// ActionRecord is the wire form of an action. Only the fields of its type
// are set.
type ActionRecord struct {
	Type        ActionType `json:"type"`
	Origin      *Hex       `json:"origin,omitempty"`
	Destination *Hex       `json:"destination,omitempty"`
	Stone       *Stone     `json:"stone,omitempty"`
}

var errMalformedAction = errors.New("malformed action")

func EncodeAction(action Action) ActionRecord {
	switch action := action.(type) {
	case Move:
		return ActionRecord{Type: MoveAction, Origin: &action.Origin, Destination: &action.Destination}
	case Drop:
		return ActionRecord{Type: DropAction, Destination: &action.Destination, Stone: &action.Stone}
	default:
		return ActionRecord{Type: PassAction}
	}
}

func DecodeAction(record ActionRecord) (Action, error) {
	switch record.Type {
	case MoveAction:
		if record.Origin == nil || record.Destination == nil {
			return nil, fmt.Errorf("%w: move needs origin and destination", errMalformedAction)
		}
		return Move{Origin: *record.Origin, Destination: *record.Destination}, nil
	case DropAction:
		if record.Stone == nil || record.Destination == nil {
			return nil, fmt.Errorf("%w: drop needs stone and destination", errMalformedAction)
		}
		if err := checkStone(record.Stone.Insect, record.Stone.Team); err != nil {
			return nil, err
		}
		return Drop{Stone: *record.Stone, Destination: *record.Destination}, nil
	case PassAction:
		return Pass{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %s", errMalformedAction, record.Type)
	}
}

func MarshalAction(action Action) ([]byte, error) {
	return json.Marshal(EncodeAction(action))
}

func UnmarshalAction(data []byte) (Action, error) {
	var record ActionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding action: %w", err)
	}
	return DecodeAction(record)
}
