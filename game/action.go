package game

import "fmt"

type ActionType int

const (
	MoveAction ActionType = iota
	DropAction
	PassAction
)

var actionTypeNames = [...]string{"move", "drop", "pass"}

func (t ActionType) String() string {
	if t < 0 || int(t) >= len(actionTypeNames) {
		return fmt.Sprintf("action(%d)", int(t))
	}
	return actionTypeNames[t]
}

func (t ActionType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(actionTypeNames) {
		return nil, fmt.Errorf("unknown action type %d", int(t))
	}
	return []byte(actionTypeNames[t]), nil
}

func (t *ActionType) UnmarshalText(text []byte) error {
	for kind, name := range actionTypeNames {
		if name == string(text) {
			*t = ActionType(kind)
			return nil
		}
	}
	return fmt.Errorf("unknown action type %q", text)
}

// Action is one of Move, Drop or Pass. Actions are comparable values and can
// be used as map keys.
type Action interface {
	Type() ActionType
	String() string
	isAction()
}

// Move relocates the top stone of Origin to Destination.
type Move struct {
	Origin      Hex
	Destination Hex
}

// Drop places a stone from the reserve onto the board.
type Drop struct {
	Stone       Stone
	Destination Hex
}

// Pass is only legal when nothing else is.
type Pass struct{}

func (Move) Type() ActionType { return MoveAction }
func (Drop) Type() ActionType { return DropAction }
func (Pass) Type() ActionType { return PassAction }

func (m Move) String() string { return fmt.Sprintf("move %s -> %s", m.Origin, m.Destination) }
func (d Drop) String() string { return fmt.Sprintf("drop %s at %s", d.Stone, d.Destination) }
func (Pass) String() string   { return "pass" }

func (Move) isAction() {}
func (Drop) isAction() {}
func (Pass) isAction() {}
