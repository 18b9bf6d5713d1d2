package game

import "errors"

var (
	// ErrInvalidPlacement is returned when a stone would break the board's structure.
	ErrInvalidPlacement = errors.New("invalid placement")
	// ErrEmptyHex is returned when removing from a hex with no stones.
	ErrEmptyHex = errors.New("empty hex")
	// ErrIllegalAction is returned when applying an action outside the legal set.
	ErrIllegalAction = errors.New("illegal action")
)
