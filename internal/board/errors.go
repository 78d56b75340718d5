package board

import (
	"errors"
	"fmt"
)

// ErrMalformedPosition is matched by every error Parse returns.
var ErrMalformedPosition = errors.New("malformed position")

// MalformedPositionError reports where a position string stopped making sense.
// Char is 0 when the input ended early.
type MalformedPositionError struct {
	Index  int
	Char   rune
	Reason string
}

func (e *MalformedPositionError) Error() string {
	if e.Char == 0 {
		return fmt.Sprintf("malformed position at index %d (end of input): %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("malformed position at index %d (%q): %s", e.Index, e.Char, e.Reason)
}

// Is lets errors.Is match ErrMalformedPosition.
func (e *MalformedPositionError) Is(target error) bool {
	return target == ErrMalformedPosition
}

// InvalidSquareError is raised (as a panic value) when a square outside 0-63
// reaches a Board accessor. It signals a caller bug, not bad user input.
type InvalidSquareError struct {
	Square Square
}

func (e InvalidSquareError) Error() string {
	return fmt.Sprintf("invalid square index %d", e.Square)
}

func mustValid(sq Square) {
	if !sq.IsValid() {
		panic(InvalidSquareError{Square: sq})
	}
}
