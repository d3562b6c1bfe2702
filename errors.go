package loaf

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientLength = errors.New("insufficient length")
	ErrReleased           = errors.New("buffer ownership already transferred")
	ErrUninitialized      = errors.New("vec used before construction or unmarshal")
)

// LengthError reports a buffer too short for the requested prefix.
// It matches ErrInsufficientLength with errors.Is.
type LengthError struct {
	Op   string
	Have int
	Need int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("loaf: %s: have %d elements, need at least %d", e.Op, e.Have, e.Need)
}

func (e *LengthError) Unwrap() error {
	return ErrInsufficientLength
}
