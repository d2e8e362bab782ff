package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks a local validation failure. Callers must not retry.
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
