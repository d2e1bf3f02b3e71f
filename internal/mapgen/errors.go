package mapgen

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig marks errors caused by the caller's parameters.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInternal marks a broken stage invariant. Seeing it means a bug, not
	// bad input; the same input fails the same way every time.
	ErrInternal = errors.New("internal generation error")
)

func internalf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInternal}, args...)...)
}
