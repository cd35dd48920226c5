package config

import (
	"errors"
	"fmt"
)

// ErrInvalid indicates a configuration value violates an invariant.
var ErrInvalid = errors.New("invalid configuration")

// Error reports a configuration that could not be loaded or validated.
// It is distinct from per-file errors so callers can tell a broken config
// apart from content that exceeds its budget.
type Error struct {
	Path string // Config file path, empty for values built in code
	Err  error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is, or wraps, a configuration error.
func IsConfigError(err error) bool {
	var cfgErr *Error
	return errors.As(err, &cfgErr)
}

func invalidf(format string, args ...any) error {
	return &Error{Err: fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)}
}
