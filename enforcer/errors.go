package enforcer

import (
	"errors"

	"github.com/randalmurphal/mdtoken/config"
	"github.com/randalmurphal/mdtoken/tokens"
)

// Kind classifies errors so callers can choose an exit path without
// inspecting messages.
type Kind int

const (
	// KindOther is any error not covered below, such as a tokenizer that
	// failed to initialize. Fatal to the run.
	KindOther Kind = iota

	// KindConfig is an invalid or unreadable configuration. Fatal to the run.
	KindConfig

	// KindFileAccess is a file that could not be read or decoded. Never
	// fatal: Check turns it into a Violation.
	KindFileAccess
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindFileAccess:
		return "file access"
	default:
		return "other"
	}
}

// KindOf classifies err. A nil error is KindOther.
func KindOf(err error) Kind {
	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		return KindConfig
	}
	var fileErr *tokens.FileError
	if errors.As(err, &fileErr) {
		return KindFileAccess
	}
	return KindOther
}
