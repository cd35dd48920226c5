package report

import (
	"fmt"
	"strings"
)

// ColorMode controls whether a Reporter emits ANSI colors.
type ColorMode int

const (
	// ColorAuto colors output only when it goes to a terminal that
	// supports it and NO_COLOR is not set.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// String implements fmt.Stringer.
func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorMode parses "auto", "always" or "never". Case is ignored and
// the empty string is auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
	}
}
