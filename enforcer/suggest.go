package enforcer

import (
	"fmt"
	"strings"
)

// overviewMarker marks project overview documents, which get extra advice.
const overviewMarker = "README"

// Suggestions returns remediation hints for a violation, most specific
// first. The tier depends on how far over the limit the file is.
func Suggestions(v Violation) []string {
	var out []string

	switch pct := v.PercentageOver(); {
	case pct > 50:
		out = append(out,
			"Consider splitting this file into multiple smaller files",
			fmt.Sprintf("Target: reduce by ~%d tokens to get under the limit", v.Excess()),
		)
	case pct > 20:
		out = append(out,
			"Review content and remove unnecessary sections",
			"Consider moving older content to an archived directory",
		)
	default:
		out = append(out, "Minor reduction needed - review and tighten content")
	}

	out = append(out,
		"Remove redundant explanations or examples",
		"Consider using more concise language",
	)

	if strings.Contains(v.Path, overviewMarker) {
		out = append(out,
			"Move detailed documentation to separate docs/ files",
			"Keep README high-level and link to detailed docs",
		)
	}
	return out
}
