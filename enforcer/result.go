package enforcer

import "fmt"

// Violation is a file over its token limit, or a file that could not be
// measured. Unmeasured files carry ActualTokens 0 and a non-nil Err.
type Violation struct {
	Path         string
	ActualTokens int
	Limit        int

	// Err is the counting failure for files that could not be read.
	Err error
}

// Excess returns the number of tokens over the limit.
func (v Violation) Excess() int {
	return v.ActualTokens - v.Limit
}

// PercentageOver returns the excess as a percentage of the limit.
func (v Violation) PercentageOver() float64 {
	return float64(v.Excess()) / float64(v.Limit) * 100
}

// Unreadable reports whether the file could not be measured.
func (v Violation) Unreadable() bool {
	return v.Err != nil
}

// String implements fmt.Stringer.
func (v Violation) String() string {
	return fmt.Sprintf("%s: %d tokens (limit: %d, over by %d)", v.Path, v.ActualTokens, v.Limit, v.Excess())
}

// Result is the outcome of one enforcement pass.
type Result struct {
	// Passed is true when there are no violations and the total budget
	// was not exceeded.
	Passed bool

	// TotalFiles counts the files matched, whether or not they could be read.
	TotalFiles int

	// TotalTokens sums the counts of files that were read.
	TotalTokens int

	// Violations lists offending files in path order.
	Violations []Violation

	// TotalLimitExceeded is set when a total budget is configured and
	// TotalTokens is over it.
	TotalLimitExceeded bool

	// TotalLimit is the configured total budget, 0 when none.
	TotalLimit int
}

// ViolationCount returns the number of files with violations.
func (r *Result) ViolationCount() int {
	return len(r.Violations)
}
