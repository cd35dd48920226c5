package tokens

import (
	"unicode/utf8"
)

// Counter counts tokens in text. Counts must be deterministic: the same
// text always yields the same number.
type Counter interface {
	Count(text string) int
	FitsInLimit(text string, limit int) bool
}

// runesPerToken is the ratio behind EncodingEstimate.
const runesPerToken = 4

// EstimatingCounter backs EncodingEstimate. It charges one token per four
// runes, rounded half up, and needs no vocabulary download, so counts are
// available offline but only approximate a real encoding.
type EstimatingCounter struct{}

// NewEstimatingCounter returns the offline estimator.
func NewEstimatingCounter() *EstimatingCounter {
	return &EstimatingCounter{}
}

// Count estimates the tokens in text.
func (c *EstimatingCounter) Count(text string) int {
	return (utf8.RuneCountInString(text) + runesPerToken/2) / runesPerToken
}

// FitsInLimit reports whether the estimate for text is at most limit.
func (c *EstimatingCounter) FitsInLimit(text string, limit int) bool {
	return c.Count(text) <= limit
}
