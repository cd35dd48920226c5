package tokens

// Budget tracks tokens spent against an optional ceiling.
type Budget struct {
	// Total is the ceiling. Zero or less means unbounded.
	Total int

	used int
}

// NewBudget creates a budget with the given ceiling. Pass 0 for a budget
// that only accumulates.
func NewBudget(total int) *Budget {
	return &Budget{Total: total}
}

// Bounded reports whether the budget has a ceiling.
func (b *Budget) Bounded() bool {
	return b.Total > 0
}

// Add records tokens as spent. Negative counts are ignored.
func (b *Budget) Add(tokens int) {
	if tokens > 0 {
		b.used += tokens
	}
}

// Used returns the tokens spent so far.
func (b *Budget) Used() int {
	return b.used
}

// Exceeded returns true if spending has gone past the ceiling.
// Spending exactly the ceiling is within budget.
func (b *Budget) Exceeded() bool {
	return b.Bounded() && b.used > b.Total
}
