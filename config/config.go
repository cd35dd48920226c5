// Package config holds the token-limit policy: default and per-path limits,
// exclusion patterns and the optional total budget.
package config

import (
	"fmt"
	"slices"
)

// DefaultFileName is the conventional config file looked up in the
// working directory.
const DefaultFileName = ".mdtokenrc.yaml"

// DefaultLimit is the token ceiling applied when no other rule matches.
const DefaultLimit = 4000

// DefaultExclude returns the default exclusion patterns. Each call returns
// a fresh slice.
func DefaultExclude() []string {
	return []string{
		".git/**",
		"node_modules/**",
		"venv/**",
		".venv/**",
		"build/**",
		"dist/**",
		"__pycache__/**",
	}
}

// Config is a validated token-limit policy. Treat it as read-only once
// built; use Clone or WithFailOnExceed to derive variants.
type Config struct {
	// DefaultLimit applies to files no entry in Limits matches.
	DefaultLimit int

	// Limits holds per-path overrides in declaration order.
	Limits *Limits

	// Exclude lists patterns for files that are never checked.
	Exclude []string

	// TotalLimit caps the sum of tokens across all checked files.
	// Nil means no total budget.
	TotalLimit *int

	// FailOnExceed controls whether violations fail the run.
	FailOnExceed bool
}

// Option configures a Config built by New.
type Option func(*Config)

// WithDefaultLimit sets the default token limit.
func WithDefaultLimit(limit int) Option {
	return func(c *Config) { c.DefaultLimit = limit }
}

// WithLimit adds a per-path limit. Calls keep their order.
func WithLimit(pattern string, limit int) Option {
	return func(c *Config) { c.Limits.Set(pattern, limit) }
}

// WithLimits replaces all per-path limits with a copy of limits.
func WithLimits(limits *Limits) Option {
	return func(c *Config) { c.Limits = limits.Clone() }
}

// WithExclude replaces the exclusion patterns with a copy of patterns.
// A nil slice keeps the defaults; an empty non-nil slice excludes nothing.
func WithExclude(patterns []string) Option {
	return func(c *Config) {
		if patterns != nil {
			c.Exclude = slices.Clone(patterns)
		}
	}
}

// WithTotalLimit sets the total token budget.
func WithTotalLimit(limit int) Option {
	return func(c *Config) { c.TotalLimit = &limit }
}

// WithFailOnExceed sets whether violations fail the run.
func WithFailOnExceed(fail bool) Option {
	return func(c *Config) { c.FailOnExceed = fail }
}

// Default returns the default policy.
func Default() *Config {
	return &Config{
		DefaultLimit: DefaultLimit,
		Limits:       NewLimits(),
		Exclude:      DefaultExclude(),
		FailOnExceed: true,
	}
}

// New builds a policy from the defaults and opts, and validates it.
func New(opts ...Option) (*Config, error) {
	c := Default()
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that every limit is a positive integer.
func (c *Config) Validate() error {
	if c.DefaultLimit <= 0 {
		return invalidf("default_limit must be a positive integer, got: %d", c.DefaultLimit)
	}
	for pattern, limit := range c.Limits.All() {
		if limit <= 0 {
			return invalidf("limit for pattern '%s' must be a positive integer, got: %d", pattern, limit)
		}
	}
	if c.TotalLimit != nil && *c.TotalLimit <= 0 {
		return invalidf("total_limit must be a positive integer or null, got: %d", *c.TotalLimit)
	}
	return nil
}

// Limit returns the token limit for path: an exact entry in Limits, then
// the first entry contained in path, then DefaultLimit.
func (c *Config) Limit(path string) int {
	if limit, ok := c.Limits.Get(path); ok {
		return limit
	}
	if limit, ok := c.Limits.Match(path); ok {
		return limit
	}
	return c.DefaultLimit
}

// HasTotalLimit reports whether a total budget is configured.
func (c *Config) HasTotalLimit() bool {
	return c.TotalLimit != nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Limits = c.Limits.Clone()
	out.Exclude = slices.Clone(c.Exclude)
	if c.TotalLimit != nil {
		total := *c.TotalLimit
		out.TotalLimit = &total
	}
	return &out
}

// WithFailOnExceed returns a copy with FailOnExceed set to fail.
// The receiver is not modified.
func (c *Config) WithFailOnExceed(fail bool) *Config {
	out := c.Clone()
	out.FailOnExceed = fail
	return out
}

// ToMap returns the policy keyed by config file field names.
func (c *Config) ToMap() map[string]any {
	var total any
	if c.TotalLimit != nil {
		total = *c.TotalLimit
	}
	return map[string]any{
		"default_limit":  c.DefaultLimit,
		"limits":         c.Limits.ToMap(),
		"exclude":        slices.Clone(c.Exclude),
		"total_limit":    total,
		"fail_on_exceed": c.FailOnExceed,
	}
}

// String implements fmt.Stringer.
func (c *Config) String() string {
	total := "none"
	if c.TotalLimit != nil {
		total = fmt.Sprint(*c.TotalLimit)
	}
	return fmt.Sprintf("Config(default_limit=%d, limits=%s, exclude=%q, total_limit=%s, fail_on_exceed=%t)",
		c.DefaultLimit, c.Limits, c.Exclude, total, c.FailOnExceed)
}
