// Package enforcer checks markdown files against their token limits.
//
// An Enforcer asks the matcher for the files to check, counts tokens in
// each through a FileCounter, and folds the counts into a Result. Files
// that cannot be read never abort the pass; they are reported as
// violations with zero tokens so an unmeasurable file cannot slip past
// the gate.
package enforcer

import (
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/randalmurphal/mdtoken/config"
	"github.com/randalmurphal/mdtoken/matcher"
	"github.com/randalmurphal/mdtoken/tokens"
)

// FileCounter counts the tokens in a file read with the given text
// encoding. *tokens.Tokenizer implements it.
type FileCounter interface {
	CountFile(path, charset string) (int, error)
}

// Enforcer applies a Config to a set of files.
type Enforcer struct {
	cfg      *config.Config
	counter  FileCounter
	matcher  *matcher.Matcher
	patterns []string
	charset  string
	workers  int
}

// Option configures an Enforcer.
type Option func(*Enforcer)

// WithMatcher sets the matcher used to find files. The default scans the
// working directory.
func WithMatcher(m *matcher.Matcher) Option {
	return func(e *Enforcer) { e.matcher = m }
}

// WithPatterns sets the glob patterns used when no files are named.
func WithPatterns(patterns ...string) Option {
	return func(e *Enforcer) { e.patterns = patterns }
}

// WithCharset sets the text encoding files are read with.
func WithCharset(charset string) Option {
	return func(e *Enforcer) { e.charset = charset }
}

// WithWorkers sets how many files are counted at once. Values below 2
// count sequentially.
func WithWorkers(n int) Option {
	return func(e *Enforcer) { e.workers = n }
}

// New creates an enforcer for cfg that counts with counter.
func New(cfg *config.Config, counter FileCounter, opts ...Option) *Enforcer {
	e := &Enforcer{
		cfg:     cfg,
		counter: counter,
		charset: tokens.DefaultCharset,
		workers: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.matcher == nil {
		e.matcher = matcher.New(cfg, "")
	}
	return e
}

// NewDefault creates an enforcer that counts with the named tokenizer
// encoding and scans root. It fails only if the tokenizer cannot be loaded.
func NewDefault(cfg *config.Config, encoding, root string, opts ...Option) (*Enforcer, error) {
	tok, err := tokens.NewTokenizer(encoding)
	if err != nil {
		return nil, fmt.Errorf("create tokenizer: %w", err)
	}
	opts = append([]Option{WithMatcher(matcher.New(cfg, root))}, opts...)
	return New(cfg, tok, opts...), nil
}

// Config returns the policy being enforced.
func (e *Enforcer) Config() *config.Config {
	return e.cfg
}

// Matcher returns the matcher used to find files.
func (e *Enforcer) Matcher() *matcher.Matcher {
	return e.matcher
}

// Suggestions returns remediation hints for v.
func (e *Enforcer) Suggestions(v Violation) []string {
	return Suggestions(v)
}

type fileCount struct {
	tokens int
	err    error
}

// Check counts the named files, or the files found by scanning when none
// are named, and compares them with their limits.
func (e *Enforcer) Check(files ...string) *Result {
	entries := e.matcher.Match(files, e.patterns...)
	counts := e.count(entries)

	total := 0
	if e.cfg.HasTotalLimit() {
		total = *e.cfg.TotalLimit
	}
	budget := tokens.NewBudget(total)

	var violations []Violation
	for i, entry := range entries {
		c := counts[i]
		if c.err != nil {
			slog.Debug("could not count tokens", "path", entry.Path, "kind", KindOf(c.err), "error", c.err)
			violations = append(violations, Violation{Path: entry.Path, Limit: entry.Limit, Err: c.err})
			continue
		}
		budget.Add(c.tokens)
		if c.tokens > entry.Limit {
			violations = append(violations, Violation{Path: entry.Path, ActualTokens: c.tokens, Limit: entry.Limit})
		}
	}

	exceeded := budget.Exceeded()
	return &Result{
		Passed:             len(violations) == 0 && !exceeded,
		TotalFiles:         len(entries),
		TotalTokens:        budget.Used(),
		Violations:         violations,
		TotalLimitExceeded: exceeded,
		TotalLimit:         total,
	}
}

// count returns one result per entry, index-aligned with entries.
func (e *Enforcer) count(entries []matcher.Entry) []fileCount {
	out := make([]fileCount, len(entries))
	if e.workers < 2 || len(entries) < 2 {
		for i, entry := range entries {
			out[i] = e.countFile(entry.Path)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, entry := range entries {
		g.Go(func() error {
			out[i] = e.countFile(entry.Path)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (e *Enforcer) countFile(path string) (fc fileCount) {
	defer func() {
		if r := recover(); r != nil {
			fc = fileCount{err: fmt.Errorf("count %s: tokenizer panic: %v", path, r)}
		}
	}()
	n, err := e.counter.CountFile(path, e.charset)
	if err != nil {
		return fileCount{err: err}
	}
	return fileCount{tokens: n}
}
