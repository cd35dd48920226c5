// Package report renders enforcement results for people and maps them to
// process exit codes.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	"github.com/randalmurphal/mdtoken/enforcer"
)

// Exit codes returned by ExitCode and used by the CLI.
const (
	ExitOK    = 0
	ExitFail  = 1
	ExitUsage = 2
)

// maxSuggestions caps the hints printed per violation.
const maxSuggestions = 3

// Suggester produces remediation hints for a violation.
// *enforcer.Enforcer implements it.
type Suggester interface {
	Suggestions(v enforcer.Violation) []string
}

// SuggesterFunc adapts a function to Suggester.
type SuggesterFunc func(v enforcer.Violation) []string

// Suggestions implements Suggester.
func (f SuggesterFunc) Suggestions(v enforcer.Violation) []string {
	return f(v)
}

// Reporter writes results to an output stream.
type Reporter struct {
	out       io.Writer
	suggester Suggester
	mode      ColorMode
	color     bool

	red, green, yellow, blue, bold lipgloss.Style
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithColor sets the color mode. The default is ColorAuto.
func WithColor(mode ColorMode) Option {
	return func(r *Reporter) { r.mode = mode }
}

// WithSuggester sets where verbose suggestions come from. The default is
// enforcer.Suggestions.
func WithSuggester(s Suggester) Option {
	return func(r *Reporter) { r.suggester = s }
}

// New creates a reporter writing to out. Whether color is used is decided
// here, once, from the color mode and the terminal behind out.
func New(out io.Writer, opts ...Option) *Reporter {
	r := &Reporter{
		out:       out,
		suggester: SuggesterFunc(enforcer.Suggestions),
	}
	for _, opt := range opts {
		opt(r)
	}

	renderer := lipgloss.NewRenderer(out)
	switch r.mode {
	case ColorAlways:
		renderer.SetColorProfile(termenv.ANSI)
	case ColorNever:
		renderer.SetColorProfile(termenv.Ascii)
	}
	r.color = renderer.ColorProfile() != termenv.Ascii

	r.red = renderer.NewStyle().Foreground(lipgloss.Color("9"))
	r.green = renderer.NewStyle().Foreground(lipgloss.Color("10"))
	r.yellow = renderer.NewStyle().Foreground(lipgloss.Color("11"))
	r.blue = renderer.NewStyle().Foreground(lipgloss.Color("12"))
	r.bold = renderer.NewStyle().Bold(true)
	return r
}

// Color reports whether output is colorized.
func (r *Reporter) Color() bool {
	return r.color
}

func (r *Reporter) paint(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}

// Report writes the outcome of a check followed by a summary block.
// Verbose output adds up to three suggestions per violation.
func (r *Reporter) Report(result *enforcer.Result, verbose bool) error {
	var b strings.Builder
	if result.Passed {
		fmt.Fprintf(&b, "%s %s\n", r.paint(r.green, "✓"), r.paint(r.green, "All files within token limits!"))
	} else {
		r.writeFailures(&b, result, verbose)
	}
	r.writeSummary(&b, result)

	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *Reporter) writeFailures(b *strings.Builder, result *enforcer.Result, verbose bool) {
	header := fmt.Sprintf("Found %d file(s) exceeding token limits:", result.ViolationCount())
	fmt.Fprintf(b, "%s %s\n\n", r.paint(r.red, "✗"), r.paint(r.red, header))

	for i, v := range result.Violations {
		r.writeViolation(b, i+1, v, verbose)
	}

	if result.TotalLimitExceeded {
		msg := fmt.Sprintf("Total tokens (%d) exceeds total_limit (%d)", result.TotalTokens, result.TotalLimit)
		fmt.Fprintf(b, "%s %s\n\n", r.paint(r.yellow, "⚠"), r.paint(r.yellow, msg))
	}
}

func (r *Reporter) writeViolation(b *strings.Builder, n int, v enforcer.Violation, verbose bool) {
	fmt.Fprintf(b, "%d. %s\n", n, r.paint(r.bold, v.Path))
	fmt.Fprintf(b, "   Tokens: %s / %s\n",
		r.paint(r.red, fmt.Sprint(v.ActualTokens)),
		r.paint(r.yellow, fmt.Sprint(v.Limit)))
	fmt.Fprintf(b, "   Over by: %s tokens (%s)\n",
		r.paint(r.red, fmt.Sprint(v.Excess())),
		r.paint(r.red, fmt.Sprintf("%.1f%%", v.PercentageOver())))
	if v.Unreadable() {
		fmt.Fprintf(b, "   Error: %s\n", r.paint(r.red, v.Err.Error()))
	}

	if verbose && r.suggester != nil {
		if hints := r.suggester.Suggestions(v); len(hints) > 0 {
			fmt.Fprintf(b, "\n   %s\n", r.paint(r.blue, "Suggestions:"))
			for _, hint := range hints[:min(len(hints), maxSuggestions)] {
				fmt.Fprintf(b, "   • %s\n", hint)
			}
		}
	}
	b.WriteString("\n")
}

func (r *Reporter) writeSummary(b *strings.Builder, result *enforcer.Result) {
	fmt.Fprintf(b, "%s\n", r.paint(r.bold, "Summary:"))
	fmt.Fprintf(b, "  Files checked: %d\n", result.TotalFiles)
	fmt.Fprintf(b, "  Total tokens: %s\n", humanize.Comma(int64(result.TotalTokens)))
	fmt.Fprintf(b, "  Violations: %d\n", result.ViolationCount())

	status := r.paint(r.green, "PASSED")
	if !result.Passed {
		status = r.paint(r.red, "FAILED")
	}
	fmt.Fprintf(b, "  Status: %s\n", status)
}

// SummaryLine returns a one-line, uncolored summary of result.
func SummaryLine(result *enforcer.Result) string {
	total := humanize.Comma(int64(result.TotalTokens))
	if result.Passed {
		return fmt.Sprintf("✓ %d files checked, %s tokens total", result.TotalFiles, total)
	}
	return fmt.Sprintf("✗ %d/%d files over limit, %s tokens total", result.ViolationCount(), result.TotalFiles, total)
}

// ExitCode maps a result to a process exit code. A failed check only
// fails the process when failOnExceed is set.
func ExitCode(result *enforcer.Result, failOnExceed bool) int {
	if result.Passed || !failOnExceed {
		return ExitOK
	}
	return ExitFail
}
