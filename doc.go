// Package mdtoken keeps markdown documentation within token budgets.
//
// Documentation that is loaded into an AI context window costs tokens on
// every request. mdtoken counts the tokens in each markdown file, compares
// them with per-file limits and an optional total budget, and fails a
// commit that would push a file over. Each subpackage can be used on its
// own:
//
//   - config: Limits policy, loaded from .mdtokenrc.yaml or TOML
//   - tokens: Token counting with tiktoken encodings or an estimate
//   - matcher: Finding markdown files and pairing each with its limit
//   - enforcer: Counting, comparing and collecting violations
//   - report: Console output and exit codes
//   - watch: Re-checking as files change
//
// # Quick Start
//
// Check every markdown file under the working directory:
//
//	import "github.com/randalmurphal/mdtoken/enforcer"
//	cfg, _ := config.Load(config.DefaultFileName)
//	enf, _ := enforcer.NewDefault(cfg, tokens.DefaultEncoding, "")
//	result := enf.Check()
//
// Count a single string:
//
//	n, _ := tokens.Count("Hello, world!", tokens.EncodingCL100K)
//
// The mdtoken command in cmd/mdtoken wraps these for use as a pre-commit
// hook.
package mdtoken
