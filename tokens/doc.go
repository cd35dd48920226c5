// Package tokens counts tokens in text and files.
//
// # Counter
//
// The Counter interface provides token counting methods. Two
// implementations are provided: TiktokenCounter, which applies a BPE
// vocabulary such as cl100k_base, and EstimatingCounter, which backs the
// "estimate" encoding with the rule of thumb that about 4 runes make 1
// token and needs no vocabulary download.
//
//	counter, err := tokens.NewTiktokenCounter("cl100k_base")
//	count := counter.Count("Hello, world!")     // 4
//	fits := counter.FitsInLimit("text", 1000)   // true if <= 1000 tokens
//
// # Tokenizer
//
// Tokenizer selects a counter by encoding name and counts files:
//
//	tok, err := tokens.NewTokenizer("cl100k_base")
//	n, err := tok.CountFile("README.md", "utf-8")
//
// CountFile returns a *FileError wrapping ErrNotFound, ErrNotRegular,
// ErrUnknownCharset or ErrDecode when the file cannot be measured.
// Counting is deterministic: the same text and encoding always produce the
// same count.
//
// # Budget
//
// Budget accumulates counts against an optional ceiling:
//
//	budget := tokens.NewBudget(50000)
//	budget.Add(n)
//	budget.Exceeded()                           // true once past 50000
package tokens
