package tokens

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// tiktokenCounter loads cl100k_base, skipping when the vocabulary cannot be
// fetched (for example in an offline sandbox without TIKTOKEN_CACHE_DIR).
func tiktokenCounter(t testing.TB) *TiktokenCounter {
	t.Helper()
	c, err := NewTiktokenCounter(EncodingCL100K)
	if err != nil {
		t.Skipf("cl100k_base unavailable: %v", err)
	}
	return c
}

func TestTiktokenCounter_Count(t *testing.T) {
	c := tiktokenCounter(t)

	tests := []struct {
		name string
		text string
		min  int
		max  int
	}{
		{name: "empty", text: "", min: 0, max: 0},
		{name: "hello world", text: "Hello, world!", min: 4, max: 4},
		{name: "sentence", text: "The quick brown fox jumps over the lazy dog.", min: 10, max: 12},
		{name: "markdown", text: "# Title\n\n- item one\n- item two\n\n```go\nfmt.Println(1)\n```\n", min: 15, max: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Count(tt.text)
			if got < tt.min || got > tt.max {
				t.Errorf("Count(%q) = %d, expected between %d and %d", tt.text, got, tt.min, tt.max)
			}
		})
	}
}

func TestTiktokenCounter_Encoding(t *testing.T) {
	c := tiktokenCounter(t)
	if c.Encoding() != EncodingCL100K {
		t.Errorf("Encoding() = %q, expected %q", c.Encoding(), EncodingCL100K)
	}
	if !c.FitsInLimit("Hello, world!", 4) {
		t.Error("4 tokens should fit a limit of 4")
	}
	if c.FitsInLimit("Hello, world!", 3) {
		t.Error("4 tokens should not fit a limit of 3")
	}
}

func TestTokenizer_DefaultEncoding_CountFile(t *testing.T) {
	tiktokenCounter(t)
	tok, err := NewTokenizer("")
	if err != nil {
		t.Fatalf("NewTokenizer() error = %v", err)
	}
	if tok.Encoding() != DefaultEncoding {
		t.Errorf("Encoding() = %q, expected %q", tok.Encoding(), DefaultEncoding)
	}

	path := writeFile(t, "hello.md", []byte("Hello, world!"))
	n, err := tok.CountFile(path, "utf-8")
	if err != nil {
		t.Fatalf("CountFile() error = %v", err)
	}
	if n != 4 {
		t.Errorf("CountFile() = %d, expected 4", n)
	}

	big := writeFile(t, "big.md", []byte(strings.Repeat("This is a test sentence. ", 200)))
	n, err = tok.CountFile(filepath.Clean(big), "")
	if err != nil {
		t.Fatalf("CountFile() error = %v", err)
	}
	if n < 1000 || n > 1300 {
		t.Errorf("CountFile(large) = %d, expected about 1200", n)
	}
}

func TestTiktokenCounter_ConcurrentUse(t *testing.T) {
	c := tiktokenCounter(t)
	want := c.Count("Hello, world!")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := c.Count("Hello, world!"); got != want {
				t.Errorf("Count() = %d, expected %d", got, want)
			}
		}()
	}
	wg.Wait()
}

func BenchmarkTiktokenCounter_Count(b *testing.B) {
	c := tiktokenCounter(b)
	text := strings.Repeat("Hello World ", 100)

	b.ResetTimer()
	for range b.N {
		c.Count(text)
	}
}
