package tokens

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Encoding names understood by NewTokenizer.
const (
	// EncodingCL100K is the GPT-4 / GPT-3.5 vocabulary and the default.
	EncodingCL100K = "cl100k_base"

	// EncodingP50K is the Codex / text-davinci-002 vocabulary.
	EncodingP50K = "p50k_base"

	// EncodingR50K is the GPT-3 vocabulary.
	EncodingR50K = "r50k_base"

	// EncodingEstimate selects the offline character-ratio estimator.
	EncodingEstimate = "estimate"
)

// DefaultEncoding is used when no encoding is named.
const DefaultEncoding = EncodingCL100K

// TiktokenCounter counts tokens with a BPE vocabulary from tiktoken.
// The vocabulary is fetched on first use and cached under
// TIKTOKEN_CACHE_DIR when that variable is set.
type TiktokenCounter struct {
	name string

	// Encode is not documented as safe for concurrent use.
	mu  sync.Mutex
	enc *tiktoken.Tiktoken
}

// NewTiktokenCounter loads the named BPE encoding.
func NewTiktokenCounter(encoding string) (*TiktokenCounter, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load tiktoken encoding '%s': %v", ErrUnknownEncoding, encoding, err)
	}
	return &TiktokenCounter{name: encoding, enc: enc}, nil
}

// Encoding returns the encoding name.
func (c *TiktokenCounter) Encoding() string {
	return c.name
}

// Count returns the number of BPE tokens in text. Special-token markers
// are counted as ordinary text.
func (c *TiktokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.enc.Encode(text, nil, nil))
}

// FitsInLimit returns true if the text fits within the token limit.
func (c *TiktokenCounter) FitsInLimit(text string, limit int) bool {
	return c.Count(text) <= limit
}
