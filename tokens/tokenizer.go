package tokens

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

// DefaultCharset is the text encoding files are read with.
const DefaultCharset = "utf-8"

// Tokenizer pairs a Counter with the encoding name that selected it and
// counts tokens in files as well as strings.
type Tokenizer struct {
	counter  Counter
	encoding string
}

// NewTokenizer returns a tokenizer for the named encoding. An empty name
// selects DefaultEncoding; EncodingEstimate selects the offline estimator.
// Any other name is loaded as a tiktoken encoding.
func NewTokenizer(encoding string) (*Tokenizer, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	if encoding == EncodingEstimate {
		return NewTokenizerWithCounter(encoding, NewEstimatingCounter()), nil
	}
	counter, err := NewTiktokenCounter(encoding)
	if err != nil {
		return nil, err
	}
	return NewTokenizerWithCounter(encoding, counter), nil
}

// NewTokenizerWithCounter wraps an existing counter.
func NewTokenizerWithCounter(encoding string, counter Counter) *Tokenizer {
	return &Tokenizer{counter: counter, encoding: encoding}
}

// Encoding returns the encoding name.
func (t *Tokenizer) Encoding() string {
	return t.encoding
}

// Count returns the number of tokens in text.
func (t *Tokenizer) Count(text string) int {
	return t.counter.Count(text)
}

// FitsInLimit returns true if the text fits within the token limit.
func (t *Tokenizer) FitsInLimit(text string, limit int) bool {
	return t.counter.FitsInLimit(text, limit)
}

// CountFile reads path, decodes it with charset (DefaultCharset when
// empty) and counts its tokens. Failures are returned as *FileError.
func (t *Tokenizer) CountFile(path, charset string) (int, error) {
	text, err := ReadText(path, charset)
	if err != nil {
		return 0, err
	}
	return t.counter.Count(text), nil
}

// String implements fmt.Stringer.
func (t *Tokenizer) String() string {
	return fmt.Sprintf("Tokenizer(encoding=%q)", t.encoding)
}

// Count counts tokens in text with the named encoding.
func Count(text, encoding string) (int, error) {
	t, err := NewTokenizer(encoding)
	if err != nil {
		return 0, err
	}
	return t.Count(text), nil
}

// ReadText reads a regular file and decodes it to a string.
func ReadText(path, charset string) (string, error) {
	if charset == "" {
		charset = DefaultCharset
	}
	fail := func(err error) (string, error) {
		return "", &FileError{Path: path, Charset: charset, Err: err}
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fail(fmt.Errorf("%w: %w", ErrNotFound, err))
	}
	if err != nil {
		return fail(err)
	}
	if !info.Mode().IsRegular() {
		return fail(ErrNotRegular)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fail(err)
	}

	text, err := decode(data, charset)
	if err != nil {
		return fail(err)
	}
	return text, nil
}

func decode(data []byte, charset string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(charset))
	if name == "utf-8" || name == "utf8" {
		// The x/text UTF-8 decoder substitutes invalid bytes instead of failing.
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w with encoding '%s': invalid byte sequence", ErrDecode, charset)
		}
		return string(data), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", fmt.Errorf("%w '%s': %v", ErrUnknownCharset, charset, err)
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w with encoding '%s': %v", ErrDecode, charset, err)
	}
	return string(out), nil
}
