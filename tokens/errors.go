package tokens

import (
	"errors"
	"fmt"
)

// Sentinel errors for token counting.
var (
	// ErrUnknownEncoding indicates the tokenizer encoding could not be loaded.
	ErrUnknownEncoding = errors.New("unknown encoding")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrNotRegular indicates the path is not a regular file.
	ErrNotRegular = errors.New("not a regular file")

	// ErrUnknownCharset indicates the text encoding name is not recognized.
	ErrUnknownCharset = errors.New("unknown text encoding")

	// ErrDecode indicates the file content is not valid in its text encoding.
	ErrDecode = errors.New("cannot decode file")
)

// FileError reports a file whose tokens could not be counted.
type FileError struct {
	Path    string // File that failed
	Charset string // Text encoding used to read it
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("count %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *FileError) Unwrap() error {
	return e.Err
}

// IsFileError reports whether err is, or wraps, a *FileError.
func IsFileError(err error) bool {
	var fileErr *FileError
	return errors.As(err, &fileErr)
}
