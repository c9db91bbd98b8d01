package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when compressing zero bytes.
	ErrEmptyInput = errors.New("huffman: empty input")

	// ErrInputTooLarge is returned when the input or extension length does
	// not fit a signed 32-bit header field.
	ErrInputTooLarge = errors.New("huffman: input exceeds 32-bit symbol count")

	// ErrMissingCode is returned by Pack for a symbol absent from the table.
	ErrMissingCode = errors.New("huffman: symbol has no code")

	// ErrBadMagic means the input is not a compressed file or its header
	// ends early.
	ErrBadMagic = errors.New("huffman: bad magic or truncated header")

	// ErrCorruptTree means the serialized tree does not parse.
	ErrCorruptTree = errors.New("huffman: corrupt tree")

	// ErrTruncatedStream means the payload ran out of bits before the
	// recorded symbol count was decoded.
	ErrTruncatedStream = errors.New("huffman: truncated stream")
)

// FormatError describes malformed compressed input. Kind is one of
// ErrBadMagic, ErrCorruptTree or ErrTruncatedStream.
type FormatError struct {
	Kind   error
	Offset int64 // byte offset within the section being parsed
	Detail string
}

func (e *FormatError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v at offset %d", e.Kind, e.Offset)
	}
	return fmt.Sprintf("%v at offset %d: %s", e.Kind, e.Offset, e.Detail)
}

func (e *FormatError) Unwrap() error {
	return e.Kind
}

func formatErrorf(kind error, offset int64, format string, args ...any) *FormatError {
	return &FormatError{Kind: kind, Offset: offset, Detail: fmt.Sprintf(format, args...)}
}
