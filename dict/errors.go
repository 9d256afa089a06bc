package dict

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat matches every *FormatError.
	ErrFormat = errors.New("dict: malformed dictionary")
	// ErrOutOfRange marks a lookup with an id outside its table.
	ErrOutOfRange = errors.New("dict: id out of range")
	// ErrExhausted marks dereferencing an iterator past its end.
	ErrExhausted = errors.New("dict: iterator exhausted")
	// ErrNoFlexTrie marks a flex trie request on a dictionary without tries.
	ErrNoFlexTrie = errors.New("dict: dictionary has no flex tries")
)

// FormatError describes why a dictionary blob was rejected.
//
// errors.Is(err, ErrFormat) holds for every FormatError; the underlying cause
// (if any) can be accessed via errors.Unwrap.
type FormatError struct {
	Backend string
	Section string
	Reason  string
	cause   error
}

// NewFormatError returns a FormatError for the given backend and section.
func NewFormatError(backend, section, reason string, cause error) *FormatError {
	return &FormatError{Backend: backend, Section: section, Reason: reason, cause: cause}
}

// Formatf is NewFormatError with a formatted reason and no cause.
func Formatf(backend, section, format string, args ...any) *FormatError {
	return &FormatError{Backend: backend, Section: section, Reason: fmt.Sprintf(format, args...)}
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("%s dictionary: %s: %s", e.Backend, e.Section, e.Reason)
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.cause }

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// OutOfRange panics with an error wrapping ErrOutOfRange.
func OutOfRange(what string, id, size int) {
	panic(fmt.Errorf("%w: %s %d not in [0, %d)", ErrOutOfRange, what, id, size))
}

// Exhausted panics with an error wrapping ErrExhausted.
func Exhausted(what string) {
	panic(fmt.Errorf("%w: %s", ErrExhausted, what))
}
