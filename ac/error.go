package ac

import (
	"fmt"

	"github.com/coregx/coreac/trie"
)

// ErrCapacityExceeded is matched by every *CapacityError.
var ErrCapacityExceeded = trie.ErrCapacityExceeded

// CapacityError reports that a dictionary outgrew the chosen layout: too
// many states, words or output entries. Rebuilding with a wider layout
// recovers.
type CapacityError = trie.CapacityError

// ErrEmptyPattern is returned by AddWord for a zero-length pattern.
var ErrEmptyPattern = &Error{
	Kind:    EmptyPattern,
	Message: "empty pattern",
}

// ErrCompiled is returned by AddWord and Compile once Compile has run.
var ErrCompiled = &Error{
	Kind:    Compiled,
	Message: "builder already compiled",
}

// ErrNotImplemented is returned by operations the automaton's layout cannot
// support.
var ErrNotImplemented = &Error{
	Kind:    NotImplemented,
	Message: "not implemented for this layout",
}

// ErrNoWordLengths is returned by operations that need the word offsets
// table of WordExtLength or WordExtContent.
var ErrNoWordLengths = &Error{
	Kind:    NoWordLengths,
	Message: "automaton has no word lengths",
}

// ErrInvalidConfig is matched by every *ConfigError.
var ErrInvalidConfig = &Error{
	Kind:    InvalidConfig,
	Message: "invalid configuration",
}

// ErrInvalidImage is returned by FromImage when the image does not describe
// a well-formed automaton.
var ErrInvalidImage = &Error{
	Kind:    InvalidImage,
	Message: "invalid automaton image",
}

// ErrorKind classifies automaton errors.
type ErrorKind uint8

const (
	// EmptyPattern indicates an attempt to add a zero-length word
	EmptyPattern ErrorKind = iota

	// Compiled indicates a builder was used after Compile
	Compiled

	// NotImplemented indicates the layout lacks a capability
	NotImplemented

	// NoWordLengths indicates the word offsets table is missing
	NoWordLengths

	// InvalidConfig indicates configuration validation failed
	InvalidConfig

	// InvalidImage indicates a malformed persisted image
	InvalidImage
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case EmptyPattern:
		return "EmptyPattern"
	case Compiled:
		return "Compiled"
	case NotImplemented:
		return "NotImplemented"
	case NoWordLengths:
		return "NoWordLengths"
	case InvalidConfig:
		return "InvalidConfig"
	case InvalidImage:
		return "InvalidImage"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error is an automaton error classified by Kind.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ac: %s: %v", e.Message, e.Cause)
	}
	return "ac: " + e.Message
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func invalidImage(format string, args ...any) error {
	return &Error{Kind: InvalidImage, Message: "invalid automaton image", Cause: fmt.Errorf(format, args...)}
}
