package ac

import (
	"fmt"
	"io"
	"log/slog"
)

// Layout selects the state representation of an automaton. It is fixed for
// the lifetime of the automaton.
type Layout uint8

const (
	// Layout16 stores 16-byte linked states. It has the highest capacity.
	Layout16 Layout = iota

	// Layout12 stores 12-byte linked states: up to 2^26-2 states and
	// 2^30-1 output entries.
	Layout12

	// Layout8 stores 8-byte linked states: up to 0x1FFFE states and
	// 0x7FFF output entries.
	Layout8

	// LayoutDoubleArray stores 16-byte double-array states. Child lookup is
	// a single indexed load, and parent links make RestoreWord possible.
	LayoutDoubleArray
)

var layoutNames = [...]string{"Layout16", "Layout12", "Layout8", "LayoutDoubleArray"}

// String returns the Go name of the layout.
func (l Layout) String() string {
	if int(l) < len(layoutNames) {
		return layoutNames[l]
	}
	return fmt.Sprintf("Layout(%d)", l)
}

// ParseLayout parses the short layout names used on command lines:
// "16", "12", "8" and "da".
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "16":
		return Layout16, nil
	case "12":
		return Layout12, nil
	case "8":
		return Layout8, nil
	case "da", "double-array":
		return LayoutDoubleArray, nil
	}
	return 0, &ConfigError{Field: "Layout", Message: fmt.Sprintf("unknown layout %q (want 16, 12, 8 or da)", s)}
}

// WordExt selects the per-word tables kept next to the automaton.
type WordExt uint8

const (
	// WordExtNone keeps no per-word data; only word ids are reported.
	WordExtNone WordExt = iota

	// WordExtLength keeps an offsets table from which word lengths (and so
	// match start positions) are derived.
	WordExtLength

	// WordExtContent keeps offsets and the concatenated word bytes.
	WordExtContent
)

// String returns the Go name of the word extension.
func (e WordExt) String() string {
	switch e {
	case WordExtNone:
		return "WordExtNone"
	case WordExtLength:
		return "WordExtLength"
	case WordExtContent:
		return "WordExtContent"
	default:
		return fmt.Sprintf("WordExt(%d)", e)
	}
}

// Config controls how a Builder lays out and post-processes the automaton.
//
// Example:
//
//	cfg := ac.DefaultConfig()
//	cfg.Layout = ac.LayoutDoubleArray
//	b, err := ac.NewBuilder(cfg)
type Config struct {
	// Layout is the state representation.
	// Default: Layout16
	Layout Layout

	// WordExt selects the per-word tables.
	// Default: WordExtLength
	WordExt WordExt

	// Lexicographic renumbers words by the lexicographic rank of their bytes
	// after compilation instead of keeping insertion order.
	// Default: false
	Lexicographic bool

	// SortByWordLen orders every state's output range by word length,
	// longest first.
	// Default: false
	SortByWordLen bool

	// Logger receives build statistics at debug level. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with a 16-byte linked layout and
// word lengths, which is enough to report match start positions.
func DefaultConfig() Config {
	return Config{
		Layout:  Layout16,
		WordExt: WordExtLength,
	}
}

// Validate checks that every field holds a known value.
func (c Config) Validate() error {
	if c.Layout > LayoutDoubleArray {
		return &ConfigError{Field: "Layout", Message: fmt.Sprintf("unknown layout %d", c.Layout)}
	}
	if c.WordExt > WordExtContent {
		return &ConfigError{Field: "WordExt", Message: fmt.Sprintf("unknown word extension %d", c.WordExt)}
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return discardLogger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "ac: invalid config: " + e.Field + ": " + e.Message
}

// Unwrap returns ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
