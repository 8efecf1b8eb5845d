package ac

import (
	"errors"
	"io"
	"testing"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{EmptyPattern, "EmptyPattern"},
		{Compiled, "Compiled"},
		{NotImplemented, "NotImplemented"},
		{NoWordLengths, "NoWordLengths"},
		{InvalidConfig, "InvalidConfig"},
		{InvalidImage, "InvalidImage"},
		{ErrorKind(99), "UnknownErrorKind(99)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestErrorIsByKind(t *testing.T) {
	err := &Error{Kind: NotImplemented, Message: "custom message"}
	if !errors.Is(err, ErrNotImplemented) {
		t.Error("errors of the same kind should match")
	}
	if errors.Is(err, ErrCompiled) {
		t.Error("errors of different kinds should not match")
	}
	if err.Error() != "ac: custom message" {
		t.Errorf("Error() = %q", err.Error())
	}

	wrapped := &Error{Kind: InvalidImage, Message: "bad", Cause: io.ErrUnexpectedEOF}
	if !errors.Is(wrapped, io.ErrUnexpectedEOF) {
		t.Error("cause should be reachable through Unwrap")
	}
	if wrapped.Error() != "ac: bad: unexpected EOF" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		in   string
		want Layout
		ok   bool
	}{
		{"16", Layout16, true},
		{"12", Layout12, true},
		{"8", Layout8, true},
		{"da", LayoutDoubleArray, true},
		{"double-array", LayoutDoubleArray, true},
		{"32", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseLayout(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseLayout(%q) = %v, %v", tt.in, got, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("ParseLayout(%q) error %v should match ErrInvalidConfig", tt.in, err)
		}
	}
}

func TestLayoutAndWordExtString(t *testing.T) {
	if s := Layout(7).String(); s != "Layout(7)" {
		t.Errorf("Layout(7).String() = %q", s)
	}
	if s := WordExtContent.String(); s != "WordExtContent" {
		t.Errorf("WordExtContent.String() = %q", s)
	}
	if s := WordExt(5).String(); s != "WordExt(5)" {
		t.Errorf("WordExt(5).String() = %q", s)
	}
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Layout != Layout16 || cfg.WordExt != WordExtLength {
		t.Errorf("DefaultConfig = %+v", cfg)
	}
}
