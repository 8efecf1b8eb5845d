package conv

import (
	"math"
	"testing"
)

func TestIntToUint32(t *testing.T) {
	tests := []struct {
		in    int
		want  uint32
		panic bool
	}{
		{0, 0, false},
		{42, 42, false},
		{math.MaxUint32, math.MaxUint32, false},
		{-1, 0, true},
		{math.MaxUint32 + 1, 0, true},
	}
	for _, tt := range tests {
		got, panicked := catch(func() uint32 { return IntToUint32(tt.in) })
		if panicked != tt.panic {
			t.Errorf("IntToUint32(%d): panicked = %v, want %v", tt.in, panicked, tt.panic)
			continue
		}
		if !panicked && got != tt.want {
			t.Errorf("IntToUint32(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestUint64ToUint32(t *testing.T) {
	if got := Uint64ToUint32(7); got != 7 {
		t.Errorf("Uint64ToUint32(7) = %d", got)
	}
	if _, panicked := catch(func() uint32 { return Uint64ToUint32(math.MaxUint32 + 1) }); !panicked {
		t.Error("expected panic above MaxUint32")
	}
	if _, panicked := catch(func() uint32 { return uint32(Uint64ToInt(math.MaxUint64)) }); !panicked {
		t.Error("expected panic above MaxInt")
	}
}

func catch(fn func() uint32) (v uint32, panicked bool) {
	defer func() {
		if recover() != nil {
			panicked = true
		}
	}()
	return fn(), false
}

type pair struct {
	a, b uint32
}

func TestViewRoundTrip(t *testing.T) {
	src := []pair{{1, 2}, {3, 4}, {0xFFFFFFFF, 0}}
	raw := Bytes(src)
	if len(raw) != 24 {
		t.Fatalf("len(Bytes) = %d, want 24", len(raw))
	}

	back, err := View[pair](raw)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(back) != len(src) {
		t.Fatalf("len(View) = %d, want %d", len(back), len(src))
	}
	for i := range src {
		if back[i] != src[i] {
			t.Errorf("element %d = %v, want %v", i, back[i], src[i])
		}
	}

	// Views alias their source.
	back[0].a = 9
	if src[0].a != 9 {
		t.Error("View copied instead of aliasing")
	}
}

func TestViewErrors(t *testing.T) {
	buf := make([]uint64, 4)
	raw := Bytes(buf)

	if _, err := View[uint32](raw[:6]); err == nil {
		t.Error("expected length error")
	}
	if _, err := View[uint32](raw[1:9]); err == nil {
		t.Error("expected alignment error")
	}
	if v, err := View[uint32](nil); err != nil || v != nil {
		t.Errorf("View(nil) = %v, %v", v, err)
	}
}
