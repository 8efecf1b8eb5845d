package sparse

import (
	"testing"
)

func TestSparseSet_InsertContains(t *testing.T) {
	s := NewSparseSet(100)
	if len(s.Values()) != 0 || s.Contains(0) {
		t.Fatal("new set should be empty")
	}

	tests := []struct {
		value uint32
		fresh bool
	}{
		{5, true},
		{5, false},
		{0, true},
		{99, true},
		{0, false},
	}
	for _, tt := range tests {
		if got := s.Insert(tt.value); got != tt.fresh {
			t.Errorf("Insert(%d) = %v, want %v", tt.value, got, tt.fresh)
		}
		if !s.Contains(tt.value) {
			t.Errorf("Contains(%d) = false after insert", tt.value)
		}
	}
	if n := len(s.Values()); n != 3 {
		t.Errorf("%d members, want 3", n)
	}
	if s.Contains(100) || s.Contains(1<<31) {
		t.Error("values at or above capacity must not be members")
	}
}

func TestSparseSet_InsertionOrder(t *testing.T) {
	s := NewSparseSet(0)
	for _, v := range []uint32{42, 7, 63, 7, 1} {
		s.Insert(v)
	}
	want := []uint32{42, 7, 63, 1}

	got := s.Values()
	if len(got) != len(want) {
		t.Fatalf("Values = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Values = %v, want %v", got, want)
		}
	}
}

// Stale sparse entries left by Clear must not produce false positives.
func TestSparseSet_ClearIsO1(t *testing.T) {
	s := NewSparseSet(100)
	for i := uint32(0); i < 50; i++ {
		s.Insert(i)
	}
	s.Clear()
	if len(s.Values()) != 0 {
		t.Fatal("set should be empty after Clear")
	}
	for i := uint32(0); i < 50; i++ {
		if s.Contains(i) {
			t.Fatalf("cleared set contains %d", i)
		}
	}
	s.Insert(30)
	if !s.Contains(30) || s.Contains(0) || len(s.Values()) != 1 {
		t.Error("set misbehaves after reuse")
	}
}

func TestSparseSet_Resize(t *testing.T) {
	s := NewSparseSet(10)
	s.Insert(5)
	s.Insert(7)

	s.Resize(100)
	if s.Capacity() != 100 {
		t.Errorf("Capacity = %d, want 100", s.Capacity())
	}
	if !s.Contains(5) || !s.Contains(7) {
		t.Error("grow must keep members")
	}
	s.Insert(50)
	if !s.Contains(50) {
		t.Error("grown set should accept 50")
	}

	s.Resize(50)
	if len(s.Values()) != 0 || s.Capacity() != 50 {
		t.Errorf("shrink: %d members, Capacity = %d, want 0, 50", len(s.Values()), s.Capacity())
	}

	s.Resize(0)
	if s.Capacity() != 64 {
		t.Errorf("Resize(0): Capacity = %d, want 64", s.Capacity())
	}
}

func BenchmarkSparseSet_Insert(b *testing.B) {
	s := NewSparseSet(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Clear()
		for j := uint32(0); j < 100; j++ {
			s.Insert(j)
		}
	}
}

func BenchmarkSparseSet_Contains(b *testing.B) {
	s := NewSparseSet(1000)
	for j := uint32(0); j < 100; j++ {
		s.Insert(j)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := uint32(0); j < 100; j++ {
			s.Contains(j)
		}
	}
}
