package arena

import (
	"bytes"
	"testing"
)

func TestNewZeroInitializes(t *testing.T) {
	type node struct {
		Name  string
		Child *node
	}

	a := NewArena()
	n := New[node](a)
	if n == nil {
		t.Fatal("New returned nil")
	}
	if n.Name != "" || n.Child != nil {
		t.Errorf("allocation not zero-valued: %+v", n)
	}
}

func TestBytesOwnsCopy(t *testing.T) {
	a := NewArena()
	original := []byte("hello")
	owned := a.Bytes(original)

	if !bytes.Equal(owned, original) {
		t.Fatalf("got %q, want %q", owned, original)
	}

	// Mutating the input must not reach the owned copy.
	original[0] = 'X'
	if owned[0] != 'h' {
		t.Error("owned copy aliases the input buffer")
	}
}

func TestBytesEmpty(t *testing.T) {
	a := NewArena()
	owned := a.Bytes(nil)
	if owned == nil || len(owned) != 0 {
		t.Errorf("got %v, want empty non-nil slice", owned)
	}
}

func TestAllocationCounters(t *testing.T) {
	a := NewArena()
	if a.Allocations() != 0 {
		t.Fatalf("fresh arena: got %d allocations", a.Allocations())
	}

	New[int](a)
	New[string](a)
	a.Bytes([]byte("x"))

	if got := a.Allocations(); got != 3 {
		t.Errorf("got %d allocations, want 3", got)
	}
	stats := a.Stats()
	if stats.Allocations != 3 || stats.Retained != 3 {
		t.Errorf("stats: got %+v, want 3/3", stats)
	}
}

func TestRelease(t *testing.T) {
	a := NewArena()
	New[int](a)
	a.Release()

	stats := a.Stats()
	if stats.Retained != 0 {
		t.Errorf("retained after release: got %d, want 0", stats.Retained)
	}
	// The counter is cumulative and survives release.
	if stats.Allocations != 1 {
		t.Errorf("allocations after release: got %d, want 1", stats.Allocations)
	}
}
