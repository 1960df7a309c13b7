package engine

import "testing"

func TestCursor_AdvanceClampsAtEnd(t *testing.T) {
	c := NewCursor(3)

	if !c.Advance() {
		t.Fatal("advance from 0 should move")
	}
	if !c.Advance() {
		t.Fatal("advance from 1 should move")
	}
	if c.Index() != 2 {
		t.Fatalf("index = %d, want 2", c.Index())
	}

	// Last index: advance is a no-op, not an error.
	if c.Advance() {
		t.Error("advance at last index should be a no-op")
	}
	if c.Index() != 2 {
		t.Errorf("index after clamped advance = %d, want 2", c.Index())
	}
}

func TestCursor_Select(t *testing.T) {
	c := NewCursor(5)

	if !c.Select(3) {
		t.Fatal("select within range should succeed")
	}
	if c.Index() != 3 {
		t.Errorf("index = %d, want 3", c.Index())
	}

	if c.Select(5) {
		t.Error("select past end should be refused")
	}
	if c.Select(-1) {
		t.Error("negative select should be refused")
	}
	if c.Index() != 3 {
		t.Errorf("index after refused selects = %d, want 3", c.Index())
	}
}

func TestCursor_EmptyList(t *testing.T) {
	c := NewCursor(0)
	if c.Advance() {
		t.Error("advance on empty list should be a no-op")
	}
	if c.Select(0) {
		t.Error("select on empty list should be refused")
	}
	if !c.AtEnd() {
		t.Error("empty list is at end")
	}
}
