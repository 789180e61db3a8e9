package state

import "testing"

func TestCursorMovementClampsAtEdges(t *testing.T) {
	l := NewList(sampleItems())
	l.Cursor = 0
	if l.MoveCursorUp() {
		t.Fatalf("cursor at top must not move up")
	}
	if !l.MoveCursorDown() || l.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", l.Cursor)
	}
	l.MoveCursorEnd()
	if l.Cursor != 2 {
		t.Fatalf("expected cursor at end, got %d", l.Cursor)
	}
	if l.MoveCursorDown() {
		t.Fatalf("cursor at bottom must not move down")
	}
	l.MoveCursorHome()
	if l.Cursor != 0 {
		t.Fatalf("expected cursor home, got %d", l.Cursor)
	}
}

func TestPageMovementUsesVisibleWindow(t *testing.T) {
	l := NewList(sampleItems())
	l.Cursor = 0
	l.MoveCursorPageDown(2)
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2 after page down, got %d", l.Cursor)
	}
	l.MoveCursorPageUp(2)
	if l.Cursor != 0 {
		t.Fatalf("expected cursor 0 after page up, got %d", l.Cursor)
	}
}

func TestEnsureCursorVisibleScrollsViewport(t *testing.T) {
	items := sampleItems()
	l := NewList(items)
	l.Cursor = 2
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 1 {
		t.Fatalf("expected offset 1, got %d", l.ViewportOffset)
	}
	l.Cursor = 0
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset 0, got %d", l.ViewportOffset)
	}
}

func TestCursorOnEmptyList(t *testing.T) {
	l := NewList(nil)
	if l.MoveCursorDown() || l.MoveCursorUp() {
		t.Fatalf("empty list must not move")
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", l.Cursor)
	}
}
