package ui

import "testing"

func TestDetermineLayoutMode(t *testing.T) {
	if got := DetermineLayoutMode(140, 30); got != LayoutWide {
		t.Fatalf("expected wide, got %v", got)
	}
	if got := DetermineLayoutMode(120, 30); got != LayoutWide {
		t.Fatalf("expected wide at the threshold, got %v", got)
	}
	if got := DetermineLayoutMode(100, 30); got != LayoutMedium {
		t.Fatalf("expected medium, got %v", got)
	}
	if got := DetermineLayoutMode(140, 29); got != LayoutMedium {
		t.Fatalf("expected medium by height, got %v", got)
	}
	if got := DetermineLayoutMode(80, 24); got != LayoutMedium {
		t.Fatalf("expected medium at the minimum, got %v", got)
	}
	if got := DetermineLayoutMode(79, 30); got != LayoutTooSmall {
		t.Fatalf("expected too-small, got %v", got)
	}
	if got := DetermineLayoutMode(100, 20); got != LayoutTooSmall {
		t.Fatalf("expected too-small by height, got %v", got)
	}
}
