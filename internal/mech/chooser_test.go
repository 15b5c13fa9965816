package mech

import (
	"testing"

	"github.com/juxley/linksim/internal/geom"
)

func TestChooserPick(t *testing.T) {
	a := geom.Point{X: 1, Y: 5}
	b := geom.Point{X: 3, Y: -2}

	tests := []struct {
		name    string
		chooser Chooser
		prev    geom.Point
		want    geom.Point
	}{
		{"greater x", GreaterX, geom.Point{}, b},
		{"lesser x", LesserX, geom.Point{}, a},
		{"greater y", GreaterY, geom.Point{}, a},
		{"lesser y", LesserY, geom.Point{}, b},
		{"closest to prev near a", ClosestToPrev, geom.Point{X: 1, Y: 4}, a},
		{"closest to prev near b", ClosestToPrev, geom.Point{X: 3, Y: -1}, b},
		{"zero value is closest", Chooser{}, geom.Point{X: 1, Y: 4}, a},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.chooser.Pick(a, b, tt.prev); got != tt.want {
				t.Errorf("pick = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChooserTieFallsBackToFirst(t *testing.T) {
	a := geom.Point{X: 2, Y: 1}
	b := geom.Point{X: 2, Y: -1}

	if got := GreaterX.Pick(a, b, geom.Point{}); got != a {
		t.Errorf("equal x should fall back to the first candidate, got %v", got)
	}
	// Equidistant candidates under the continuity rule resolve the same way.
	if got := ClosestToPrev.Pick(a, b, geom.Point{X: 2}); got != a {
		t.Errorf("equidistant candidates should fall back to the first, got %v", got)
	}
}

func TestCustomChooser(t *testing.T) {
	pickSecond := CustomChooser(func(a, b, prev geom.Point) geom.Point { return b })
	a := geom.Point{X: 1}
	b := geom.Point{X: 2}

	if got := pickSecond.Pick(a, b, geom.Point{}); got != b {
		t.Errorf("custom chooser ignored, got %v", got)
	}
	if pickSecond.String() != "custom" {
		t.Errorf("String() = %q, want custom", pickSecond.String())
	}
}
