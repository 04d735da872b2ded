package scene

import (
	"math"
	"testing"

	"charterm/pkg/geom"
)

func TestClassifyPoint(t *testing.T) {
	// Rectangle spanning (100,100)-(300,200), threshold 8.
	e := &Entity{
		Pos:  geom.World{X: 100, Y: 100},
		Size: geom.Size{W: 200, H: 100},
	}
	const threshold = 8.0

	tests := []struct {
		name string
		x, y float64
		want Part
	}{
		{"center", 200, 150, PartInside},
		{"left edge midpoint", 100, 150, PartLeft},
		{"right edge midpoint", 300, 150, PartRight},
		{"top edge midpoint", 200, 100, PartTop},
		{"bottom edge midpoint", 200, 200, PartBottom},
		{"interior within left band", 105, 150, PartLeft},
		{"just past threshold is inside", 108, 150, PartInside},
		{"top-left corner exact", 100, 100, PartTopLeft},
		{"top-right corner exact", 300, 100, PartTopRight},
		{"bottom-left corner exact", 100, 200, PartBottomLeft},
		{"bottom-right corner exact", 300, 200, PartBottomRight},
		{"corner slightly outside box", 95, 95, PartTopLeft},
		{"corner band overrides edge", 296, 196, PartBottomRight},
		{"beyond extended span", 100, 215, PartNone},
		{"far away", 50, 50, PartNone},
		{"outside with no band", 320, 150, PartNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ClassifyPoint(geom.World{X: tt.x, Y: tt.y}, threshold)
			if got != tt.want {
				t.Errorf("ClassifyPoint(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestMinHeight(t *testing.T) {
	tests := []struct {
		name    string
		entries int
		scale   float64
		want    float64
	}{
		{"no entries scale 1", 0, 1, titleLineHeight + 2*boxPadding},
		{"two entries scale 1", 2, 1, titleLineHeight + 2*entryLineHeight + 2*boxPadding},
		{"two entries zoomed in", 2, 2, (titleLineHeight + 2*entryLineHeight + 2*boxPadding) / 2},
		{"one entry zoomed out", 1, 0.5, (titleLineHeight + entryLineHeight + 2*boxPadding) * 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinHeight(tt.entries, tt.scale)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MinHeight(%d, %v) = %v, want %v", tt.entries, tt.scale, got, tt.want)
			}
		})
	}
}

func TestMinWidth(t *testing.T) {
	if got := MinWidth(2); got != minEntityWidth/2 {
		t.Errorf("MinWidth(2) = %v", got)
	}
	if got := MinWidth(0.25); got != minEntityWidth*4 {
		t.Errorf("MinWidth(0.25) = %v", got)
	}
}

func TestEntryRow(t *testing.T) {
	e := &Entity{Data: RectData{Entries: []Entry{{ID: "a"}, {ID: "b"}}}}
	if row, ok := e.entryRow("b"); !ok || row != 1 {
		t.Errorf("entryRow(b) = %d, %v", row, ok)
	}
	if _, ok := e.entryRow("missing"); ok {
		t.Error("entryRow found a missing entry")
	}
}

func TestCursorForCoversEveryPart(t *testing.T) {
	parts := []Part{
		PartNone, PartInside, PartLeft, PartRight, PartTop, PartBottom,
		PartTopLeft, PartTopRight, PartBottomLeft, PartBottomRight,
	}
	seen := make(map[Cursor]bool)
	for _, p := range parts {
		seen[cursorFor(p)] = true
	}
	if len(seen) != len(parts) {
		t.Errorf("cursorFor maps %d parts to %d cursors, want 1:1", len(parts), len(seen))
	}
}
