package scene

import (
	"math"
	"testing"

	"charterm/pkg/geom"
)

const tolerance = 1e-9

func TestDragMovesEntityByWorldDelta(t *testing.T) {
	s, _ := newTestScene(t)
	s.AddEntity(RectData{ID: "a", Title: "A"})
	placeEntity(s, "a", 10, 10, 200, 120)

	s.PointerDown(0, geom.Screen{X: 110, Y: 70})
	s.PointerMove(0, geom.Screen{X: 160, Y: 100})
	s.PointerUp(0, geom.Screen{X: 160, Y: 100})

	e, _ := s.Entity("a")
	if e.Pos.X != 60 || e.Pos.Y != 40 {
		t.Errorf("pos after drag = %+v, want (60, 40)", e.Pos)
	}
}

func TestDragDeltaIsScaledToWorld(t *testing.T) {
	s, _ := newTestScene(t)
	s.view = geom.Transform{Scale: 2, TX: 0, TY: 0}
	s.AddEntity(RectData{ID: "a"})
	placeEntity(s, "a", 0, 0, 200, 120)

	// Screen (100, 60) is world (50, 30), inside the entity.
	s.PointerDown(0, geom.Screen{X: 100, Y: 60})
	s.PointerMove(0, geom.Screen{X: 140, Y: 60})
	s.PointerUp(0, geom.Screen{X: 140, Y: 60})

	e, _ := s.Entity("a")
	if e.Pos.X != 20 || e.Pos.Y != 0 {
		t.Errorf("pos = %+v, want world delta 40/2 = 20", e.Pos)
	}
}

func TestResizeClampsToMinHeightWithOppositeEdgePinned(t *testing.T) {
	s, _ := newTestScene(t)
	s.AddEntity(RectData{ID: "a", Entries: []Entry{{ID: "e1"}, {ID: "e2"}}})
	placeEntity(s, "a", 100, 100, 200, 120)

	// Grab the bottom edge and push it up far beyond the content height.
	s.PointerDown(0, geom.Screen{X: 200, Y: 220})
	s.PointerMove(0, geom.Screen{X: 200, Y: 20})
	s.PointerUp(0, geom.Screen{X: 200, Y: 20})

	e, _ := s.Entity("a")
	wantH := MinHeight(2, 1)
	if math.Abs(e.Size.H-wantH) > tolerance {
		t.Errorf("height = %v, want clamped minimum %v", e.Size.H, wantH)
	}
	if e.Pos.Y != 100 {
		t.Errorf("top edge moved to %v during bottom resize", e.Pos.Y)
	}
}

func TestResizeLeftEdgeKeepsRightEdgeFixed(t *testing.T) {
	s, _ := newTestScene(t)
	s.AddEntity(RectData{ID: "a"})
	placeEntity(s, "a", 100, 100, 200, 120)

	// Drag the left edge right past the minimum width.
	s.PointerDown(0, geom.Screen{X: 100, Y: 160})
	s.PointerMove(0, geom.Screen{X: 290, Y: 160})
	s.PointerUp(0, geom.Screen{X: 290, Y: 160})

	e, _ := s.Entity("a")
	if math.Abs(e.Size.W-MinWidth(1)) > tolerance {
		t.Errorf("width = %v, want clamped minimum %v", e.Size.W, MinWidth(1))
	}
	right := e.Pos.X + e.Size.W
	if math.Abs(right-300) > tolerance {
		t.Errorf("right edge moved to %v, want 300", right)
	}
}

func TestResizeCornerAdjustsBothAxes(t *testing.T) {
	s, _ := newTestScene(t)
	s.AddEntity(RectData{ID: "a"})
	placeEntity(s, "a", 100, 100, 200, 120)

	s.PointerDown(0, geom.Screen{X: 300, Y: 220}) // bottom-right corner
	s.PointerMove(0, geom.Screen{X: 340, Y: 260})
	s.PointerUp(0, geom.Screen{X: 340, Y: 260})

	e, _ := s.Entity("a")
	if e.Size.W != 240 || e.Size.H != 160 {
		t.Errorf("size = %+v, want (240, 160)", e.Size)
	}
	if e.Pos.X != 100 || e.Pos.Y != 100 {
		t.Errorf("origin moved during bottom-right resize: %+v", e.Pos)
	}
}

func TestPanIsScreenLinear(t *testing.T) {
	s, _ := newTestScene(t)
	s.view = geom.Transform{Scale: 4, TX: 0, TY: 0}

	s.PointerDown(0, geom.Screen{X: 400, Y: 300})
	s.PointerMove(0, geom.Screen{X: 430, Y: 280})
	s.PointerUp(0, geom.Screen{X: 430, Y: 280})

	if s.view.TX != 30 || s.view.TY != -20 {
		t.Errorf("translate = (%v, %v), want raw screen delta (30, -20)", s.view.TX, s.view.TY)
	}
	if s.view.Scale != 4 {
		t.Errorf("pan changed scale to %v", s.view.Scale)
	}
}

func TestPinchScalesByDistanceRatio(t *testing.T) {
	s, _ := newTestScene(t)

	s.PointerDown(0, geom.Screen{X: 100, Y: 100})
	s.PointerDown(1, geom.Screen{X: 200, Y: 100})

	pivot := s.view.ToWorld(geom.Screen{X: 150, Y: 100})

	s.PointerMove(1, geom.Screen{X: 300, Y: 100})

	if math.Abs(s.view.Scale-2) > tolerance {
		t.Errorf("scale = %v, want startScale * finalDist/startDist = 2", s.view.Scale)
	}

	// Pivot invariance: the world point under the initial midpoint must sit
	// under the current midpoint.
	mid := geom.Screen{X: 200, Y: 100}
	back := s.view.ToScreen(pivot)
	if math.Abs(back.X-mid.X) > tolerance || math.Abs(back.Y-mid.Y) > tolerance {
		t.Errorf("pivot now at %+v, want midpoint %+v", back, mid)
	}
}

func TestPinchEndsWhenPointerLifts(t *testing.T) {
	s, _ := newTestScene(t)
	s.AddEntity(RectData{ID: "a"})
	placeEntity(s, "a", 0, 0, 800, 600)

	s.PointerDown(0, geom.Screen{X: 100, Y: 100})
	s.PointerDown(1, geom.Screen{X: 200, Y: 100})
	s.PointerUp(1, geom.Screen{X: 200, Y: 100})

	scale := s.view.Scale
	// The remaining pointer must not resume a drag or pan.
	s.PointerMove(0, geom.Screen{X: 400, Y: 400})
	e, _ := s.Entity("a")
	if e.Pos.X != 0 || e.Pos.Y != 0 {
		t.Errorf("entity moved after pinch ended: %+v", e.Pos)
	}
	if s.view.Scale != scale || s.view.TX != 0 {
		t.Errorf("view changed after pinch ended: %+v", s.view)
	}
}

func TestPinchReanchorsWhenTrackedPointerLifts(t *testing.T) {
	s, _ := newTestScene(t)

	s.PointerDown(0, geom.Screen{X: 100, Y: 100})
	s.PointerDown(1, geom.Screen{X: 200, Y: 100}) // pinch between 0 and 1
	s.PointerDown(2, geom.Screen{X: 150, Y: 300}) // third finger joins

	s.PointerUp(1, geom.Screen{X: 200, Y: 100})

	// The pinch now spans the survivors (0 and 2). A one-pixel move must
	// rescale against their distance, not against a stale pointer.
	s.PointerMove(0, geom.Screen{X: 101, Y: 100})

	want := math.Hypot(49, 200) / math.Hypot(50, 200)
	if math.Abs(s.view.Scale-want) > tolerance {
		t.Errorf("scale = %v, want %v", s.view.Scale, want)
	}
}

func TestPinchIgnoresUntrackedPointerLift(t *testing.T) {
	s, _ := newTestScene(t)

	s.PointerDown(0, geom.Screen{X: 100, Y: 100})
	s.PointerDown(1, geom.Screen{X: 200, Y: 100})
	s.PointerDown(2, geom.Screen{X: 150, Y: 300})
	s.PointerUp(2, geom.Screen{X: 150, Y: 300})

	s.PointerMove(1, geom.Screen{X: 300, Y: 100})
	if math.Abs(s.view.Scale-2) > tolerance {
		t.Errorf("scale = %v, want 300-100 over 200-100 = 2", s.view.Scale)
	}
}

func TestSecondPointerInterruptsDrag(t *testing.T) {
	s, _ := newTestScene(t)
	s.AddEntity(RectData{ID: "a"})
	placeEntity(s, "a", 100, 100, 200, 120)

	s.PointerDown(0, geom.Screen{X: 200, Y: 160}) // drag starts
	s.PointerDown(1, geom.Screen{X: 400, Y: 160}) // pinch takes over

	s.PointerMove(0, geom.Screen{X: 100, Y: 160})
	e, _ := s.Entity("a")
	if e.Pos.X != 100 {
		t.Errorf("drag kept mutating the entity during pinch: %+v", e.Pos)
	}
	if math.Abs(s.view.Scale-1.5) > tolerance {
		t.Errorf("scale = %v, want 300/200 = 1.5", s.view.Scale)
	}
}

func TestWheelKeepsCursorPointFixed(t *testing.T) {
	s, _ := newTestScene(t)
	s.view = geom.Transform{Scale: 1.5, TX: 40, TY: -10}
	at := geom.Screen{X: 300, Y: 200}

	before := s.view.ToWorld(at)
	s.Wheel(-500, at)
	after := s.view.ToWorld(at)

	if math.Abs(before.X-after.X) > tolerance || math.Abs(before.Y-after.Y) > tolerance {
		t.Errorf("world point under cursor moved: %+v -> %+v", before, after)
	}
	want := 1.5 * math.Exp(0.5)
	if math.Abs(s.view.Scale-want) > tolerance {
		t.Errorf("scale = %v, want %v", s.view.Scale, want)
	}
}

func TestWheelClampsScale(t *testing.T) {
	s, _ := newTestScene(t)
	s.Wheel(-1e6, geom.Screen{X: 0, Y: 0})
	if s.view.Scale != maxScale {
		t.Errorf("scale = %v, want clamp at %v", s.view.Scale, maxScale)
	}
	s.Wheel(1e7, geom.Screen{X: 0, Y: 0})
	if s.view.Scale != minScale {
		t.Errorf("scale = %v, want clamp at %v", s.view.Scale, minScale)
	}
}

func TestPointerCancelClearsGesture(t *testing.T) {
	s, _ := newTestScene(t)
	s.AddEntity(RectData{ID: "a"})
	placeEntity(s, "a", 100, 100, 200, 120)

	s.PointerDown(0, geom.Screen{X: 200, Y: 160})
	s.PointerCancel(0, geom.Screen{X: 200, Y: 160})

	s.PointerMove(0, geom.Screen{X: 500, Y: 500})
	e, _ := s.Entity("a")
	if e.Pos.X != 100 || e.Pos.Y != 100 {
		t.Errorf("entity moved after cancel: %+v", e.Pos)
	}
}

func TestIdleHoverUpdatesCursor(t *testing.T) {
	s, _ := newTestScene(t)
	s.AddEntity(RectData{ID: "a"})
	placeEntity(s, "a", 100, 100, 200, 120)

	s.PointerMove(0, geom.Screen{X: 200, Y: 160})
	if s.Cursor() != CursorMove {
		t.Errorf("cursor over body = %v, want move", s.Cursor())
	}
	s.PointerMove(0, geom.Screen{X: 300, Y: 160})
	if s.Cursor() != CursorResizeE {
		t.Errorf("cursor over right edge = %v, want e-resize", s.Cursor())
	}
	s.PointerMove(0, geom.Screen{X: 700, Y: 500})
	if s.Cursor() != CursorDefault {
		t.Errorf("cursor over empty space = %v, want default", s.Cursor())
	}
}

func TestCursorFrozenDuringGesture(t *testing.T) {
	s, _ := newTestScene(t)
	s.AddEntity(RectData{ID: "a"})
	placeEntity(s, "a", 100, 100, 200, 120)

	s.PointerMove(0, geom.Screen{X: 200, Y: 160})
	s.PointerDown(0, geom.Screen{X: 200, Y: 160})
	s.PointerMove(0, geom.Screen{X: 700, Y: 500}) // drags far off the entity
	if s.Cursor() != CursorMove {
		t.Errorf("cursor changed mid-gesture to %v", s.Cursor())
	}
	s.PointerUp(0, geom.Screen{X: 700, Y: 500})
}

func TestPanByShiftsTranslateOnly(t *testing.T) {
	s, _ := newTestScene(t)
	s.view = geom.Transform{Scale: 2, TX: 5, TY: 5}
	s.PanBy(-15, 10)
	if s.view.TX != -10 || s.view.TY != 15 || s.view.Scale != 2 {
		t.Errorf("view after PanBy = %+v", s.view)
	}
}
