package scene

import (
	"math"

	"charterm/pkg/geom"
)

// Zoom limits and the multiplicative wheel rate.
const (
	minScale      = 0.1
	maxScale      = 8.0
	wheelZoomRate = 0.001
)

type gestureKind int

const (
	gestureIdle gestureKind = iota
	gestureDrag
	gestureResize
	gesturePan
	gesturePinch
)

func (k gestureKind) String() string {
	switch k {
	case gestureIdle:
		return "idle"
	case gestureDrag:
		return "drag"
	case gestureResize:
		return "resize"
	case gesturePan:
		return "pan"
	case gesturePinch:
		return "pinch"
	}
	return "idle"
}

// gesture is the ephemeral state of the one interaction currently owning
// the scene. It records the initial geometry and transform so deltas are
// computed against gesture-start state rather than values mutated by
// earlier move events.
type gesture struct {
	kind gestureKind

	pointer int
	start   geom.Screen

	// drag / resize
	entity    *Entity
	part      Part
	startPos  geom.World
	startSize geom.Size

	// pan / pinch
	startView geom.Transform

	// pinch
	p1, p2    int
	startDist float64
	pivot     geom.World // zoom pivot, fixed in world space at gesture start
}

// PointerDown begins a gesture. With one active pointer it hit-tests the
// scene: an inside hit starts a drag, an edge or corner hit starts a resize,
// a miss starts a pan. The moment a second pointer lands the scene switches
// to pinch-zooming regardless of what was in progress.
func (s *Scene) PointerDown(id int, p geom.Screen) {
	s.pointers[id] = p

	if len(s.pointers) == 2 {
		s.beginPinch()
		s.Draw()
		return
	}
	if len(s.pointers) != 1 {
		// A third finger joins an active pinch without disturbing it.
		return
	}

	world := s.view.ToWorld(p)
	entity, part := s.hitTest(world)
	switch {
	case part == PartInside:
		s.gesture = gesture{
			kind:     gestureDrag,
			pointer:  id,
			start:    p,
			entity:   entity,
			startPos: entity.Pos,
		}
	case part != PartNone:
		s.gesture = gesture{
			kind:      gestureResize,
			pointer:   id,
			start:     p,
			entity:    entity,
			part:      part,
			startPos:  entity.Pos,
			startSize: entity.Size,
		}
	default:
		s.gesture = gesture{
			kind:      gesturePan,
			pointer:   id,
			start:     p,
			startView: s.view,
		}
	}
	s.logger.Debug("gesture start", "kind", s.gesture.kind, "part", part)
	s.Draw()
}

func (s *Scene) beginPinch() {
	var ids [2]int
	i := 0
	for pid := range s.pointers {
		ids[i] = pid
		i++
		if i == 2 {
			break
		}
	}
	a, b := s.pointers[ids[0]], s.pointers[ids[1]]
	mid := midpoint(a, b)
	s.gesture = gesture{
		kind:      gesturePinch,
		p1:        ids[0],
		p2:        ids[1],
		startView: s.view,
		startDist: dist(a, b),
		pivot:     s.view.ToWorld(mid),
	}
	s.logger.Debug("gesture start", "kind", gesturePinch)
}

// PointerMove feeds a pointer position update to the active gesture. While
// idle it only refreshes the cursor hint.
func (s *Scene) PointerMove(id int, p geom.Screen) {
	if _, tracked := s.pointers[id]; tracked {
		s.pointers[id] = p
	}

	switch s.gesture.kind {
	case gestureIdle:
		_, part := s.hitTest(s.view.ToWorld(p))
		s.cursor = cursorFor(part)
		return
	case gestureDrag:
		if id != s.gesture.pointer {
			return
		}
		s.moveDrag(p)
	case gestureResize:
		if id != s.gesture.pointer {
			return
		}
		s.moveResize(p)
	case gesturePan:
		if id != s.gesture.pointer {
			return
		}
		s.view.TX = s.gesture.startView.TX + (p.X - s.gesture.start.X)
		s.view.TY = s.gesture.startView.TY + (p.Y - s.gesture.start.Y)
	case gesturePinch:
		if id != s.gesture.p1 && id != s.gesture.p2 {
			return
		}
		s.movePinch()
	}
	s.Draw()
}

func (s *Scene) moveDrag(p geom.Screen) {
	g := &s.gesture
	g.entity.Pos = geom.World{
		X: g.startPos.X + (p.X-g.start.X)/s.view.Scale,
		Y: g.startPos.Y + (p.Y-g.start.Y)/s.view.Scale,
	}
}

// moveResize applies the pointer delta to the edges implicated by the hit
// part and clamps to the minimum size by pinning the opposite edge.
func (s *Scene) moveResize(p geom.Screen) {
	g := &s.gesture
	dx := (p.X - g.start.X) / s.view.Scale
	dy := (p.Y - g.start.Y) / s.view.Scale

	x, y := g.startPos.X, g.startPos.Y
	w, h := g.startSize.W, g.startSize.H

	var left, right, top, bottom bool
	switch g.part {
	case PartLeft:
		left = true
	case PartRight:
		right = true
	case PartTop:
		top = true
	case PartBottom:
		bottom = true
	case PartTopLeft:
		top, left = true, true
	case PartTopRight:
		top, right = true, true
	case PartBottomLeft:
		bottom, left = true, true
	case PartBottomRight:
		bottom, right = true, true
	}

	if left {
		x += dx
		w -= dx
	}
	if right {
		w += dx
	}
	if top {
		y += dy
		h -= dy
	}
	if bottom {
		h += dy
	}

	minW := MinWidth(s.view.Scale)
	minH := MinHeight(len(g.entity.Data.Entries), s.view.Scale)
	if w < minW {
		if left {
			x = g.startPos.X + g.startSize.W - minW
		}
		w = minW
	}
	if h < minH {
		if top {
			y = g.startPos.Y + g.startSize.H - minH
		}
		h = minH
	}

	g.entity.Pos = geom.World{X: x, Y: y}
	g.entity.Size = geom.Size{W: w, H: h}
}

// movePinch recomputes scale from the current inter-pointer distance and
// re-derives the translation so the pivot captured at gesture start stays
// under the pointers' midpoint.
func (s *Scene) movePinch() {
	g := &s.gesture
	a, ok1 := s.pointers[g.p1]
	b, ok2 := s.pointers[g.p2]
	if !ok1 || !ok2 {
		return
	}
	d := dist(a, b)
	if g.startDist == 0 || d == 0 {
		return
	}
	scale := clamp(d/g.startDist*g.startView.Scale, minScale, maxScale)
	mid := midpoint(a, b)
	s.view = geom.Transform{
		Scale: scale,
		TX:    mid.X - g.pivot.X*scale,
		TY:    mid.Y - g.pivot.Y*scale,
	}
}

// PointerUp releases a pointer. When a pinch loses one of its two tracked
// pointers it re-anchors on the survivors if two remain and ends otherwise;
// every other gesture ends when the last pointer lifts, at which point the
// idle cursor hint is recomputed from the release position.
func (s *Scene) PointerUp(id int, p geom.Screen) {
	delete(s.pointers, id)

	if s.gesture.kind == gesturePinch && (id == s.gesture.p1 || id == s.gesture.p2) {
		if len(s.pointers) >= 2 {
			s.beginPinch()
		} else {
			s.gesture = gesture{}
		}
	}
	if len(s.pointers) == 0 {
		if s.gesture.kind != gestureIdle {
			s.logger.Debug("gesture end", "kind", s.gesture.kind)
		}
		s.gesture = gesture{}
		_, part := s.hitTest(s.view.ToWorld(p))
		s.cursor = cursorFor(part)
	}
	s.Draw()
}

// PointerCancel is treated identically to PointerUp.
func (s *Scene) PointerCancel(id int, p geom.Screen) {
	s.PointerUp(id, p)
}

// Wheel zooms by a multiplicative factor derived from the wheel delta,
// keeping the world point under the cursor fixed. Wheel events are
// independent of the pointer state machine.
func (s *Scene) Wheel(delta float64, at geom.Screen) {
	factor := math.Exp(-delta * wheelZoomRate)
	scale := clamp(s.view.Scale*factor, minScale, maxScale)
	pivot := s.view.ToWorld(at)
	s.view = geom.Transform{
		Scale: scale,
		TX:    at.X - pivot.X*scale,
		TY:    at.Y - pivot.Y*scale,
	}
	s.Draw()
}

// PanBy shifts the view by a raw screen-space delta. Panning is
// screen-linear: the shift is not scaled by zoom.
func (s *Scene) PanBy(dx, dy float64) {
	s.view.TX += dx
	s.view.TY += dy
	s.Draw()
}

// ResetView restores the identity view: scale 1, no pan offset.
func (s *Scene) ResetView() {
	s.view = geom.Identity()
	s.Draw()
}

func midpoint(a, b geom.Screen) geom.Screen {
	return geom.Screen{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func dist(a, b geom.Screen) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
