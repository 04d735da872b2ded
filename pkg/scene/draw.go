package scene

import (
	"charterm/pkg/geom"
	"charterm/pkg/render"
)

// Draw performs a full clear and redraw: connections first so they sit
// behind the rectangles, then every entity in draw order. Mutating calls do
// not redraw on their own; hosts call Draw after CRUD operations (gesture
// handlers redraw themselves).
func (s *Scene) Draw() {
	s.drawTo(s.surface, s.view)
}

// Snapshot renders the scene onto another surface, scaling the view so the
// destination spans the same world width as the scene's own surface. Used
// for PNG export from hosts whose live surface is not a raster.
//
// The factor is uniform, derived from the width ratio, so the export shows
// the true world proportions. Cell-grid hosts display through cells that
// are roughly twice as tall as they are wide, which means an export will
// not match the terminal's stretched rendition of the same scene.
func (s *Scene) Snapshot(dst render.Surface) {
	ownW, _ := s.surface.Bounds()
	dstW, _ := dst.Bounds()
	k := 1.0
	if ownW > 0 {
		k = dstW / ownW
	}
	view := geom.Transform{
		Scale: s.view.Scale * k,
		TX:    s.view.TX * k,
		TY:    s.view.TY * k,
	}
	s.drawTo(dst, view)
}

func (s *Scene) drawTo(surface render.Surface, view geom.Transform) {
	surface.SetColor(s.palette.Background)
	surface.Clear()
	surface.SetTransform(view.Scale, view.TX, view.TY)

	for _, id := range s.connOrder {
		s.drawConnection(surface, s.conns[id], view.Scale)
	}
	for _, id := range s.order {
		s.drawEntity(surface, s.entities[id], view.Scale)
	}
}

func (s *Scene) drawEntity(surface render.Surface, e *Entity, scale float64) {
	surface.SetColor(s.palette.EntityFill)
	surface.FillRect(e.Pos.X, e.Pos.Y, e.Size.W, e.Size.H)

	surface.SetColor(s.palette.EntityLine)
	surface.SetLineWidth(entityStrokeWidth / scale)
	surface.StrokeRect(e.Pos.X, e.Pos.Y, e.Size.W, e.Size.H)

	pad := boxPadding / scale

	surface.SetColor(s.palette.TitleText)
	surface.SetFontSize(titleFontSize / scale)
	surface.DrawText(e.Data.Title, e.Pos.X+e.Size.W/2, e.titleBaseline(scale), render.AlignCenter)

	surface.SetColor(s.palette.EntryText)
	surface.SetFontSize(entryFontSize / scale)
	for i, entry := range e.Data.Entries {
		y := e.entryBaseline(i, scale)
		if entry.Left != "" {
			surface.DrawText(entry.Left, e.Pos.X+pad, y, render.AlignLeft)
		}
		if entry.Right != "" {
			surface.DrawText(entry.Right, e.Pos.X+e.Size.W-pad, y, render.AlignRight)
		}
	}
}

// drawConnection routes and strokes one connection. Each endpoint is
// anchored twice, once as the outgoing side (right edge) and once as the
// incoming side (left edge); of the two possible pairings the one with the
// smaller horizontal gap wins, so curves do not cross backwards when the
// caller's A/B order does not match the spatial layout.
func (s *Scene) drawConnection(surface render.Surface, c *Connection, scale float64) {
	from, to := s.routeConnection(c, scale)

	surface.SetColor(s.palette.Connection)
	surface.SetLineWidth(connectionStrokeWidth / scale)

	midX := (from.X + to.X) / 2
	surface.DrawBezier(
		from.X, from.Y,
		midX, from.Y,
		midX, to.Y,
		to.X, to.Y,
	)
}

func (s *Scene) routeConnection(c *Connection, scale float64) (from, to geom.World) {
	aOut := s.anchor(c.A, true, scale)
	aIn := s.anchor(c.A, false, scale)
	bOut := s.anchor(c.B, true, scale)
	bIn := s.anchor(c.B, false, scale)

	if abs(aOut.X-bIn.X) <= abs(bOut.X-aIn.X) {
		return aOut, bIn
	}
	return bOut, aIn
}

// anchor computes the point a connection attaches to: the right edge of the
// endpoint's rectangle when outgoing, the left edge when incoming, at the
// rectangle's vertical center or, for entry endpoints, the middle of that
// entry's row. A rect id that no longer resolves anchors at the world
// origin; an entry id that no longer resolves degrades to the whole-rect
// anchor.
func (s *Scene) anchor(ep Endpoint, outgoing bool, scale float64) geom.World {
	e, ok := s.entities[ep.RectID]
	if !ok {
		return geom.World{}
	}
	y := e.Pos.Y + e.Size.H/2
	if ep.EntryID != "" {
		if row, found := e.entryRow(ep.EntryID); found {
			y = e.entryCenterY(row, scale)
		}
	}
	x := e.Pos.X
	if outgoing {
		x += e.Size.W
	}
	return geom.World{X: x, Y: y}
}
