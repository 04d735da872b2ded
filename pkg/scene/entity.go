package scene

import "charterm/pkg/geom"

// Font metrics and size floors. These are fixed screen sizes: at draw time
// they are divided by the view scale so text and padding stay visually
// constant while zooming, which also makes an entity's minimum size in
// world units depend on the current scale.
const (
	titleLineHeight = 24.0
	entryLineHeight = 18.0
	boxPadding      = 8.0
	titleFontSize   = 14.0
	entryFontSize   = 12.0

	minEntityWidth = 120.0

	defaultEntityWidth  = 200.0
	defaultEntityHeight = 120.0

	edgeThreshold = 8.0 // screen pixels; divided by scale before hit testing

	entityStrokeWidth     = 2.0
	connectionStrokeWidth = 2.0
)

// Entry is one row of an entity: a left-aligned and a right-aligned text
// (typically a name and a signature or type).
type Entry struct {
	ID    string
	Left  string
	Right string
}

// RectData is the caller-supplied payload of one entity. The caller is the
// id authority: IDs are assigned by the data producer, must be unique across
// the scene, and are the join keys for updates, removal and connection
// endpoints.
type RectData struct {
	ID      string
	Title   string
	Entries []Entry
}

// Entity is a positioned, sized rectangle in world space rendering a title
// line and one row per entry. Geometry is mutated by drag/resize gestures;
// the data payload only by UpdateEntity.
type Entity struct {
	Pos  geom.World
	Size geom.Size
	Data RectData
}

// MinWidth returns the smallest legal entity width in world units at the
// given view scale.
func MinWidth(scale float64) float64 {
	return minEntityWidth / scale
}

// MinHeight returns the smallest height able to render the title line plus
// one line per entry, in world units at the given view scale.
func MinHeight(entryCount int, scale float64) float64 {
	return (titleLineHeight + float64(entryCount)*entryLineHeight + 2*boxPadding) / scale
}

// ClassifyPoint reports where the world point p falls on the entity. The
// threshold t is in world units; callers wanting a constant on-screen band
// must divide their pixel threshold by the current scale.
//
// A point is near an edge when its distance to that edge is below t and it
// lies within the edge's perpendicular span extended by t on both ends, so
// corners are reachable slightly outside the bounding box. Corner
// classifications beat single edges; PartInside is reported only for points
// strictly interior that match no band.
func (e *Entity) ClassifyPoint(p geom.World, t float64) Part {
	left := e.Pos.X
	right := e.Pos.X + e.Size.W
	top := e.Pos.Y
	bottom := e.Pos.Y + e.Size.H

	withinX := p.X > left-t && p.X < right+t
	withinY := p.Y > top-t && p.Y < bottom+t

	nearLeft := abs(p.X-left) < t && withinY
	nearRight := abs(p.X-right) < t && withinY
	nearTop := abs(p.Y-top) < t && withinX
	nearBottom := abs(p.Y-bottom) < t && withinX

	switch {
	case nearTop && nearLeft:
		return PartTopLeft
	case nearTop && nearRight:
		return PartTopRight
	case nearBottom && nearLeft:
		return PartBottomLeft
	case nearBottom && nearRight:
		return PartBottomRight
	case nearLeft:
		return PartLeft
	case nearRight:
		return PartRight
	case nearTop:
		return PartTop
	case nearBottom:
		return PartBottom
	}

	if p.X > left && p.X < right && p.Y > top && p.Y < bottom {
		return PartInside
	}
	return PartNone
}

// titleBaseline returns the world y of the title text baseline.
func (e *Entity) titleBaseline(scale float64) float64 {
	return e.Pos.Y + (boxPadding+titleLineHeight*0.75)/scale
}

// entryBaseline returns the world y of the text baseline of entry row i.
func (e *Entity) entryBaseline(i int, scale float64) float64 {
	return e.Pos.Y + (boxPadding+titleLineHeight+(float64(i)+0.75)*entryLineHeight)/scale
}

// entryCenterY returns the world y of the vertical middle of entry row i,
// used as the connection anchor height for entry endpoints.
func (e *Entity) entryCenterY(i int, scale float64) float64 {
	return e.Pos.Y + (boxPadding+titleLineHeight+(float64(i)+0.5)*entryLineHeight)/scale
}

// entryRow returns the row index of the entry with the given id.
func (e *Entity) entryRow(entryID string) (int, bool) {
	for i, en := range e.Data.Entries {
		if en.ID == entryID {
			return i, true
		}
	}
	return 0, false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
