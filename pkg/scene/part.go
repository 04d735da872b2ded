package scene

// Part classifies where a point falls on an entity: strictly inside, within
// the threshold band of one edge, within the bands of two adjacent edges (a
// corner), or nowhere on it at all.
type Part int

const (
	PartNone Part = iota
	PartInside
	PartLeft
	PartRight
	PartTop
	PartBottom
	PartTopLeft
	PartTopRight
	PartBottomLeft
	PartBottomRight
)

func (p Part) String() string {
	switch p {
	case PartNone:
		return "none"
	case PartInside:
		return "inside"
	case PartLeft:
		return "left"
	case PartRight:
		return "right"
	case PartTop:
		return "top"
	case PartBottom:
		return "bottom"
	case PartTopLeft:
		return "top-left"
	case PartTopRight:
		return "top-right"
	case PartBottomLeft:
		return "bottom-left"
	case PartBottomRight:
		return "bottom-right"
	}
	return "unknown"
}

// Cursor is the pointer-shape hint the host should show while the scene is
// idle: a move cursor over an entity body, a directional resize cursor over
// an edge or corner, and the default cursor elsewhere.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorMove
	CursorResizeN
	CursorResizeS
	CursorResizeE
	CursorResizeW
	CursorResizeNE
	CursorResizeNW
	CursorResizeSE
	CursorResizeSW
)

func (c Cursor) String() string {
	switch c {
	case CursorDefault:
		return "default"
	case CursorMove:
		return "move"
	case CursorResizeN:
		return "n-resize"
	case CursorResizeS:
		return "s-resize"
	case CursorResizeE:
		return "e-resize"
	case CursorResizeW:
		return "w-resize"
	case CursorResizeNE:
		return "ne-resize"
	case CursorResizeNW:
		return "nw-resize"
	case CursorResizeSE:
		return "se-resize"
	case CursorResizeSW:
		return "sw-resize"
	}
	return "default"
}

// cursorFor maps a hit classification to its cursor hint.
func cursorFor(p Part) Cursor {
	switch p {
	case PartInside:
		return CursorMove
	case PartLeft:
		return CursorResizeW
	case PartRight:
		return CursorResizeE
	case PartTop:
		return CursorResizeN
	case PartBottom:
		return CursorResizeS
	case PartTopLeft:
		return CursorResizeNW
	case PartTopRight:
		return CursorResizeNE
	case PartBottomLeft:
		return CursorResizeSW
	case PartBottomRight:
		return CursorResizeSE
	case PartNone:
		return CursorDefault
	}
	return CursorDefault
}
