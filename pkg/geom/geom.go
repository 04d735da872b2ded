// Package geom provides the two coordinate systems of a chart and the view
// transform between them.
//
// World coordinates are pan/zoom-independent: entity geometry is stored in
// world units and never rewritten when the view changes. Screen coordinates
// are raw surface units (pixels or terminal cells) as delivered by input
// events. The two are distinct types so they cannot be mixed without an
// explicit conversion through a Transform.
package geom

// Screen is a point in screen space: raw surface coordinates of input
// events and of the drawing surface itself.
type Screen struct {
	X, Y float64
}

// World is a point in world space, the coordinate system entity geometry
// lives in.
type World struct {
	X, Y float64
}

// Size is an extent in world units.
type Size struct {
	W, H float64
}

// Transform maps world space onto screen space: a uniform scale followed by
// a translation. Scale must be positive; the zero value is not a valid
// transform, use Identity.
type Transform struct {
	Scale  float64
	TX, TY float64
}

// Identity returns the transform that maps world space onto screen space
// unchanged.
func Identity() Transform {
	return Transform{Scale: 1}
}

// ToWorld converts a screen point to world space.
func (t Transform) ToWorld(p Screen) World {
	return World{
		X: (p.X - t.TX) / t.Scale,
		Y: (p.Y - t.TY) / t.Scale,
	}
}

// ToScreen converts a world point to screen space. It is the inverse of
// ToWorld.
func (t Transform) ToScreen(p World) Screen {
	return Screen{
		X: p.X*t.Scale + t.TX,
		Y: p.Y*t.Scale + t.TY,
	}
}
