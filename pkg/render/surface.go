// Package render defines the drawing surface a chart scene renders onto,
// together with a raster implementation backed by fogleman/gg.
//
// A Surface is an immediate-mode 2D target. All geometry passed to drawing
// calls is in world coordinates; the surface applies the view transform set
// by SetTransform itself, so shapes are authored once and the same scene
// renders identically across backends.
package render

import "image/color"

// TextAlign selects the horizontal alignment of text relative to its anchor
// point. The vertical anchor is always the text baseline.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// Surface is an immediate-mode 2D drawing target.
//
// SetTransform installs the view transform (uniform scale then translate,
// both in screen units) applied to every subsequent drawing call. Clear is
// exempt: it fills the whole surface with the current color regardless of
// the transform.
//
// Line widths and font sizes are given in world units; backends scale them
// by the current transform so they come out at the intended screen size.
type Surface interface {
	// Bounds reports the surface extent in screen units.
	Bounds() (width, height float64)

	Clear()
	SetTransform(scale, tx, ty float64)
	SetColor(c color.Color)
	SetLineWidth(w float64)
	SetFontSize(size float64)

	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)

	// DrawText draws s with its baseline at (x, y), aligned per align.
	DrawText(s string, x, y float64, align TextAlign)

	// DrawBezier strokes a cubic bezier from (x0, y0) to (x1, y1) with
	// control points (cx0, cy0) and (cx1, cy1).
	DrawBezier(x0, y0, cx0, cy0, cx1, cy1, x1, y1 float64)
}
