package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// Raster is a Surface backed by a fogleman/gg raster context. It is used
// for PNG export and for headless rendering in tests.
//
// gg transforms path points as they are added but leaves stroke widths and
// glyph sizes in device pixels, so Raster applies the view transform itself
// instead of pushing a matrix onto the context.
type Raster struct {
	dc    *gg.Context
	w, h  int
	scale float64
	tx    float64
	ty    float64
	line  float64
	size  float64
	faces map[int]font.Face
	ttf   *truetype.Font
}

// NewRaster creates a raster surface of the given pixel dimensions.
func NewRaster(width, height int) (*Raster, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("render: invalid raster size %dx%d", width, height)
	}
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("render: parse font: %w", err)
	}
	r := &Raster{
		dc:    gg.NewContext(width, height),
		w:     width,
		h:     height,
		scale: 1,
		line:  1,
		size:  12,
		faces: make(map[int]font.Face),
		ttf:   ttf,
	}
	r.dc.SetColor(color.White)
	return r, nil
}

func (r *Raster) Bounds() (float64, float64) {
	return float64(r.w), float64(r.h)
}

func (r *Raster) Clear() {
	r.dc.Clear()
}

func (r *Raster) SetTransform(scale, tx, ty float64) {
	if scale <= 0 {
		scale = 1
	}
	r.scale, r.tx, r.ty = scale, tx, ty
}

func (r *Raster) SetColor(c color.Color) {
	r.dc.SetColor(c)
}

func (r *Raster) SetLineWidth(w float64) {
	r.line = w
}

func (r *Raster) SetFontSize(size float64) {
	r.size = size
}

// sx and sy map world coordinates to device pixels.
func (r *Raster) sx(x float64) float64 { return x*r.scale + r.tx }
func (r *Raster) sy(y float64) float64 { return y*r.scale + r.ty }

func (r *Raster) FillRect(x, y, w, h float64) {
	r.dc.DrawRectangle(r.sx(x), r.sy(y), w*r.scale, h*r.scale)
	r.dc.Fill()
}

func (r *Raster) StrokeRect(x, y, w, h float64) {
	r.dc.SetLineWidth(r.line * r.scale)
	r.dc.DrawRectangle(r.sx(x), r.sy(y), w*r.scale, h*r.scale)
	r.dc.Stroke()
}

func (r *Raster) DrawText(s string, x, y float64, align TextAlign) {
	if s == "" {
		return
	}
	r.dc.SetFontFace(r.face(r.size * r.scale))
	px, py := r.sx(x), r.sy(y)
	switch align {
	case AlignCenter:
		w, _ := r.dc.MeasureString(s)
		px -= w / 2
	case AlignRight:
		w, _ := r.dc.MeasureString(s)
		px -= w
	}
	r.dc.DrawString(s, px, py)
}

func (r *Raster) DrawBezier(x0, y0, cx0, cy0, cx1, cy1, x1, y1 float64) {
	r.dc.SetLineWidth(r.line * r.scale)
	r.dc.MoveTo(r.sx(x0), r.sy(y0))
	r.dc.CubicTo(r.sx(cx0), r.sy(cy0), r.sx(cx1), r.sy(cy1), r.sx(x1), r.sy(y1))
	r.dc.Stroke()
}

// face returns a cached truetype face for the given pixel size. Sizes are
// quantized to half a pixel so zooming does not allocate a face per frame.
func (r *Raster) face(px float64) font.Face {
	if px < 1 {
		px = 1
	}
	key := int(math.Round(px * 2))
	if f, ok := r.faces[key]; ok {
		return f
	}
	f := truetype.NewFace(r.ttf, &truetype.Options{
		Size:    float64(key) / 2,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[key] = f
	return f
}

// Image returns the rendered image.
func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

// EncodePNG writes the rendered image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// SavePNG writes the rendered image to a PNG file.
func (r *Raster) SavePNG(path string) error {
	return r.dc.SavePNG(path)
}
