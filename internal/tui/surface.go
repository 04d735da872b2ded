package tui

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"charterm/pkg/render"
)

// CellSurface is a render.Surface over a terminal cell grid. Rectangles
// become box-drawing glyphs, beziers are flattened and plotted cell by
// cell, and fills erase whatever sits underneath so entities occlude the
// connections drawn before them. Line widths and font sizes have no cell
// equivalent and are ignored.
type CellSurface struct {
	cols, rows int
	cells      [][]rune
	colors     [][]string // foreground hex per cell, "" = terminal default

	scale, tx, ty float64
	color         string
	background    string
}

// NewCellSurface creates a cell surface of the given terminal dimensions.
func NewCellSurface(cols, rows int) *CellSurface {
	s := &CellSurface{scale: 1}
	s.Resize(cols, rows)
	return s
}

// Resize reallocates the grid. The host calls this on terminal resize; the
// scene keeps drawing through the same surface value.
func (s *CellSurface) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	s.cols, s.rows = cols, rows
	s.cells = make([][]rune, rows)
	s.colors = make([][]string, rows)
	for y := range s.cells {
		s.cells[y] = make([]rune, cols)
		s.colors[y] = make([]string, cols)
		for x := range s.cells[y] {
			s.cells[y][x] = ' '
		}
	}
}

func (s *CellSurface) Bounds() (float64, float64) {
	return float64(s.cols), float64(s.rows)
}

func (s *CellSurface) Clear() {
	s.background = s.color
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = ' '
			s.colors[y][x] = ""
		}
	}
}

func (s *CellSurface) SetTransform(scale, tx, ty float64) {
	if scale <= 0 {
		scale = 1
	}
	s.scale, s.tx, s.ty = scale, tx, ty
}

func (s *CellSurface) SetColor(c color.Color) {
	s.color = hexColor(c)
}

func (s *CellSurface) SetLineWidth(float64) {}
func (s *CellSurface) SetFontSize(float64)  {}

// cellAt maps a world point to grid coordinates.
func (s *CellSurface) cellAt(x, y float64) (int, int) {
	return int(math.Round(x*s.scale + s.tx)), int(math.Round(y*s.scale + s.ty))
}

func (s *CellSurface) set(col, row int, r rune) {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return
	}
	s.cells[row][col] = r
	s.colors[row][col] = s.color
}

func (s *CellSurface) FillRect(x, y, w, h float64) {
	x0, y0 := s.cellAt(x, y)
	x1, y1 := s.cellAt(x+w, y+h)
	for row := y0; row <= y1; row++ {
		for col := x0; col <= x1; col++ {
			s.set(col, row, ' ')
		}
	}
}

func (s *CellSurface) StrokeRect(x, y, w, h float64) {
	x0, y0 := s.cellAt(x, y)
	x1, y1 := s.cellAt(x+w, y+h)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	for col := x0 + 1; col < x1; col++ {
		s.set(col, y0, '─')
		s.set(col, y1, '─')
	}
	for row := y0 + 1; row < y1; row++ {
		s.set(x0, row, '│')
		s.set(x1, row, '│')
	}
	s.set(x0, y0, '┌')
	s.set(x1, y0, '┐')
	s.set(x0, y1, '└')
	s.set(x1, y1, '┘')
}

func (s *CellSurface) DrawText(text string, x, y float64, align render.TextAlign) {
	if text == "" {
		return
	}
	runes := []rune(text)
	col, row := s.cellAt(x, y)
	switch align {
	case render.AlignCenter:
		col -= len(runes) / 2
	case render.AlignRight:
		col -= len(runes)
	}
	for i, r := range runes {
		s.set(col+i, row, r)
	}
}

// DrawBezier flattens the cubic into short segments and plots each sample.
func (s *CellSurface) DrawBezier(x0, y0, cx0, cy0, cx1, cy1, x1, y1 float64) {
	c0, r0 := s.cellAt(x0, y0)
	c1, r1 := s.cellAt(x1, y1)
	steps := abs(c1-c0) + abs(r1-r0)
	if steps < 8 {
		steps = 8
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		u := 1 - t
		bx := u*u*u*x0 + 3*u*u*t*cx0 + 3*u*t*t*cx1 + t*t*t*x1
		by := u*u*u*y0 + 3*u*u*t*cy0 + 3*u*t*t*cy1 + t*t*t*y1
		col, row := s.cellAt(bx, by)
		s.set(col, row, '·')
	}
}

// View renders the grid as a styled string, grouping runs of equally
// colored cells so each row emits a handful of escape sequences instead of
// one per cell.
func (s *CellSurface) View() string {
	bg := lipgloss.NewStyle()
	if s.background != "" {
		bg = bg.Background(lipgloss.Color(s.background))
	}

	var out strings.Builder
	for row := 0; row < s.rows; row++ {
		start := 0
		for col := 1; col <= s.cols; col++ {
			if col < s.cols && s.colors[row][col] == s.colors[row][start] {
				continue
			}
			run := string(s.cells[row][start:col])
			style := bg
			if c := s.colors[row][start]; c != "" {
				style = style.Foreground(lipgloss.Color(c))
			}
			out.WriteString(style.Render(run))
			start = col
		}
		if row < s.rows-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

// hexColor converts a color to the "#rrggbb" form lipgloss expects.
func hexColor(c color.Color) string {
	if c == nil {
		return ""
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
