package fbdraw

import (
	"image"
	"image/color"
	"image/draw"
)

// Surface is a width×height pixel buffer that is drawn on with PutPixel and
// shown on a display with BeginDraw.
//
// Surface also implements [draw.Image], so the standard library image
// machinery (and anything that renders to a draw.Image, such as freetype)
// can target it directly.
type Surface struct {
	width  int
	height int
	pix    []Color
}

// New creates a surface of the given size with all pixels set to black.
//
// A width or height less than one degenerates to an empty surface, on which
// PutPixel is a no-op.
func New(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Surface{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}
}

// Size returns the size of the surface as a (width, height) pair.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// Pix returns the pixel buffer in row-major order; the pixel at (x, y) is
// at index y*width+x.
func (s *Surface) Pix() []Color {
	return s.pix
}

// PutPixel sets the pixel at (x, y).
//
// Coordinates outside the surface are clamped to the nearest edge pixel, so
// every coordinate pair is valid and every call lands on the surface.
func (s *Surface) PutPixel(x, y int, c Color) {
	if len(s.pix) == 0 {
		return
	}
	x = clampCoord(x, s.width-1)
	y = clampCoord(y, s.height-1)
	s.pix[y*s.width+x] = c
}

func clampCoord(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func (s *Surface) ColorModel() color.Model {
	return Model
}

func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

func (s *Surface) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(s.Bounds()) {
		return color.Transparent
	}
	return s.pix[y*s.width+x]
}

// Set the pixel color at (x, y). Unlike PutPixel, Set follows the
// [draw.Image] convention: out-of-bounds writes are dropped, not clamped.
func (s *Surface) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(s.Bounds()) {
		return
	}
	s.pix[y*s.width+x] = model(c).(Color)
}

// Clear sets all pixels to black.
func (s *Surface) Clear() {
	for i := range s.pix {
		s.pix[i] = 0
	}
}

// Fill sets all pixels to the given color.
func (s *Surface) Fill(c Color) {
	for i := range s.pix {
		s.pix[i] = c
	}
}

// Interface check.
var _ draw.Image = (*Surface)(nil)
