package fbdraw

import "image/color"

// Model converts arbitrary colors to the packed Color type.
var Model color.Model = color.ModelFunc(model)

// Convenience colors.
var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
)

// Color is a packed 24-bit RGB color, with red in bits 16-23, green in bits
// 8-15 and blue in bits 0-7.
type Color uint32

// RGB returns a color constructed from the given red, green and blue
// components. Component values are clamped to 255.
func RGB(r, g, b uint32) Color {
	return Color(min(r, 255)<<16 | min(g, 255)<<8 | min(b, 255))
}

// R returns the red component.
func (c Color) R() uint8 {
	return uint8(c >> 16)
}

// G returns the green component.
func (c Color) G() uint8 {
	return uint8(c >> 8)
}

// B returns the blue component.
func (c Color) B() uint8 {
	return uint8(c)
}

func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c>>16) & 0xff
	r |= r << 8
	g = uint32(c>>8) & 0xff
	g |= g << 8
	b = uint32(c) & 0xff
	b |= b << 8
	return r, g, b, 0xffff
}

func model(c color.Color) color.Color {
	if c, ok := c.(Color); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return RGB(r>>8, g>>8, b>>8)
}
