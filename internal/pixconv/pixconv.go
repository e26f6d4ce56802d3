// Package pixconv converts packed RGB888 surface pixels to the wire formats
// of the supported displays.
package pixconv

import "github.com/BeatGlow/fbdraw"

// RGB565 packs c into 16 bits as 5-6-5 red, green, blue.
func RGB565(c fbdraw.Color) uint16 {
	var (
		r = uint16(c>>16) & 0xff
		g = uint16(c>>8) & 0xff
		b = uint16(c) & 0xff
	)
	return r>>3<<11 | g>>2<<5 | b>>3
}

// BGR565 packs c into 16 bits as 5-6-5 blue, green, red.
func BGR565(c fbdraw.Color) uint16 {
	var (
		r = uint16(c>>16) & 0xff
		g = uint16(c>>8) & 0xff
		b = uint16(c) & 0xff
	)
	return b>>3<<11 | g>>2<<5 | r>>3
}

// RGB555 packs c into 15 bits as 5-5-5 red, green, blue.
func RGB555(c fbdraw.Color) uint16 {
	var (
		r = uint16(c>>16) & 0xff
		g = uint16(c>>8) & 0xff
		b = uint16(c) & 0xff
	)
	return r>>3<<10 | g>>3<<5 | b>>3
}
