// Command fbdraw-demo draws an animated test pattern on one of the
// supported display backends. The gradient, line and text drawing all live
// here on the caller side of the surface: the library only offers the
// put-pixel primitive.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/golang/freetype"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/fbdraw"
	"github.com/BeatGlow/fbdraw/framebuffer"
	"github.com/BeatGlow/fbdraw/st7789"
	"github.com/BeatGlow/fbdraw/term"
)

func main() {
	backendFlag := flag.String("backend", "term", "Display backend (term, fb, st7789)")
	widthFlag := flag.Int("width", 240, "Surface width in pixels")
	heightFlag := flag.Int("height", 240, "Surface height in pixels")
	fpsFlag := flag.Int("fps", 60, "Frame rate limit (0 = unlimited)")
	labelFlag := flag.String("label", "fbdraw", "Text drawn on the surface")
	fbDeviceFlag := flag.String("fb-dev", "", "Framebuffer device (default: use "+framebuffer.DefaultDevice+")")
	spiBusFlag := flag.Int("spi-bus", 0, "SPI bus")
	spiDeviceFlag := flag.Int("spi-dev", 0, "SPI device")
	resetPinFlag := flag.String("reset", "GPIO25", "Reset GPIO pin")
	dcPinFlag := flag.String("dc", "GPIO24", "Data/Command GPIO pin (DC)")
	blPinFlag := flag.String("bl", "GPIO19", "Backlight GPIO pin")
	quitPinFlag := flag.String("quit", "", "Quit button GPIO pin")
	flag.Parse()

	var driver fbdraw.Driver
	switch *backendFlag {
	case "term":
		driver = term.Driver{}
	case "fb":
		driver = framebuffer.Driver{Device: *fbDeviceFlag}
	case "st7789":
		if _, err := host.Init(); err != nil {
			fatal(err)
		}
		config := &st7789.Config{
			Bus:       *spiBusFlag,
			Device:    *spiDeviceFlag,
			Reset:     gpioreg.ByName(*resetPinFlag),
			DC:        gpioreg.ByName(*dcPinFlag),
			Backlight: gpioreg.ByName(*blPinFlag),
		}
		if *quitPinFlag != "" {
			config.Quit = gpioreg.ByName(*quitPinFlag)
		}
		driver = st7789.Driver{Config: config}
	default:
		fatal(fmt.Errorf("unsupported backend %q", *backendFlag))
	}

	surface := fbdraw.New(*widthFlag, *heightFlag)

	text, err := newLabel(surface)
	if err != nil {
		fatal(err)
	}

	config := &fbdraw.LoopConfig{
		Driver:   driver,
		ExitKeys: []fbdraw.Key{fbdraw.KeyEscape, fbdraw.KeyQ},
	}
	if *fpsFlag <= 0 {
		config.UpdateInterval = fbdraw.Unlimited
	} else {
		config.UpdateInterval = time.Second / time.Duration(*fpsFlag)
	}

	var offset uint32
	err = surface.BeginDraw(func(s *fbdraw.Surface) {
		width, height := s.Size()

		// Moving gradient
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				s.PutPixel(x, y, fbdraw.RGB(
					(uint32(x)+offset)&0xff,
					(uint32(y)+offset)&0xff,
					(uint32(x+y)-offset)&0xff,
				))
			}
		}

		// Diagonals, drawn one pixel at a time
		line(s, 0, 0, width-1, height-1, fbdraw.White)
		line(s, 0, height-1, width-1, 0, fbdraw.RGB(255, 0, 0))

		if _, err := text.DrawString(*labelFlag, freetype.Pt(8, 24)); err != nil {
			fatal(err)
		}

		offset++
	}, config)
	if err != nil {
		fatal(err)
	}
}

// newLabel prepares a freetype context that renders text straight onto the
// surface, which doubles as a draw.Image.
func newLabel(s *fbdraw.Surface) (*freetype.Context, error) {
	f, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, err
	}

	c := freetype.NewContext()
	c.SetFont(f)
	c.SetFontSize(16)
	c.SetDPI(72)
	c.SetDst(s)
	c.SetClip(s.Bounds())
	c.SetSrc(image.White)
	return c, nil
}

// line draws a line with the integer Bresenham algorithm, one PutPixel per
// step.
func line(s *fbdraw.Surface, x1, y1, x2, y2 int, c fbdraw.Color) {
	dx, dy := abs(x2-x1), -abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	e := dx + dy
	for {
		s.PutPixel(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			return
		}
		if e2 := 2 * e; e2 >= dy {
			e += dy
			x1 += sx
		} else {
			e += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
