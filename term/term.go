// Package term provides a display backend that renders the surface in the
// terminal using tcell, packing two pixel rows into every character cell.
//
// It is the only backend that needs no hardware access, which makes it the
// default choice for trying out drawing code.
package term

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/BeatGlow/fbdraw"
	"github.com/BeatGlow/fbdraw/internal/pacer"
)

// Driver opens the controlling terminal as a display.
type Driver struct{}

// Open the terminal as a display of the given size. The title is ignored;
// the terminal window is not ours to name.
func (Driver) Open(_ string, width, height int) (fbdraw.Display, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return open(screen, width, height)
}

func open(screen tcell.Screen, width, height int) (*display, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}

	d := &display{
		screen: screen,
		width:  width,
		height: height,
		keys:   make(map[fbdraw.Key]bool),
		open:   true,
	}
	go d.poll()
	return d, nil
}

type display struct {
	screen tcell.Screen
	width  int
	height int
	pacer  pacer.Pacer

	mu   sync.Mutex
	open bool
	keys map[fbdraw.Key]bool
}

// poll consumes terminal events until the screen is finalized. Terminals
// report key presses, not key state, so a seen key stays down; that is
// sufficient for exit keys.
func (d *display) poll() {
	for {
		ev := d.screen.PollEvent()
		if ev == nil { // Fini was called
			return
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}

		d.mu.Lock()
		switch key.Key() {
		case tcell.KeyEscape:
			d.keys[fbdraw.KeyEscape] = true
		case tcell.KeyEnter:
			d.keys[fbdraw.KeyEnter] = true
		case tcell.KeyCtrlC:
			d.open = false
		case tcell.KeyRune:
			switch key.Rune() {
			case ' ':
				d.keys[fbdraw.KeySpace] = true
			case 'q', 'Q':
				d.keys[fbdraw.KeyQ] = true
			}
		}
		d.mu.Unlock()
	}
}

func (d *display) Close() error {
	d.mu.Lock()
	d.open = false
	d.mu.Unlock()

	d.screen.Fini()
	return nil
}

func (d *display) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

func (d *display) IsKeyDown(key fbdraw.Key) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.keys[key]
}

func (d *display) SetRateLimit(interval time.Duration) {
	d.pacer.SetInterval(interval)
}

// Present renders the buffer with the upper half block rune: the upper
// pixel row of a cell is the foreground color, the lower row the
// background.
func (d *display) Present(pix []fbdraw.Color, width, height int) error {
	if width != d.width || height != d.height || len(pix) != width*height {
		return fmt.Errorf("term: buffer of %d pixels does not match the %dx%d display", len(pix), d.width, d.height)
	}

	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			style := tcell.StyleDefault.Foreground(cellColor(pix[y*width+x]))
			if y+1 < height {
				style = style.Background(cellColor(pix[(y+1)*width+x]))
			}
			d.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}
	d.screen.Show()

	d.pacer.Wait()
	return nil
}

func cellColor(c fbdraw.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R()), int32(c.G()), int32(c.B()))
}

// Interface check.
var _ fbdraw.Display = (*display)(nil)
