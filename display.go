// Package fbdraw provides a simple pixel surface with a single put-pixel
// primitive and a fixed-rate draw loop that presents the surface on a
// display.
//
// The aim is to allow playing around with graphics algorithms like curve
// drawing without the burden of setting up a window system or a GPU
// pipeline. The windowing concerns are hidden behind the [Display] and
// [Driver] interfaces; working implementations live in the framebuffer,
// st7789 and term sub-packages.
//
// The coordinate system has its origin at the top-left, with the X and Y
// axis running left-to-right and top-to-bottom, respectively.
package fbdraw

import (
	"errors"
	"os"
	"time"
)

var debug bool

func init() {
	debug = os.Getenv("FBDRAW_DEBUG") != ""
}

// Errors
var (
	ErrNoDriver = errors.New("fbdraw: no display driver configured")
)

// Key identifies a key on the display's input device.
type Key uint8

// Keys that a Display can report through IsKeyDown.
const (
	KeyEscape Key = iota
	KeyEnter
	KeySpace
	KeyQ
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeyEnter:
		return "enter"
	case KeySpace:
		return "space"
	case KeyQ:
		return "q"
	default:
		return "unknown"
	}
}

// Display is an open display that the draw loop presents frames to.
type Display interface {
	// Close the display.
	Close() error

	// IsOpen reports whether the display is still able to show frames.
	IsOpen() bool

	// IsKeyDown reports whether the given key is currently pressed.
	// Displays without an input device always report false.
	IsKeyDown(Key) bool

	// SetRateLimit sets the minimum interval between two presented
	// frames. An interval of zero or less removes the limit.
	SetRateLimit(time.Duration)

	// Present shows the pixel buffer, which holds width×height packed
	// colors in row-major order. Present may block until the next frame
	// slot when a rate limit is set.
	Present(pix []Color, width, height int) error
}

// Driver opens displays.
type Driver interface {
	// Open a display of the given size. The title is advisory; displays
	// without a title bar ignore it.
	Open(title string, width, height int) (Display, error)
}
