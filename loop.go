package fbdraw

import (
	"fmt"
	"log"
	"time"
)

// DrawFunc draws a single frame on the surface. It is called once per loop
// iteration, before the frame is presented.
type DrawFunc func(*Surface)

// DefaultUpdateInterval is the frame pacing used when LoopConfig leaves
// UpdateInterval at zero, roughly 60 frames per second.
const DefaultUpdateInterval = 16600 * time.Microsecond

// Unlimited disables frame pacing.
const Unlimited time.Duration = -1

// LoopConfig configures the draw loop.
type LoopConfig struct {
	// Driver opens the display that frames are presented to.
	Driver Driver

	// Title of the display. DefaultLoopConfig.Title when empty.
	Title string

	// UpdateInterval is the minimum interval between two presented
	// frames. Zero selects DefaultUpdateInterval, Unlimited disables
	// pacing.
	UpdateInterval time.Duration

	// ExitKeys end the draw loop when one of them is pressed. A nil
	// slice selects DefaultLoopConfig.ExitKeys; an empty non-nil slice
	// disables key-based exit.
	ExitKeys []Key
}

// DefaultLoopConfig are the default draw loop configuration values.
var DefaultLoopConfig = LoopConfig{
	Title:          "fbdraw - ESC to exit",
	UpdateInterval: DefaultUpdateInterval,
	ExitKeys:       []Key{KeyEscape},
}

// BeginDraw opens a display of the surface size and runs the draw loop:
// draw is invoked once per frame and the surface buffer is presented right
// after, until the display closes or an exit key is pressed.
//
// A nil config selects DefaultLoopConfig, which has no Driver; a usable
// config names the display driver to open the display with. Failure to open
// the display and failure to present a frame are both returned as errors;
// neither is retried.
func (s *Surface) BeginDraw(draw DrawFunc, config *LoopConfig) error {
	if config == nil {
		config = new(LoopConfig)
		*config = DefaultLoopConfig
	}
	if config.Driver == nil {
		return ErrNoDriver
	}

	title := config.Title
	if title == "" {
		title = DefaultLoopConfig.Title
	}
	interval := config.UpdateInterval
	if interval == 0 {
		interval = DefaultLoopConfig.UpdateInterval
	}
	exitKeys := config.ExitKeys
	if exitKeys == nil {
		exitKeys = DefaultLoopConfig.ExitKeys
	}

	d, err := config.Driver.Open(title, s.width, s.height)
	if err != nil {
		return fmt.Errorf("fbdraw: open display: %w", err)
	}
	defer d.Close()

	if interval < 0 {
		interval = 0 // no limit
	}
	d.SetRateLimit(interval)

	var frames uint64
	for d.IsOpen() && !anyKeyDown(d, exitKeys) {
		draw(s)
		if err := d.Present(s.pix, s.width, s.height); err != nil {
			return fmt.Errorf("fbdraw: present frame %d: %w", frames, err)
		}
		frames++
	}
	if debug {
		log.Printf("fbdraw: draw loop ended after %d frames", frames)
	}
	return nil
}

func anyKeyDown(d Display, keys []Key) bool {
	for _, key := range keys {
		if d.IsKeyDown(key) {
			return true
		}
	}
	return false
}
