// Package st7789 provides a display backend for ST7789 TFT panels connected
// over SPI, such as the 240x240 and 240x320 modules found on Raspberry Pi
// HATs.
//
// The panel has no keyboard; an optional push button wired to a GPIO pin can
// be configured as the Escape key to end the draw loop.
package st7789

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/fbdraw"
	"github.com/BeatGlow/fbdraw/internal/pacer"
	"github.com/BeatGlow/fbdraw/internal/pixconv"
)

// Panel size limits of the ST7789 controller.
const (
	maxWidth  = 240
	maxHeight = 320
)

// Registers (from st7789.pdf).
const (
	st7789SLPOUT    = 0x11 // Sleep Out
	st7789INVON     = 0x21 // Display Inversion On
	st7789DISPOFF   = 0x28 // Display Off
	st7789DISPON    = 0x29 // Display On
	st7789CASET     = 0x2A // Column Address Set
	st7789RASET     = 0x2B // Row Address Set
	st7789RAMWR     = 0x2C // Memory Write
	st7789MADCTL    = 0x36 // Memory Data Access Control
	st7789COLMOD    = 0x3A // Interface Pixel Format
	st7789PORCTRL   = 0xB2 // Porch Setting
	st7789GCTRL     = 0xB7 // Gate Control
	st7789VCOMS     = 0xBB // VCOM Setting
	st7789LCMCTRL   = 0xC0 // LCM Control
	st7789VDVVRHEN  = 0xC2 // VDV and VRH Command Enable
	st7789VRHS      = 0xC3 // VRH Set
	st7789VDVSET    = 0xC4 // VDV Set
	st7789VCMOFSET  = 0xC5 // VCOM Offset Set
	st7789FRCTR2    = 0xC6 // Frame Rate Control in Normal Mode
	st7789PWCTRL1   = 0xD0 // Power Control 1
	st7789PVGAMCTRL = 0xE0 // Positive Voltage Gamma Control
	st7789NVGAMCTRL = 0xE1 // Negative Voltage Gamma Control
)

// Errors
var (
	ErrResetPin = errors.New("st7789: reset GPIO pin is invalid")
	ErrDCPin    = errors.New("st7789: data/command (DC) GPIO pin is invalid")
)

// Config describes the panel wiring.
type Config struct {
	// Bus and Device select the spidev interface, /dev/spidev<bus>.<device>.
	Bus    int
	Device int

	// SpeedHz is the SPI clock speed, DefaultConfig.SpeedHz when zero.
	SpeedHz uint32

	// Reset pin.
	Reset gpio.PinOut

	// DC is the data/command pin.
	DC gpio.PinOut

	// Backlight pin, optional.
	Backlight gpio.PinOut

	// Quit is an optional push button to ground, reported as the Escape
	// key while held down.
	Quit gpio.PinIn
}

// DefaultConfig are the default configuration values.
var DefaultConfig = Config{
	SpeedHz: 40_000_000,
}

// Driver opens displays on an ST7789 panel.
type Driver struct {
	Config *Config
}

// Open initializes the panel and returns it as a display of the given size.
// The title is ignored. The size must not exceed the 240x320 controller
// RAM.
func (d Driver) Open(_ string, width, height int) (fbdraw.Display, error) {
	config := d.Config
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}

	if config.Reset == nil || config.Reset == gpio.INVALID {
		return nil, ErrResetPin
	}
	if config.DC == nil || config.DC == gpio.INVALID {
		return nil, ErrDCPin
	}
	if width <= 0 || height <= 0 || width > maxWidth || height > maxHeight {
		return nil, fmt.Errorf("st7789: invalid size %dx%d, maximum size is %dx%d", width, height, maxWidth, maxHeight)
	}

	speed := config.SpeedHz
	if speed == 0 {
		speed = DefaultConfig.SpeedHz
	}

	bus, err := openSPI(config.Bus, config.Device)
	if err != nil {
		return nil, err
	}
	if err = bus.setMode(spiMode3); err != nil {
		_ = bus.Close()
		return nil, err
	}
	if err = bus.setMaxSpeed(speed); err != nil {
		_ = bus.Close()
		return nil, err
	}

	p := &panel{
		bus:       bus,
		reset:     config.Reset,
		dc:        config.DC,
		backlight: config.Backlight,
		quit:      config.Quit,
		width:     width,
		height:    height,
		scratch:   make([]byte, width*height*2),
	}
	if p.quit != nil {
		if err = p.quit.In(gpio.PullUp, gpio.NoEdge); err != nil {
			_ = bus.Close()
			return nil, err
		}
	}
	if err = p.init(); err != nil {
		_ = bus.Close()
		return nil, err
	}

	p.open = true
	return p, nil
}

type panel struct {
	bus       *spiBus
	reset     gpio.PinOut
	dc        gpio.PinOut
	dcLevel   gpio.Level
	backlight gpio.PinOut
	quit      gpio.PinIn
	width     int
	height    int
	scratch   []byte
	pacer     pacer.Pacer
	open      bool
}

func (p *panel) init() (err error) {
	// Drive DC to a known level before the first command.
	if err = p.dc.Out(gpio.Low); err != nil {
		return
	}
	p.dcLevel = gpio.Low

	// Hardware reset.
	for _, level := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err = p.reset.Out(level); err != nil {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	time.Sleep(10 * time.Millisecond)
	if err = p.command(st7789SLPOUT); err != nil {
		return
	}
	time.Sleep(150 * time.Millisecond)

	if err = p.commands([][]byte{
		{st7789MADCTL, 0x00},
		{st7789COLMOD, 0x05},        // 16-bit/pixel (RGB 5-6-5-bit input)
		{st7789PORCTRL, 0x0C, 0x0C}, // Porch Setting: default
		{st7789GCTRL, 0x35},         // Gate Control: 13.26V / -10.43V (default)
		{st7789VCOMS, 0x1A},         // VCOM Setting: 0.75V
		{st7789LCMCTRL, 0x2C},       // LCM Control: default
		{st7789VDVVRHEN, 0x01},      // VDV and VRH Command Enable: default
		{st7789VRHS, 0x0B},          // VRH Set: default
		{st7789VDVSET, 0x20},        // VDV Set: default (0V)
		{st7789VCMOFSET, 0x20},      // VCOM Offset Set: default (0V)
		{st7789FRCTR2, 0x0F},        // Frame Rate Control: 60Hz (default)
		{st7789PWCTRL1, 0xA4, 0xA1}, // Power Control 1: default
		{st7789INVON},
		{st7789PVGAMCTRL, 0x00, 0x19, 0x1E, 0x0A, 0x09, 0x15, 0x3D, 0x44, 0x51, 0x12, 0x03, 0x00, 0x3F, 0x3F},
		{st7789NVGAMCTRL, 0x00, 0x18, 0x1E, 0x0A, 0x09, 0x25, 0x3F, 0x43, 0x52, 0x33, 0x03, 0x00, 0x3F, 0x3F},
		{st7789DISPON},
	}); err != nil {
		return
	}
	time.Sleep(100 * time.Millisecond)

	if p.backlight != nil {
		err = p.backlight.Out(gpio.High)
	}
	return
}

func (p *panel) setDC(level gpio.Level) error {
	if p.dcLevel != level {
		if err := p.dc.Out(level); err != nil {
			return err
		}
		p.dcLevel = level
	}
	return nil
}

func (p *panel) command(command byte, data ...byte) (err error) {
	if err = p.setDC(gpio.Low); err != nil {
		return
	}
	if _, err = p.bus.Write([]byte{command}); err != nil {
		return
	}
	if len(data) > 0 {
		err = p.data(data)
	}
	return
}

func (p *panel) commands(commands [][]byte) (err error) {
	for _, command := range commands {
		if err = p.command(command[0], command[1:]...); err != nil {
			return
		}
	}
	return
}

func (p *panel) data(data []byte) (err error) {
	if err = p.setDC(gpio.High); err != nil {
		return
	}
	const batchSize = 4096
	for off, l := 0, len(data); off < l; off += batchSize {
		end := off + batchSize
		if end > l {
			end = l
		}
		if _, err = p.bus.Write(data[off:end]); err != nil {
			return
		}
	}
	return
}

func (p *panel) setWindow(x0, y0, x1, y1 int) error {
	return p.commands([][]byte{
		{st7789CASET, byte(x0 >> 8), byte(x0), byte(x1 >> 8), byte(x1)},
		{st7789RASET, byte(y0 >> 8), byte(y0), byte(y1 >> 8), byte(y1)},
		{st7789RAMWR},
	})
}

func (p *panel) Close() error {
	p.open = false
	if p.backlight != nil {
		_ = p.backlight.Out(gpio.Low)
	}
	if err := p.command(st7789DISPOFF); err != nil {
		_ = p.bus.Close()
		return err
	}
	return p.bus.Close()
}

func (p *panel) IsOpen() bool {
	return p.open
}

// IsKeyDown reports the quit button, if configured, as the Escape key. The
// button is active low (wired to ground with the internal pull-up).
func (p *panel) IsKeyDown(key fbdraw.Key) bool {
	if key != fbdraw.KeyEscape || p.quit == nil {
		return false
	}
	return p.quit.Read() == gpio.Low
}

func (p *panel) SetRateLimit(interval time.Duration) {
	p.pacer.SetInterval(interval)
}

func (p *panel) Present(pix []fbdraw.Color, width, height int) error {
	if width != p.width || height != p.height || len(pix) != width*height {
		return fmt.Errorf("st7789: buffer of %d pixels does not match the %dx%d panel", len(pix), p.width, p.height)
	}

	if err := p.setWindow(0, 0, width-1, height-1); err != nil {
		return err
	}
	for i, c := range pix {
		binary.BigEndian.PutUint16(p.scratch[i*2:], pixconv.RGB565(c))
	}
	if err := p.data(p.scratch); err != nil {
		return err
	}

	p.pacer.Wait()
	return nil
}

func (p *panel) String() string {
	return fmt.Sprintf("ST7789 %dx%d", p.width, p.height)
}

// Interface check.
var _ fbdraw.Display = (*panel)(nil)
