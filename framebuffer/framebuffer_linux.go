package framebuffer

import (
	"encoding/binary"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/BeatGlow/fbdraw"
	"github.com/BeatGlow/fbdraw/internal/ioctl"
	"github.com/BeatGlow/fbdraw/internal/pacer"
	"github.com/BeatGlow/fbdraw/internal/pixconv"
)

const (
	// From <linux/fb.h>
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
)

type pixelFormat uint8

const (
	formatXRGB8888 pixelFormat = iota
	formatRGB565
	formatBGR565
	formatRGB555
)

type frameBuffer struct {
	f          *os.File
	fd         uintptr
	mem        []byte
	info       linuxFrameBufferInfo
	screenInfo linuxVarScreenInfo
	format     pixelFormat
	order      binary.ByteOrder
	width      int
	height     int
	pacer      pacer.Pacer
	open       atomic.Bool
	signals    chan os.Signal
}

// Open a display on the framebuffer device (fbdev). The title is ignored;
// framebuffers have no title bar. The requested size must fit the current
// video mode.
func (d Driver) Open(_ string, width, height int) (fbdraw.Display, error) {
	name := d.Device
	if name == "" {
		name = DefaultDevice
	}

	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, err
	}

	fb := &frameBuffer{
		f:      f,
		fd:     f.Fd(),
		width:  width,
		height: height,
	}
	if err = ioctl.Do(fb.fd, fbioGetFScreenInfo, &fb.info); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err = ioctl.Do(fb.fd, fbioGetVScreenInfo, &fb.screenInfo); err != nil {
		_ = f.Close()
		return nil, err
	}

	if fb.format, fb.order, err = parsePixelFormat(&fb.screenInfo); err != nil {
		_ = f.Close()
		return nil, err
	}

	if width > int(fb.screenInfo.Xres) || height > int(fb.screenInfo.Yres) {
		_ = f.Close()
		return nil, fmt.Errorf("framebuffer: surface %dx%d does not fit the %dx%d video mode",
			width, height, fb.screenInfo.Xres, fb.screenInfo.Yres)
	}

	if fb.mem, err = syscall.Mmap(int(fb.fd), 0, int(fb.info.SmemLen), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED); err != nil {
		_ = f.Close()
		return nil, err
	}

	// There is no window to close, so an interrupt or termination signal
	// flips the display to closed and ends the draw loop.
	fb.open.Store(true)
	fb.signals = make(chan os.Signal, 1)
	signal.Notify(fb.signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-fb.signals
		fb.open.Store(false)
	}()

	return fb, nil
}

func (fb *frameBuffer) Close() error {
	signal.Stop(fb.signals)
	close(fb.signals)
	fb.open.Store(false)

	if err := syscall.Munmap(fb.mem); err != nil {
		_ = fb.f.Close()
		return err
	}
	return fb.f.Close()
}

func (fb *frameBuffer) IsOpen() bool {
	return fb.open.Load()
}

// IsKeyDown always reports false; the framebuffer has no input device.
func (fb *frameBuffer) IsKeyDown(fbdraw.Key) bool {
	return false
}

func (fb *frameBuffer) SetRateLimit(interval time.Duration) {
	fb.pacer.SetInterval(interval)
}

func (fb *frameBuffer) Present(pix []fbdraw.Color, width, height int) error {
	if width != fb.width || height != fb.height || len(pix) != width*height {
		return fmt.Errorf("framebuffer: buffer of %d pixels does not match the %dx%d display",
			len(pix), fb.width, fb.height)
	}

	stride := int(fb.info.LineLength)
	switch fb.format {
	case formatXRGB8888:
		for y := 0; y < height; y++ {
			row := fb.mem[y*stride:]
			for x := 0; x < width; x++ {
				fb.order.PutUint32(row[x*4:], uint32(pix[y*width+x]))
			}
		}
	case formatRGB565:
		for y := 0; y < height; y++ {
			row := fb.mem[y*stride:]
			for x := 0; x < width; x++ {
				fb.order.PutUint16(row[x*2:], pixconv.RGB565(pix[y*width+x]))
			}
		}
	case formatBGR565:
		for y := 0; y < height; y++ {
			row := fb.mem[y*stride:]
			for x := 0; x < width; x++ {
				fb.order.PutUint16(row[x*2:], pixconv.BGR565(pix[y*width+x]))
			}
		}
	case formatRGB555:
		for y := 0; y < height; y++ {
			row := fb.mem[y*stride:]
			for x := 0; x < width; x++ {
				fb.order.PutUint16(row[x*2:], pixconv.RGB555(pix[y*width+x]))
			}
		}
	}

	fb.pacer.Wait()
	return nil
}

func parsePixelFormat(info *linuxVarScreenInfo) (pixelFormat, binary.ByteOrder, error) {
	switch info.BitsPerPixel {
	case 15:
		if info.Red.Offset == 10 && info.Red.Length == 5 &&
			info.Green.Offset == 5 && info.Green.Length == 5 &&
			info.Blue.Offset == 0 && info.Blue.Length == 5 {
			return formatRGB555, binary.LittleEndian, nil
		}

	case 16:
		switch {
		case info.Red.Offset == 11 && info.Red.Length == 5 &&
			info.Green.Offset == 5 && info.Green.Length == 6 &&
			info.Blue.Offset == 0 && info.Blue.Length == 5:
			return formatRGB565, binary.LittleEndian, nil

		case info.Blue.Offset == 11 && info.Blue.Length == 5 &&
			info.Green.Offset == 5 && info.Green.Length == 6 &&
			info.Red.Offset == 0 && info.Red.Length == 5:
			return formatBGR565, binary.LittleEndian, nil
		}

	case 32:
		if info.Red.Offset == 16 && info.Red.Length == 8 &&
			info.Green.Offset == 8 && info.Green.Length == 8 &&
			info.Blue.Offset == 0 && info.Blue.Length == 8 {
			return formatXRGB8888, binary.LittleEndian, nil
		}
	}

	return 0, nil, fmt.Errorf("framebuffer: unsupported pixel format (%d bits per pixel)", info.BitsPerPixel)
}

type linuxFrameBufferInfo struct {
	ID         [16]byte  // Identification string eg "TT Builtin"
	SmemStart  uintptr   // Start of frame buffer mem
	SmemLen    uint32    // Length of frame buffer mem
	Type       uint32    // FB_TYPE_
	TypeAux    uint32    // Interleave for interleaved Planes
	Visual     uint32    // FB_VISUAL_
	Xpanstep   uint16    // Zero if no hardware panning
	Ypanstep   uint16    // Zero if no hardware panning
	Ywrapstep  uint16    // Zero if no hardware ywrap
	LineLength uint32    // Length of a line in bytes
	MmioStart  uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen    uint32    // Length of Memory Mapped I/O
	Accel      uint32    // Type of acceleration available
	Reserved   [3]uint16 // Reserved for future compatibility
}

type linuxBitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

// linuxVarScreenInfo contains device independent changeable information
// about a frame buffer device and a specific video mode.
type linuxVarScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha linuxBitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}

// Interface check.
var _ fbdraw.Display = (*frameBuffer)(nil)
