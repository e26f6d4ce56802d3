package st7789

import (
	"fmt"
	"os"

	"github.com/BeatGlow/fbdraw/internal/ioctl"
)

// Definitions from <linux/spi/spidev.h>
const (
	spiCPHA = 0x01
	spiCPOL = 0x02

	spiMode3 = spiCPOL | spiCPHA

	spiIOCMode       = 0x6b01
	spiIOCMaxSpeedHz = 0x6b04
)

// spiBus implements the spidev interface.
type spiBus struct {
	f  *os.File
	fd uintptr
}

// openSPI opens the numbered SPI bus with the numbered device. The device
// usually corresponds to the CS pin for that bus.
func openSPI(bus, device int) (*spiBus, error) {
	spidev := fmt.Sprintf("/dev/spidev%d.%d", bus, device)
	f, err := os.OpenFile(spidev, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &spiBus{
		f:  f,
		fd: f.Fd(),
	}, nil
}

func (c *spiBus) Close() error {
	return c.f.Close()
}

func (c *spiBus) Write(b []byte) (n int, err error) {
	return c.f.Write(b)
}

func (c *spiBus) setMode(mode uint8) error {
	if err := ioctl.Do(c.fd, ioctl.Pointer(ioctl.Write, &mode, spiIOCMode), &mode); err != nil {
		return err
	}

	var test uint8
	if err := ioctl.Do(c.fd, ioctl.Pointer(ioctl.Read, &test, spiIOCMode), &test); err != nil {
		return err
	}
	if test != mode {
		return fmt.Errorf("st7789: attempted to set SPI mode %#02x, but mode %#02x is in use", mode, test)
	}
	return nil
}

func (c *spiBus) setMaxSpeed(hz uint32) error {
	return ioctl.Do(c.fd, ioctl.Pointer(ioctl.Write, &hz, spiIOCMaxSpeedHz), &hz)
}
