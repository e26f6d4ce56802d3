// Package framebuffer provides a display backend on the operating system's
// native framebuffer device.
//
// This requires framebuffer device support in the operating system. The
// framebuffer has no window and no keyboard: the display reports open until
// the process receives an interrupt or termination signal, and no key is
// ever reported as pressed.
package framebuffer

// DefaultDevice is the framebuffer device used when Driver.Device is empty.
const DefaultDevice = "/dev/fb0"

// Driver opens displays on a framebuffer device.
type Driver struct {
	// Device is the framebuffer device path, typically /dev/fb[0..x].
	// DefaultDevice when empty.
	Device string
}
