//go:build !linux

package framebuffer

import (
	"errors"

	"github.com/BeatGlow/fbdraw"
)

var ErrNotSupported = errors.New("framebuffer: not supported")

func (d Driver) Open(_ string, _, _ int) (fbdraw.Display, error) {
	return nil, ErrNotSupported
}
