package ioctl

import "testing"

func TestEncode(t *testing.T) {
	testCases := []struct {
		name string
		mode Mode
		size uint16
		cmd  uintptr
		want Command
	}{
		{"none", None, 0, 0x6b01, 0x00006b01},
		{"write", Write, 1, 0x6b01, 0x40016b01},
		{"read", Read, 4, 0x6b04, 0x80046b04},
	}
	for _, test := range testCases {
		t.Run(test.name, func(it *testing.T) {
			if v := Encode(test.mode, test.size, test.cmd); v != test.want {
				it.Errorf("expected %#08x, got %#08x", uintptr(test.want), uintptr(v))
			}
		})
	}
}

func TestPointer(t *testing.T) {
	var v uint32
	if c, want := Pointer(Read, &v, 0x6b04), Encode(Read, 4, 0x6b04); c != want {
		t.Errorf("expected %#08x, got %#08x", uintptr(want), uintptr(c))
	}
}

func TestCommandString(t *testing.T) {
	var v uint8
	c := Pointer(Write, &v, 0x6b01)
	if s := c.String(); s != "ioctl write (1 bytes) 0x6b01" {
		t.Errorf("unexpected string: %q", s)
	}
}
