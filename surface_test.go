package fbdraw

import (
	"image"
	"image/color"
	"testing"
)

func TestNew(t *testing.T) {
	testCases := []image.Point{
		{},
		image.Pt(1, 1),
		image.Pt(4, 4),
		image.Pt(256, 32),
		image.Pt(1920, 1200),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			s := New(test.X, test.Y)

			if w, h := s.Size(); w != test.X || h != test.Y {
				it.Errorf("expected size (%d, %d), got (%d, %d)", test.X, test.Y, w, h)
			}
			if v := len(s.Pix()); v != test.X*test.Y {
				it.Errorf("expected %d pixels, got %d", test.X*test.Y, v)
			}
			for i, c := range s.Pix() {
				if c != 0 {
					it.Fatalf("pixel %d is %#06x, expected black", i, uint32(c))
				}
			}
		})
	}

	t.Run("negative", func(it *testing.T) {
		s := New(-3, -4)
		if v := len(s.Pix()); v != 0 {
			it.Errorf("expected empty buffer, got %d pixels", v)
		}
	})
}

func TestPutPixel(t *testing.T) {
	t.Run("in-bounds", func(it *testing.T) {
		s := New(10, 10)
		s.PutPixel(3, 7, RGB(255, 0, 0))
		if v := s.Pix()[7*10+3]; v != RGB(255, 0, 0) {
			it.Errorf("expected pixel (3,7) to be red, got %#06x", uint32(v))
		}
	})

	t.Run("clamped", func(it *testing.T) {
		s := New(10, 10)
		c := RGB(0, 255, 0)
		s.PutPixel(50, 50, c)

		for i, v := range s.Pix() {
			switch i {
			case 9*10 + 9:
				if v != c {
					it.Errorf("expected pixel 99 to be %#06x, got %#06x", uint32(c), uint32(v))
				}
			default:
				if v != 0 {
					it.Errorf("expected pixel %d to be untouched, got %#06x", i, uint32(v))
				}
			}
		}
	})

	t.Run("clamped-negative", func(it *testing.T) {
		s := New(10, 10)
		c := RGB(0, 0, 255)
		s.PutPixel(-5, -5, c)
		if v := s.Pix()[0]; v != c {
			it.Errorf("expected pixel 0 to be %#06x, got %#06x", uint32(c), uint32(v))
		}
	})

	t.Run("last-write-wins", func(it *testing.T) {
		s := New(4, 4)
		s.PutPixel(2, 2, RGB(255, 0, 0))
		s.PutPixel(2, 2, RGB(0, 0, 255))
		if v := s.Pix()[2*4+2]; v != RGB(0, 0, 255) {
			it.Errorf("expected pixel (2,2) to be blue, got %#06x", uint32(v))
		}
	})

	t.Run("empty-surface", func(it *testing.T) {
		s := New(0, 0)
		s.PutPixel(0, 0, White) // must not panic
	})

	t.Run("size-unaffected", func(it *testing.T) {
		s := New(7, 5)
		for i := 0; i < 100; i++ {
			s.PutPixel(i, i, White)
		}
		if w, h := s.Size(); w != 7 || h != 5 {
			it.Errorf("expected size (7, 5), got (%d, %d)", w, h)
		}
	})
}

// TestDrawScenario is the 4×4 end-to-end case: a corner write, an edge
// write and a clamped out-of-bounds write that overwrites the edge pixel.
func TestDrawScenario(t *testing.T) {
	s := New(4, 4)
	s.PutPixel(0, 0, RGB(255, 0, 0))
	s.PutPixel(3, 3, RGB(0, 255, 0))
	s.PutPixel(10, 10, RGB(0, 0, 255))

	for i, v := range s.Pix() {
		var want Color
		switch i {
		case 0:
			want = RGB(255, 0, 0)
		case 15:
			want = RGB(0, 0, 255)
		}
		if v != want {
			t.Errorf("pixel %d is %#06x, expected %#06x", i, uint32(v), uint32(want))
		}
	}
}

func TestSurfaceImage(t *testing.T) {
	s := New(8, 8)

	if v := s.ColorModel(); v != Model {
		t.Errorf("expected color model %T, got %T", Model, v)
	}
	if v := s.Bounds(); v != image.Rect(0, 0, 8, 8) {
		t.Errorf("expected bounds (8, 8), got %s", v)
	}

	t.Run("set-at", func(it *testing.T) {
		c := color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}
		s.Set(1, 2, c)
		if v := s.At(1, 2); v != RGB(0x10, 0x20, 0x30) {
			it.Errorf("expected pixel (1,2) to be %#06x, got %#+v", uint32(RGB(0x10, 0x20, 0x30)), v)
		}
	})

	t.Run("out-bounds", func(it *testing.T) {
		s.Set(-1, 0, color.White)
		s.Set(8, 0, color.White)
		s.Set(0, 8, color.White)
		if v := s.At(-1, 0); v != color.Transparent {
			it.Errorf("expected transparent, got %#+v", v)
		}
		if v := s.At(8, 8); v != color.Transparent {
			it.Errorf("expected transparent, got %#+v", v)
		}
		if v := s.Pix()[0]; v != 0 {
			it.Errorf("expected pixel 0 to be untouched, got %#06x", uint32(v))
		}
	})
}

func TestFillClear(t *testing.T) {
	s := New(3, 3)
	s.Fill(RGB(1, 2, 3))
	for i, v := range s.Pix() {
		if v != RGB(1, 2, 3) {
			t.Fatalf("pixel %d is %#06x after Fill", i, uint32(v))
		}
	}

	s.Clear()
	for i, v := range s.Pix() {
		if v != 0 {
			t.Fatalf("pixel %d is %#06x after Clear", i, uint32(v))
		}
	}
}
