package term

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/BeatGlow/fbdraw"
)

func newTestDisplay(t *testing.T, width, height int) (*display, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	d, err := open(screen, width, height)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return d, screen
}

func TestPresent(t *testing.T) {
	d, screen := newTestDisplay(t, 2, 2)
	defer d.Close()

	pix := []fbdraw.Color{
		fbdraw.RGB(255, 0, 0), fbdraw.RGB(0, 255, 0),
		fbdraw.RGB(0, 0, 255), fbdraw.RGB(255, 255, 255),
	}
	if err := d.Present(pix, 2, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cells, _, _ := screen.GetContents()
	cell := cells[0] // cell (0,0) holds pixels (0,0) and (0,1)
	if len(cell.Runes) == 0 || cell.Runes[0] != '▀' {
		t.Errorf("expected the half block rune, got %q", cell.Runes)
	}
	fg, bg, _ := cell.Style.Decompose()
	if want := tcell.NewRGBColor(255, 0, 0); fg != want {
		t.Errorf("expected red foreground, got %v", fg)
	}
	if want := tcell.NewRGBColor(0, 0, 255); bg != want {
		t.Errorf("expected blue background, got %v", bg)
	}
}

func TestPresentSizeMismatch(t *testing.T) {
	d, _ := newTestDisplay(t, 2, 2)
	defer d.Close()

	if err := d.Present(make([]fbdraw.Color, 9), 3, 3); err == nil {
		t.Error("expected an error for a mismatched buffer")
	}
}

func TestKeys(t *testing.T) {
	d, screen := newTestDisplay(t, 2, 2)
	defer d.Close()

	if d.IsKeyDown(fbdraw.KeyEscape) {
		t.Fatal("escape reported down before any input")
	}

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	waitFor(t, "escape key down", func() bool { return d.IsKeyDown(fbdraw.KeyEscape) })

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	waitFor(t, "q key down", func() bool { return d.IsKeyDown(fbdraw.KeyQ) })
}

func TestInterrupt(t *testing.T) {
	d, screen := newTestDisplay(t, 2, 2)
	defer d.Close()

	if !d.IsOpen() {
		t.Fatal("expected display to be open")
	}

	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModNone)
	waitFor(t, "display closed", func() bool { return !d.IsOpen() })
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("%s: condition not reached within a second", what)
}
