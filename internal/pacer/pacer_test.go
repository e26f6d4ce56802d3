package pacer

import (
	"testing"
	"time"
)

func TestPacerZeroValue(t *testing.T) {
	var p Pacer

	start := time.Now()
	for i := 0; i < 100; i++ {
		p.Wait()
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("expected unpaced waits to return immediately, took %s", elapsed)
	}
}

func TestPacerInterval(t *testing.T) {
	const interval = 50 * time.Millisecond

	var p Pacer
	p.SetInterval(interval)

	p.Wait() // first frame is not delayed
	start := time.Now()
	p.Wait()
	p.Wait()

	// Two paced frames take at least two intervals, minus scheduling
	// slack on the first slot.
	if elapsed := time.Since(start); elapsed < interval {
		t.Errorf("expected at least %s between paced frames, got %s", interval, elapsed)
	}
}

func TestPacerDisable(t *testing.T) {
	var p Pacer
	p.SetInterval(time.Second)
	p.SetInterval(0)

	start := time.Now()
	p.Wait()
	p.Wait()
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("expected disabled pacer to return immediately, took %s", elapsed)
	}
}
