// Package pacer implements the frame pacing shared by the display backends.
//
// A display that sets a rate limit is expected to block inside its present
// call until the next frame slot; Pacer provides that blocking.
package pacer

import "time"

// Pacer rate-limits frame presentation. The zero value performs no pacing.
// Pacer is not safe for concurrent use; the draw loop is single-threaded.
type Pacer struct {
	interval time.Duration
	next     time.Time
}

// SetInterval sets the minimum interval between two Wait calls returning.
// An interval of zero or less disables pacing.
func (p *Pacer) SetInterval(interval time.Duration) {
	p.interval = interval
	p.next = time.Time{}
}

// Wait blocks until the next frame slot.
func (p *Pacer) Wait() {
	if p.interval <= 0 {
		return
	}

	now := time.Now()
	if p.next.IsZero() {
		p.next = now.Add(p.interval)
		return
	}

	if wait := p.next.Sub(now); wait > 0 {
		time.Sleep(wait)
		p.next = p.next.Add(p.interval)
		return
	}

	// The slot was missed; realign on the current time instead of
	// bursting to catch up.
	p.next = now.Add(p.interval)
}
