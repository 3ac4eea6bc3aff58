// Package schedule owns tick repetition for the hosts. The engine only says
// how long to wait; these types do the waiting.
package schedule

import "time"

// Accumulator converts the fixed updates of a frame-driven host into engine
// ticks. It is a one-shot timer: once it fires it stays quiet until Arm is
// called with the delay returned by the tick.
type Accumulator struct {
	elapsed time.Duration
	delay   time.Duration
	armed   bool
	paused  bool
}

func NewAccumulator(first time.Duration) *Accumulator {
	a := &Accumulator{}
	a.Arm(first)
	return a
}

// Arm schedules the next fire d after the previous one. Time left over from
// the last frame is kept so the average period matches d.
func (a *Accumulator) Arm(d time.Duration) {
	a.delay = d
	a.armed = true
}

// Advance adds dt of host time and reports whether a tick is due.
func (a *Accumulator) Advance(dt time.Duration) bool {
	if !a.armed || a.paused {
		return false
	}
	a.elapsed += dt
	if a.elapsed < a.delay {
		return false
	}
	a.elapsed -= a.delay
	if a.elapsed > a.delay {
		// A long stall never turns into a burst of ticks.
		a.elapsed = 0
	}
	a.armed = false
	return true
}

func (a *Accumulator) SetPaused(paused bool) {
	a.paused = paused
}

func (a *Accumulator) Paused() bool {
	return a.paused
}
