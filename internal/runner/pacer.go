package runner

import "time"

// DefaultMaxCatchUp bounds how many ticks a single Advance may return after a
// stall, so a suspended driver does not fast-forward through a whole run.
const DefaultMaxCatchUp = 5

// Pacer converts wall-clock time into a whole number of fixed simulation
// steps. Gameplay speed then depends on the tick rate, not on how often the
// driver happens to wake up.
type Pacer struct {
	step       time.Duration
	maxCatchUp int
	acc        time.Duration
	last       time.Time
}

// NewPacer creates a pacer for tickRate steps per second.
// A non-positive rate falls back to 60.
func NewPacer(tickRate int) *Pacer {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Pacer{
		step:       time.Second / time.Duration(tickRate),
		maxCatchUp: DefaultMaxCatchUp,
	}
}

// SetMaxCatchUp changes the per-call step cap. Values below 1 are ignored.
func (p *Pacer) SetMaxCatchUp(n int) {
	if n >= 1 {
		p.maxCatchUp = n
	}
}

// Step returns the fixed step duration.
func (p *Pacer) Step() time.Duration {
	return p.step
}

// Reset forgets accumulated time. The next Advance starts a fresh interval.
func (p *Pacer) Reset() {
	p.acc = 0
	p.last = time.Time{}
}

// Advance records that the clock reached now and returns how many steps to
// run. The first call only anchors the clock and returns 1 so a driver always
// shows movement on its first frame.
func (p *Pacer) Advance(now time.Time) int {
	if p.last.IsZero() {
		p.last = now
		return 1
	}

	elapsed := now.Sub(p.last)
	p.last = now
	if elapsed < 0 {
		return 0
	}

	p.acc += elapsed
	n := int(p.acc / p.step)
	p.acc -= time.Duration(n) * p.step

	if n > p.maxCatchUp {
		n = p.maxCatchUp
		p.acc = 0
	}
	return n
}
