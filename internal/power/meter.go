// internal/power/meter.go
package power

// Meter drives a node's construction or upgrade by drawing energy from a
// segment at a bounded rate. Draws happen at most once per Interval of
// simulated time, so a high tick rate never degenerates into micro-draws.
type Meter struct {
	Required float64
	MaxRate  float64
	Interval float64

	consumed  float64
	sinceDraw float64
}

// NewMeter creates a meter for a build needing required energy at up to
// maxRate per second.
func NewMeter(required, maxRate, interval float64) *Meter {
	return &Meter{Required: required, MaxRate: maxRate, Interval: interval}
}

// Consumed returns the energy drawn so far. Never exceeds Required.
func (m *Meter) Consumed() float64 {
	return m.consumed
}

// Remaining returns the energy still to be drawn.
func (m *Meter) Remaining() float64 {
	return m.Required - m.consumed
}

// Progress returns completion in [0,1]. A build requiring no energy is
// complete by definition.
func (m *Meter) Progress() float64 {
	if m.Required <= 0 {
		return 1.0
	}
	return m.consumed / m.Required
}

// Done reports whether the full energy requirement has been drawn.
func (m *Meter) Done() bool {
	return m.Progress() >= 1.0
}

// Advance accumulates dt of simulated time and, once Interval has elapsed,
// attempts one draw through consume. A failed draw leaves the meter
// unchanged apart from resetting the interval timer; it retries on the
// next elapsed interval. Returns whether the build is complete and whether
// this call was starved of energy.
func (m *Meter) Advance(dt float64, consume func(amount float64) bool) (done, starved bool) {
	if m.Done() {
		return true, false
	}
	m.sinceDraw += dt
	if m.sinceDraw < m.Interval {
		return false, false
	}
	elapsed := m.sinceDraw
	m.sinceDraw = 0

	toConsume := m.MaxRate * elapsed
	if remaining := m.Remaining(); toConsume > remaining {
		toConsume = remaining
	}
	if toConsume <= 0 {
		return m.Done(), false
	}
	if !consume(toConsume) {
		return false, true
	}
	m.consumed += toConsume
	return m.Done(), false
}
