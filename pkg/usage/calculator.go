package usage

import "github.com/danpilch/umdgraph/pkg/metrics"

// Calculator threads the previous CPU tick snapshot between calls.
//
// The first snapshot only seeds the calculator: a delta against a zero
// snapshot is the average since boot, not the current load, so it is
// reported as not ok and callers must not display or record it.
type Calculator struct {
	previous metrics.CPUTicks
	primed   bool
}

// NewCalculator creates an unprimed calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Primed reports whether a previous snapshot has been recorded.
func (c *Calculator) Primed() bool {
	return c.primed
}

// Previous returns the last committed snapshot.
func (c *Calculator) Previous() metrics.CPUTicks {
	return c.previous
}

// Peek computes the usage for current without recording it.
// ok is false until the calculator has been primed.
func (c *Calculator) Peek(current metrics.CPUTicks) (percent float64, ok bool) {
	if !c.primed {
		return 0, false
	}
	percent, _ = ComputeCPUUsage(c.previous, current)
	return percent, true
}

// Commit records current as the previous snapshot for the next call.
func (c *Calculator) Commit(current metrics.CPUTicks) {
	c.previous = current
	c.primed = true
}

// CPU computes the usage for current and commits it.
func (c *Calculator) CPU(current metrics.CPUTicks) (float64, bool) {
	percent, ok := c.Peek(current)
	c.Commit(current)
	return percent, ok
}

// Reset forgets the previous snapshot.
func (c *Calculator) Reset() {
	c.previous = metrics.CPUTicks{}
	c.primed = false
}
