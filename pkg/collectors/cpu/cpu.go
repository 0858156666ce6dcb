// Package cpu reads cumulative CPU tick counters from the host.
package cpu

// Collector reads aggregate CPU ticks across all cores.
type Collector struct{}

// New creates a new CPU collector.
func New() *Collector {
	return &Collector{}
}

// Name returns the collector name.
func (c *Collector) Name() string {
	return "CPU"
}

// ReadTicks is implemented in cpu_linux.go and cpu_darwin.go.
