// Package memory reads physical memory usage from the host.
package memory

// Collector reads used and total physical memory.
type Collector struct{}

// New creates a new memory collector.
func New() *Collector {
	return &Collector{}
}

// Name returns the collector name.
func (c *Collector) Name() string {
	return "Memory"
}

// Read is implemented in memory_linux.go and memory_darwin.go.
