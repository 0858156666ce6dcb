// Package history provides a fixed-capacity rolling window of percentage samples.
package history

import (
	"sync"

	"github.com/danpilch/umdgraph/pkg/usage"
)

// DefaultCapacity is the number of samples kept when no capacity is given.
const DefaultCapacity = 20

// Buffer keeps the most recent samples of a metric, oldest first.
// Once full, each Append evicts the oldest sample.
type Buffer struct {
	mu    sync.RWMutex
	data  []float64
	head  int // next write position
	count int
}

// New creates a buffer holding up to capacity samples.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		data: make([]float64, capacity),
	}
}

// Append records a sample, clamped to [0, 100].
func (b *Buffer) Append(sample float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data[b.head] = usage.Clamp(sample)
	b.head = (b.head + 1) % len(b.data)
	if b.count < len(b.data) {
		b.count++
	}
}

// Snapshot returns a copy of the samples in oldest-to-newest order.
func (b *Buffer) Snapshot() []float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]float64, b.count)
	start := (b.head - b.count + len(b.data)) % len(b.data)
	for i := 0; i < b.count; i++ {
		result[i] = b.data[(start+i)%len(b.data)]
	}
	return result
}

// Last returns the newest sample, if any.
func (b *Buffer) Last() (float64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return 0, false
	}
	return b.data[(b.head-1+len(b.data))%len(b.data)], true
}

// Len returns the number of samples held.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int {
	return len(b.data)
}
