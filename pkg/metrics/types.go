// Package metrics defines the raw readings consumed by the sampler and the
// Source interface that platform collectors implement.
package metrics

import "errors"

var (
	// ErrSourceUnavailable is returned when a platform read fails.
	ErrSourceUnavailable = errors.New("metric source unavailable")

	// ErrInvalidSource is returned when a source produces a structurally
	// invalid reading, such as zero total memory.
	ErrInvalidSource = errors.New("invalid metric source reading")
)

// CPUTicks holds cumulative CPU tick counts since boot.
type CPUTicks struct {
	User   uint64 `json:"user"`
	System uint64 `json:"system"`
	Idle   uint64 `json:"idle"`
	Nice   uint64 `json:"nice"`
}

// Total returns total ticks.
func (t CPUTicks) Total() uint64 {
	return t.User + t.System + t.Idle + t.Nice
}

// Busy returns busy ticks.
func (t CPUTicks) Busy() uint64 {
	return t.User + t.System + t.Nice
}

// MemoryReading holds raw memory usage in bytes.
type MemoryReading struct {
	UsedBytes  uint64 `json:"used_bytes"`
	TotalBytes uint64 `json:"total_bytes"`
}

// Source is the interface platform metric providers implement.
// Both reads are fallible and callers must not assume success.
type Source interface {
	// Name returns a short identifier for the source (e.g., "host", "psutil").
	Name() string

	// ReadCPUTicks returns the current cumulative CPU tick counters.
	ReadCPUTicks() (CPUTicks, error)

	// ReadMemory returns the current memory usage.
	ReadMemory() (MemoryReading, error)
}
