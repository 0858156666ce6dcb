// Package psutil implements a portable metrics.Source on top of gopsutil.
package psutil

import (
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/danpilch/umdgraph/pkg/metrics"
)

// Name is the registry name of this source.
const Name = "psutil"

// ticksPerSecond converts gopsutil's CPU seconds back to ticks.
const ticksPerSecond = 100

// Source reads CPU times and virtual memory through gopsutil.
type Source struct {
	times  func(percpu bool) ([]cpu.TimesStat, error)
	memory func() (*mem.VirtualMemoryStat, error)
}

// New creates a gopsutil-backed source.
func New() *Source {
	return &Source{
		times:  cpu.Times,
		memory: mem.VirtualMemory,
	}
}

// Name returns the source name.
func (s *Source) Name() string {
	return Name
}

// ReadCPUTicks returns aggregate CPU times as ticks.
func (s *Source) ReadCPUTicks() (metrics.CPUTicks, error) {
	stats, err := s.times(false)
	if err != nil {
		return metrics.CPUTicks{}, fmt.Errorf("cpu times: %w", err)
	}
	if len(stats) == 0 {
		return metrics.CPUTicks{}, fmt.Errorf("cpu times: no data")
	}

	st := stats[0]
	return metrics.CPUTicks{
		User:   toTicks(st.User),
		System: toTicks(st.System),
		Idle:   toTicks(st.Idle),
		Nice:   toTicks(st.Nice),
	}, nil
}

// ReadMemory returns used and total virtual memory.
func (s *Source) ReadMemory() (metrics.MemoryReading, error) {
	vm, err := s.memory()
	if err != nil {
		return metrics.MemoryReading{}, fmt.Errorf("virtual memory: %w", err)
	}
	return metrics.MemoryReading{
		UsedBytes:  vm.Used,
		TotalBytes: vm.Total,
	}, nil
}

func toTicks(seconds float64) uint64 {
	if seconds <= 0 {
		return 0
	}
	return uint64(math.Round(seconds * ticksPerSecond))
}
