// Package usage converts raw CPU tick snapshots and memory readings into
// utilization percentages.
package usage

import (
	"fmt"
	"math"

	"github.com/danpilch/umdgraph/pkg/metrics"
)

// ComputeCPUUsage returns the busy percentage over the interval between two
// tick snapshots, rounded to a whole number, along with the snapshot to use
// as previous on the next call.
//
// A counter that went backwards contributes zero. If no ticks elapsed the
// result is 0.
func ComputeCPUUsage(previous, current metrics.CPUTicks) (float64, metrics.CPUTicks) {
	dUser := delta(previous.User, current.User)
	dSystem := delta(previous.System, current.System)
	dIdle := delta(previous.Idle, current.Idle)
	dNice := delta(previous.Nice, current.Nice)

	total := float64(dUser) + float64(dSystem) + float64(dIdle) + float64(dNice)
	if total == 0 {
		return 0, current
	}

	busy := float64(dUser) + float64(dSystem) + float64(dNice)
	return Clamp(math.Round(busy/total*100)), current
}

// ComputeMemoryUsage returns the used memory percentage, clamped to [0, 100].
func ComputeMemoryUsage(reading metrics.MemoryReading) (float64, error) {
	if reading.TotalBytes == 0 {
		return 0, fmt.Errorf("total memory is zero: %w", metrics.ErrInvalidSource)
	}
	return Clamp(float64(reading.UsedBytes) / float64(reading.TotalBytes) * 100), nil
}

// Round returns the integer percentage shown in labels. It uses the same
// rounding rule as ComputeCPUUsage.
func Round(percent float64) int {
	return int(math.Round(Clamp(percent)))
}

// Clamp limits a percentage to [0, 100]. NaN becomes 0.
func Clamp(percent float64) float64 {
	switch {
	case math.IsNaN(percent), percent < 0:
		return 0
	case percent > 100:
		return 100
	}
	return percent
}

func delta(prev, cur uint64) uint64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}
