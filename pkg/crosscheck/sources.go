package crosscheck

import (
	"context"
	"fmt"
	"time"

	"github.com/danpilch/umdgraph/pkg/metrics"
	"github.com/danpilch/umdgraph/pkg/usage"
)

// GetCPUSources measures CPU busy percentage from every source over the
// same interval. Sources whose reads fail are left out.
func GetCPUSources(ctx context.Context, sources []metrics.Source, interval time.Duration) ([]Source, error) {
	before := make([]*metrics.CPUTicks, len(sources))
	for i, src := range sources {
		ticks, err := src.ReadCPUTicks()
		if err != nil {
			continue
		}
		before[i] = &ticks
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	var out []Source
	for i, src := range sources {
		if before[i] == nil {
			continue
		}
		after, err := src.ReadCPUTicks()
		if err != nil {
			continue
		}
		prev := *before[i]
		pct, _ := usage.ComputeCPUUsage(prev, after)
		out = append(out, Source{
			Name:    src.Name(),
			Value:   pct,
			Unit:    "%",
			RawData: fmt.Sprintf("before=%d/%d after=%d/%d", prev.Busy(), prev.Total(), after.Busy(), after.Total()),
		})
	}
	return out, nil
}

// GetMemorySources returns used memory percentage from every source plus
// any system call based reading the platform offers.
func GetMemorySources(sources []metrics.Source) []Source {
	var out []Source
	for _, src := range sources {
		r, err := src.ReadMemory()
		if err != nil {
			continue
		}
		pct, err := usage.ComputeMemoryUsage(r)
		if err != nil {
			continue
		}
		out = append(out, Source{
			Name:    src.Name(),
			Value:   pct,
			Unit:    "%",
			RawData: fmt.Sprintf("used=%d total=%d", r.UsedBytes, r.TotalBytes),
		})
	}

	if s, err := systemMemorySource(); err == nil {
		out = append(out, s)
	}
	return out
}
