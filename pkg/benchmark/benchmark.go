// Package benchmark measures how long each metric source takes to produce
// a full CPU and memory reading.
package benchmark

import (
	"fmt"
	"io"
	"math"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/danpilch/umdgraph/pkg/metrics"
	"github.com/danpilch/umdgraph/pkg/usage"
)

// Options configures a benchmark run.
type Options struct {
	Iterations int
	Warmup     int
}

// DefaultOptions returns sensible benchmark defaults.
func DefaultOptions() Options {
	return Options{
		Iterations: 20,
		Warmup:     3,
	}
}

// Result holds benchmark results for a single source.
type Result struct {
	Source    string
	Latencies []time.Duration
	P50       time.Duration
	P95       time.Duration
	P99       time.Duration
	Errors    int
	// RAMStdDev is the spread of memory usage across iterations.
	RAMStdDev float64
}

// Overhead holds the tool's own resource usage.
type Overhead struct {
	AllocBytes uint64
	AllocCount uint64
	GCPauses   uint32
}

var (
	bmTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	bmHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	bmDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Run times one ReadCPUTicks plus ReadMemory cycle per iteration for each
// source. Failed cycles are counted but still timed.
func Run(sources []metrics.Source, opts Options) []Result {
	if opts.Iterations < 1 {
		opts.Iterations = 1
	}
	var results []Result

	for _, src := range sources {
		// Warmup
		for i := 0; i < opts.Warmup; i++ {
			_, _ = readCycle(src)
		}

		latencies := make([]time.Duration, opts.Iterations)
		var values []float64
		errs := 0

		for i := 0; i < opts.Iterations; i++ {
			start := time.Now()
			pct, err := readCycle(src)
			latencies[i] = time.Since(start)

			if err != nil {
				errs++
				continue
			}
			values = append(values, pct)
		}

		// Sort latencies for percentile calculation
		sort.Slice(latencies, func(i, j int) bool {
			return latencies[i] < latencies[j]
		})

		results = append(results, Result{
			Source:    src.Name(),
			Latencies: latencies,
			P50:       percentile(latencies, 0.50),
			P95:       percentile(latencies, 0.95),
			P99:       percentile(latencies, 0.99),
			Errors:    errs,
			RAMStdDev: stddev(values),
		})
	}

	return results
}

// readCycle performs the reads of one Monitor.Sample and returns the
// memory usage percentage.
func readCycle(src metrics.Source) (float64, error) {
	if _, err := src.ReadCPUTicks(); err != nil {
		return 0, err
	}
	r, err := src.ReadMemory()
	if err != nil {
		return 0, err
	}
	return usage.ComputeMemoryUsage(r)
}

// MeasureOverhead returns cumulative allocation and GC counters. Subtract two
// readings with Since to get the cost of the work between them.
func MeasureOverhead() Overhead {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return Overhead{
		AllocBytes: m.TotalAlloc,
		AllocCount: m.Mallocs,
		GCPauses:   m.NumGC,
	}
}

// Since returns the counters accumulated after earlier was taken.
func (o Overhead) Since(earlier Overhead) Overhead {
	return Overhead{
		AllocBytes: o.AllocBytes - min(o.AllocBytes, earlier.AllocBytes),
		AllocCount: o.AllocCount - min(o.AllocCount, earlier.AllocCount),
		GCPauses:   o.GCPauses - min(o.GCPauses, earlier.GCPauses),
	}
}

// RenderResults outputs styled benchmark results.
func RenderResults(w io.Writer, results []Result, overhead Overhead) {
	fmt.Fprintln(w, bmTitle.Render("Source Benchmark Results"))
	fmt.Fprintln(w, bmDim.Render(strings.Repeat("═", 70)))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %s %s %s %s %s\n",
		bmHeader.Render("SOURCE             "),
		bmHeader.Render("P50        "),
		bmHeader.Render("P95        "),
		bmHeader.Render("P99        "),
		bmHeader.Render("ERRORS"),
		bmHeader.Render("RAM STDDEV"))
	fmt.Fprintln(w, "  "+bmDim.Render(strings.Repeat("─", 70)))

	for _, r := range results {
		fmt.Fprintf(w, "  %-20s %-12v %-12v %-12v %-8d %.4f\n",
			r.Source, r.P50, r.P95, r.P99, r.Errors, r.RAMStdDev)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, bmTitle.Render("Tool Overhead"))
	fmt.Fprintln(w, bmDim.Render(strings.Repeat("─", 40)))
	fmt.Fprintf(w, "  Memory allocated: %s\n", lipgloss.NewStyle().Bold(true).Render(formatBytes(overhead.AllocBytes)))
	fmt.Fprintf(w, "  Allocations:      %s\n", lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d", overhead.AllocCount)))
	fmt.Fprintf(w, "  GC pauses:        %s\n", lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d", overhead.GCPauses)))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum, sumSq float64
	for _, v := range values {
		sum += v
		sumSq += v * v
	}
	n := float64(len(values))
	mean := sum / n
	variance := (sumSq / n) - (mean * mean)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
