package debug

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/danpilch/umdgraph/pkg/metrics"
)

var (
	debugTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	debugHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	debugDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ReadTiming accumulates the latency of one kind of read.
type ReadTiming struct {
	Name  string
	Count int
	Total time.Duration
	Last  time.Duration
}

// Mean returns the average read duration.
func (r ReadTiming) Mean() time.Duration {
	if r.Count == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Count)
}

func (r *ReadTiming) observe(d time.Duration) {
	r.Count++
	r.Total += d
	r.Last = d
}

// TimedSource wraps a metrics.Source to record read durations.
type TimedSource struct {
	inner metrics.Source

	mu  sync.Mutex
	cpu ReadTiming
	mem ReadTiming
}

// NewTimedSource wraps a source with timing instrumentation.
func NewTimedSource(src metrics.Source) *TimedSource {
	return &TimedSource{
		inner: src,
		cpu:   ReadTiming{Name: src.Name() + ".cpu"},
		mem:   ReadTiming{Name: src.Name() + ".memory"},
	}
}

// Name returns the wrapped source's name.
func (t *TimedSource) Name() string {
	return t.inner.Name()
}

// ReadCPUTicks reads the wrapped source and records the duration.
func (t *TimedSource) ReadCPUTicks() (metrics.CPUTicks, error) {
	start := time.Now()
	ticks, err := t.inner.ReadCPUTicks()
	d := time.Since(start)

	t.mu.Lock()
	t.cpu.observe(d)
	t.mu.Unlock()
	return ticks, err
}

// ReadMemory reads the wrapped source and records the duration.
func (t *TimedSource) ReadMemory() (metrics.MemoryReading, error) {
	start := time.Now()
	r, err := t.inner.ReadMemory()
	d := time.Since(start)

	t.mu.Lock()
	t.mem.observe(d)
	t.mu.Unlock()
	return r, err
}

// Timings returns the CPU and memory read timings so far.
func (t *TimedSource) Timings() []ReadTiming {
	t.mu.Lock()
	defer t.mu.Unlock()
	return []ReadTiming{t.cpu, t.mem}
}

// TimingReport prints a styled timing summary.
func TimingReport(w io.Writer, timings []ReadTiming) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, debugTitle.Render("Source Timing Report"))
	fmt.Fprintln(w, debugDim.Render(strings.Repeat("═", 56)))
	fmt.Fprintf(w, "  %s  %s  %s\n",
		debugHeader.Render("READ                "),
		debugHeader.Render("COUNT  "),
		debugHeader.Render("MEAN        "))
	fmt.Fprintln(w, "  "+debugDim.Render(strings.Repeat("─", 56)))

	var total time.Duration
	for _, t := range timings {
		fmt.Fprintf(w, "  %-22s %-9d %v\n", t.Name, t.Count, t.Mean())
		total += t.Total
	}
	fmt.Fprintln(w, "  "+debugDim.Render(strings.Repeat("─", 56)))
	fmt.Fprintf(w, "  %-22s %-9s %v\n",
		lipgloss.NewStyle().Bold(true).Render("TOTAL"), "", total)
}
