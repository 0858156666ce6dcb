package benchmark

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/danpilch/umdgraph/pkg/metrics"
)

type fixedSource struct {
	name   string
	reads  int
	mem    metrics.MemoryReading
	failOn int
}

func (f *fixedSource) Name() string { return f.name }

func (f *fixedSource) ReadCPUTicks() (metrics.CPUTicks, error) {
	f.reads++
	if f.failOn > 0 && f.reads%f.failOn == 0 {
		return metrics.CPUTicks{}, errors.New("transient")
	}
	return metrics.CPUTicks{User: uint64(f.reads)}, nil
}

func (f *fixedSource) ReadMemory() (metrics.MemoryReading, error) {
	return f.mem, nil
}

func TestRun(t *testing.T) {
	ok := &fixedSource{name: "ok", mem: metrics.MemoryReading{UsedBytes: 1, TotalBytes: 2}}
	flaky := &fixedSource{name: "flaky", mem: metrics.MemoryReading{UsedBytes: 1, TotalBytes: 2}, failOn: 2}

	results := Run([]metrics.Source{ok, flaky}, Options{Iterations: 10, Warmup: 2})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if ok.reads != 12 {
		t.Errorf("expected 12 reads including warmup, got %d", ok.reads)
	}
	r := results[0]
	if r.Source != "ok" || len(r.Latencies) != 10 || r.Errors != 0 {
		t.Errorf("ok result = %+v", r)
	}
	if r.RAMStdDev != 0 {
		t.Errorf("constant memory should have zero stddev, got %v", r.RAMStdDev)
	}
	for i := 1; i < len(r.Latencies); i++ {
		if r.Latencies[i] < r.Latencies[i-1] {
			t.Fatal("latencies not sorted")
		}
	}
	if r.P50 > r.P95 || r.P95 > r.P99 {
		t.Errorf("percentiles out of order: %v %v %v", r.P50, r.P95, r.P99)
	}

	if results[1].Errors != 5 {
		t.Errorf("flaky errors = %d, want 5", results[1].Errors)
	}
}

func TestRunZeroIterations(t *testing.T) {
	results := Run([]metrics.Source{&fixedSource{name: "x", mem: metrics.MemoryReading{TotalBytes: 1}}}, Options{})
	if len(results[0].Latencies) != 1 {
		t.Errorf("expected at least one iteration, got %d", len(results[0].Latencies))
	}
}

func TestPercentile(t *testing.T) {
	sorted := []time.Duration{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	tests := []struct {
		p    float64
		want time.Duration
	}{
		{0.50, 5},
		{0.95, 10},
		{0.99, 10},
		{0, 1},
	}
	for _, tt := range tests {
		if got := percentile(sorted, tt.p); got != tt.want {
			t.Errorf("percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if percentile(nil, 0.5) != 0 {
		t.Error("empty percentile should be 0")
	}
}

func TestStddev(t *testing.T) {
	if got := stddev([]float64{2, 4, 4, 4, 5, 5, 7, 9}); got != 2 {
		t.Errorf("stddev = %v, want 2", got)
	}
	if stddev([]float64{1}) != 0 {
		t.Error("single value stddev should be 0")
	}
}

func TestOverheadSince(t *testing.T) {
	before := Overhead{AllocBytes: 100, AllocCount: 10, GCPauses: 1}
	after := Overhead{AllocBytes: 150, AllocCount: 12, GCPauses: 1}
	got := after.Since(before)
	if got != (Overhead{AllocBytes: 50, AllocCount: 2}) {
		t.Errorf("Since = %+v", got)
	}
}

func TestRenderResults(t *testing.T) {
	var buf bytes.Buffer
	RenderResults(&buf, []Result{{Source: "host", P50: time.Millisecond}}, Overhead{AllocBytes: 2048})
	out := buf.String()
	for _, want := range []string{"host", "1ms", "2.0 KB"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
