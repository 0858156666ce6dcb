package output

import (
	"bytes"
	"encoding/json"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/danpilch/umdgraph/pkg/chart"
	"github.com/danpilch/umdgraph/pkg/metrics"
	"github.com/danpilch/umdgraph/pkg/monitor"
)

type stepSource struct {
	step uint64
}

func (s *stepSource) Name() string { return "step" }

func (s *stepSource) ReadCPUTicks() (metrics.CPUTicks, error) {
	s.step++
	// 45 busy ticks out of every 100.
	return metrics.CPUTicks{User: s.step * 30, System: s.step * 10, Idle: s.step * 55, Nice: s.step * 5}, nil
}

func (s *stepSource) ReadMemory() (metrics.MemoryReading, error) {
	return metrics.MemoryReading{UsedBytes: 3, TotalBytes: 4}, nil
}

func sampledMonitor(t *testing.T, n int) *monitor.Monitor {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	m := monitor.New(&stepSource{}, monitor.WithLogger(l))
	for i := 0; i < n; i++ {
		if err := m.Sample(); err != nil {
			t.Fatal(err)
		}
	}
	return m
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		want string
	}{
		{"CPU", 45, "CPU: 45%"},
		{"CPU", 44.5, "CPU: 45%"},
		{"RAM", 87.49, "RAM: 87%"},
		{"RAM", 100, "RAM: 100%"},
	}
	for _, tt := range tests {
		if got := Label(tt.name, tt.pct); got != tt.want {
			t.Errorf("Label(%q, %v) = %q, want %q", tt.name, tt.pct, got, tt.want)
		}
	}
	if got := Placeholder("CPU"); got != "CPU: Loading…" {
		t.Errorf("Placeholder = %q", got)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Errorf("Sparkline(nil) = %q", got)
	}
	got := Sparkline([]float64{0, 50, 100})
	if got != "▁▄█" {
		t.Errorf("Sparkline = %q, want ▁▄█", got)
	}
	// Fixed scale: a flat series is not stretched.
	if got := Sparkline([]float64{10, 10}); got != "▁▁" {
		t.Errorf("flat low series = %q", got)
	}
}

func TestPlotSeries(t *testing.T) {
	got := PlotSeries([]float64{0, 100}, chart.Linear(), 5, 3)
	want := []string{
		"    •",
		" ••• ",
		"•    ",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PlotSeries =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestPlotEmpty(t *testing.T) {
	got := PlotSeries([]float64{50}, chart.Linear(), 4, 2)
	want := []string{"    ", "    "}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("single sample should draw nothing, got %q", got)
	}
	if PlotSeries(nil, chart.Linear(), 0, 2) != nil {
		t.Error("zero columns should return nil")
	}
}

func TestPlotWindowBaseline(t *testing.T) {
	// Both samples below the window sit on the bottom row.
	got := PlotSeries([]float64{10, 70}, chart.WindowedClamp(80, 100), 3, 3)
	want := []string{"   ", "   ", "•••"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PlotSeries = %q, want %q", got, want)
	}
}

func TestNewReport(t *testing.T) {
	m := sampledMonitor(t, 3)
	r := NewReport(m, 10, 10)

	if r.Source != "step" || r.Samples != 3 || r.Capacity != 20 {
		t.Errorf("report header = %+v", r)
	}
	if len(r.Metrics) != 2 {
		t.Fatalf("metrics = %d, want 2", len(r.Metrics))
	}
	cpu, ram := r.Metrics[0], r.Metrics[1]
	if cpu.Name != "CPU" || !cpu.Ready || cpu.Current != 45 || len(cpu.History) != 2 {
		t.Errorf("cpu = %+v", cpu)
	}
	if len(cpu.Points) != 2 {
		t.Errorf("cpu points = %v", cpu.Points)
	}
	if ram.Name != "RAM" || ram.Current != 75 || ram.Policy != "window:80-100" || len(ram.History) != 3 {
		t.Errorf("ram = %+v", ram)
	}
}

func TestRenderFormats(t *testing.T) {
	m := sampledMonitor(t, 2)
	r := NewReport(m, 10, 10)

	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewFormatter(FormatPlain, &buf).Render(r); err != nil {
			t.Fatal(err)
		}
		if got := strings.TrimSpace(buf.String()); got != "CPU: 45%  RAM: 75%" {
			t.Errorf("plain = %q", got)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewFormatter(FormatJSON, &buf).Render(r); err != nil {
			t.Fatal(err)
		}
		var decoded Report
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Metrics[1].Current != 75 {
			t.Errorf("decoded = %+v", decoded.Metrics)
		}
	})

	t.Run("tsv", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewFormatter(FormatTSV, &buf).Render(r); err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 3 {
			t.Fatalf("tsv lines = %d", len(lines))
		}
		if !strings.HasPrefix(lines[1], "CPU\t45.0000\ttrue\tlinear\t1\t45.0") {
			t.Errorf("cpu line = %q", lines[1])
		}
	})

	t.Run("table with plot", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewFormatter(FormatTable, &buf)
		f.SetPlot(true, 20, 4)
		if err := f.Render(r); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		for _, want := range []string{"CPU: 45%", "RAM: 75%", "window:80-100", "TREND"} {
			if !strings.Contains(out, want) {
				t.Errorf("table output missing %q", want)
			}
		}
	})
}

func TestPlaceholderBeforeCPUReady(t *testing.T) {
	m := sampledMonitor(t, 1)
	r := NewReport(m, 10, 10)
	if got := r.Metrics[0].Text(); got != "CPU: Loading…" {
		t.Errorf("Text() = %q", got)
	}
}
