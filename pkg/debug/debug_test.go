package debug

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/danpilch/umdgraph/pkg/metrics"
)

type staticSource struct {
	ticks  metrics.CPUTicks
	mem    metrics.MemoryReading
	cpuErr error
	memErr error
}

func (s staticSource) Name() string { return "static" }

func (s staticSource) ReadCPUTicks() (metrics.CPUTicks, error) { return s.ticks, s.cpuErr }

func (s staticSource) ReadMemory() (metrics.MemoryReading, error) { return s.mem, s.memErr }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestTimedSource(t *testing.T) {
	src := staticSource{
		ticks: metrics.CPUTicks{User: 1, Idle: 2},
		mem:   metrics.MemoryReading{UsedBytes: 1, TotalBytes: 2},
	}
	timed := NewTimedSource(src)

	if timed.Name() != "static" {
		t.Errorf("Name() = %q", timed.Name())
	}
	for i := 0; i < 3; i++ {
		ticks, err := timed.ReadCPUTicks()
		if err != nil || ticks != src.ticks {
			t.Fatalf("ReadCPUTicks() = %+v, %v", ticks, err)
		}
	}
	if _, err := timed.ReadMemory(); err != nil {
		t.Fatal(err)
	}

	timings := timed.Timings()
	if len(timings) != 2 {
		t.Fatalf("Timings() len = %d", len(timings))
	}
	if timings[0].Name != "static.cpu" || timings[0].Count != 3 {
		t.Errorf("cpu timing = %+v", timings[0])
	}
	if timings[1].Name != "static.memory" || timings[1].Count != 1 {
		t.Errorf("memory timing = %+v", timings[1])
	}

	var buf bytes.Buffer
	TimingReport(&buf, timings)
	if !strings.Contains(buf.String(), "static.cpu") {
		t.Errorf("report missing cpu row:\n%s", buf.String())
	}
}

func TestReadTimingMean(t *testing.T) {
	var r ReadTiming
	if r.Mean() != 0 {
		t.Error("zero count mean should be 0")
	}
	r.observe(10)
	r.observe(30)
	if r.Mean() != 20 || r.Last != 30 {
		t.Errorf("mean = %v last = %v", r.Mean(), r.Last)
	}
}

func TestTracedSource(t *testing.T) {
	var buf bytes.Buffer
	trace := NewTraceLogger(&buf)
	src := NewTracedSource(staticSource{
		ticks:  metrics.CPUTicks{User: 7, Nice: 1, System: 2, Idle: 90},
		memErr: errors.New("meminfo missing"),
	}, trace, quietLogger())

	if _, err := src.ReadCPUTicks(); err != nil {
		t.Fatal(err)
	}
	if _, err := src.ReadMemory(); err == nil {
		t.Fatal("expected memory error to pass through")
	}

	out := buf.String()
	for _, want := range []string{"static: cpu - user=7 nice=1 system=2 idle=90", "static: memory - error: meminfo missing"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	trace.SetEnabled(false)
	_, _ = src.ReadCPUTicks()
	if buf.Len() != 0 {
		t.Errorf("disabled trace wrote %q", buf.String())
	}
}

func TestDumpReadings(t *testing.T) {
	var buf bytes.Buffer
	DumpReadings(&buf, []metrics.Source{
		staticSource{
			ticks: metrics.CPUTicks{User: 1, Idle: 3},
			mem:   metrics.MemoryReading{UsedBytes: 5, TotalBytes: 10},
		},
		staticSource{cpuErr: errors.New("no ticks"), memErr: errors.New("no memory")},
	})

	out := buf.String()
	for _, want := range []string{"total=4", "used=5 total=10", "no ticks", "no memory"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestStartPprofServer(t *testing.T) {
	stop, err := StartPprofServer("127.0.0.1:0", quietLogger())
	if err != nil {
		t.Fatalf("StartPprofServer: %v", err)
	}
	stop()
}
