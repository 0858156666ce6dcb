package collectors

import (
	"errors"
	"reflect"
	"testing"

	"github.com/danpilch/umdgraph/pkg/metrics"
)

type fakeCPU struct {
	ticks metrics.CPUTicks
	err   error
}

func (f fakeCPU) ReadTicks() (metrics.CPUTicks, error) { return f.ticks, f.err }

type fakeMem struct {
	reading metrics.MemoryReading
	err     error
}

func (f fakeMem) Read() (metrics.MemoryReading, error) { return f.reading, f.err }

func TestHostSource(t *testing.T) {
	ticks := metrics.CPUTicks{User: 1, System: 2, Idle: 3, Nice: 4}
	reading := metrics.MemoryReading{UsedBytes: 5, TotalBytes: 10}
	src := NewHostSource(fakeCPU{ticks: ticks}, fakeMem{reading: reading})

	if src.Name() != "host" {
		t.Errorf("Name() = %q", src.Name())
	}
	if got, err := src.ReadCPUTicks(); err != nil || got != ticks {
		t.Errorf("ReadCPUTicks() = %+v, %v", got, err)
	}
	if got, err := src.ReadMemory(); err != nil || got != reading {
		t.Errorf("ReadMemory() = %+v, %v", got, err)
	}

	failing := NewHostSource(fakeCPU{err: errors.New("no /proc")}, fakeMem{})
	if _, err := failing.ReadCPUTicks(); err == nil {
		t.Error("expected CPU error")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(nil)
	r.Register("b", func() (metrics.Source, error) {
		return NewHostSource(fakeCPU{}, fakeMem{}), nil
	})
	r.Register("a", func() (metrics.Source, error) {
		return nil, errors.New("unsupported")
	})

	if got := r.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v", got)
	}
	if _, err := r.Lookup("b"); err != nil {
		t.Errorf("Lookup(b): %v", err)
	}
	if _, err := r.Lookup("a"); err == nil {
		t.Error("Lookup(a) should surface the factory error")
	}
	if _, err := r.Lookup("missing"); err == nil {
		t.Error("Lookup(missing) should fail")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry(nil)
	names := r.Names()
	for _, want := range []string{DefaultSource, "psutil"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("default registry missing %q: %v", want, names)
		}
	}
}
