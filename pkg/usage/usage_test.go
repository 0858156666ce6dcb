package usage

import (
	"errors"
	"math"
	"testing"

	"github.com/danpilch/umdgraph/pkg/metrics"
)

func TestComputeCPUUsage(t *testing.T) {
	base := metrics.CPUTicks{User: 1000, System: 500, Idle: 8000, Nice: 100}

	tests := []struct {
		name string
		prev metrics.CPUTicks
		cur  metrics.CPUTicks
		want float64
	}{
		{
			name: "mixed deltas",
			prev: base,
			cur:  metrics.CPUTicks{User: 1030, System: 510, Idle: 8055, Nice: 105},
			want: 45,
		},
		{
			name: "no elapsed ticks",
			prev: base,
			cur:  base,
			want: 0,
		},
		{
			name: "fully idle",
			prev: base,
			cur:  metrics.CPUTicks{User: 1000, System: 500, Idle: 8100, Nice: 100},
			want: 0,
		},
		{
			name: "fully busy",
			prev: base,
			cur:  metrics.CPUTicks{User: 1050, System: 550, Idle: 8000, Nice: 100},
			want: 100,
		},
		{
			name: "rounds half up",
			prev: metrics.CPUTicks{},
			cur:  metrics.CPUTicks{User: 1, Idle: 1},
			want: 50,
		},
		{
			name: "rounds to nearest",
			prev: metrics.CPUTicks{},
			cur:  metrics.CPUTicks{User: 2, Idle: 1},
			want: 67,
		},
		{
			name: "counter reset clamps delta to zero",
			prev: base,
			cur:  metrics.CPUTicks{User: 10, System: 520, Idle: 8020, Nice: 100},
			want: 50,
		},
		{
			name: "all counters reset",
			prev: base,
			cur:  metrics.CPUTicks{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, next := ComputeCPUUsage(tt.prev, tt.cur)
			if got != tt.want {
				t.Errorf("ComputeCPUUsage() = %v, want %v", got, tt.want)
			}
			if next != tt.cur {
				t.Errorf("next previous = %+v, want %+v", next, tt.cur)
			}
		})
	}
}

func TestComputeCPUUsageRange(t *testing.T) {
	// Monotonic sequences with uneven growth must always stay in [0, 100].
	prev := metrics.CPUTicks{}
	for i := uint64(1); i <= 200; i++ {
		cur := metrics.CPUTicks{
			User:   prev.User + i%7,
			System: prev.System + i%3,
			Idle:   prev.Idle + (i*13)%11,
			Nice:   prev.Nice + i%2,
		}
		got, next := ComputeCPUUsage(prev, cur)
		if got < 0 || got > 100 || math.IsNaN(got) {
			t.Fatalf("step %d: usage %v out of range", i, got)
		}
		prev = next
	}
}

func TestComputeMemoryUsage(t *testing.T) {
	tests := []struct {
		name    string
		reading metrics.MemoryReading
		want    float64
		wantErr error
	}{
		{
			name:    "half used",
			reading: metrics.MemoryReading{UsedBytes: 8_000_000_000, TotalBytes: 16_000_000_000},
			want:    50,
		},
		{
			name:    "nothing used",
			reading: metrics.MemoryReading{UsedBytes: 0, TotalBytes: 1024},
			want:    0,
		},
		{
			name:    "used exceeds total clamps",
			reading: metrics.MemoryReading{UsedBytes: 4096, TotalBytes: 1024},
			want:    100,
		},
		{
			name:    "zero total",
			reading: metrics.MemoryReading{UsedBytes: 10, TotalBytes: 0},
			wantErr: metrics.ErrInvalidSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeMemoryUsage(tt.reading)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ComputeMemoryUsage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoundMatchesCPURounding(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{44.5, 45},
		{44.49, 44},
		{0.4, 0},
		{99.5, 100},
		{-3, 0},
		{140, 100},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCalculator(t *testing.T) {
	c := NewCalculator()
	if c.Primed() {
		t.Fatal("new calculator should not be primed")
	}

	// A first snapshot far from zero would produce a since-boot average.
	first := metrics.CPUTicks{User: 900_000, System: 100_000, Idle: 10, Nice: 0}
	if _, ok := c.CPU(first); ok {
		t.Fatal("first sample should be suppressed")
	}
	if !c.Primed() {
		t.Fatal("calculator should be primed after first sample")
	}

	second := metrics.CPUTicks{User: 900_030, System: 100_010, Idle: 65, Nice: 5}
	pct, ok := c.Peek(second)
	if !ok || pct != 45 {
		t.Fatalf("Peek() = %v, %v; want 45, true", pct, ok)
	}
	if c.Previous() != first {
		t.Fatal("Peek must not commit")
	}

	pct, ok = c.CPU(second)
	if !ok || pct != 45 {
		t.Fatalf("CPU() = %v, %v; want 45, true", pct, ok)
	}
	if c.Previous() != second {
		t.Fatal("CPU must commit the current snapshot")
	}

	c.Reset()
	if c.Primed() {
		t.Fatal("Reset should unprime")
	}
}
