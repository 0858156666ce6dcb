//go:build linux

package memory

import (
	"strings"
	"testing"

	"github.com/danpilch/umdgraph/pkg/metrics"
)

func TestReadingFromMemInfo(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    metrics.MemoryReading
		wantErr bool
	}{
		{
			name: "mem available",
			input: `MemTotal:       16000000 kB
MemFree:         2000000 kB
MemAvailable:    4000000 kB
Buffers:          500000 kB
Cached:          3000000 kB
`,
			want: metrics.MemoryReading{UsedBytes: 12000000 * 1024, TotalBytes: 16000000 * 1024},
		},
		{
			name: "fallback without MemAvailable",
			input: `MemTotal:       1000 kB
MemFree:         100 kB
Buffers:          50 kB
Cached:          250 kB
`,
			want: metrics.MemoryReading{UsedBytes: 600 * 1024, TotalBytes: 1000 * 1024},
		},
		{
			name: "available above total",
			input: `MemTotal:       1000 kB
MemAvailable:   2000 kB
`,
			want: metrics.MemoryReading{UsedBytes: 0, TotalBytes: 1000 * 1024},
		},
		{
			name:    "missing MemTotal",
			input:   "MemAvailable:    4000000 kB\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := parseMemInfo(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("parseMemInfo: %v", err)
			}
			got, err := readingFromMemInfo(info)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("reading = %+v, want %+v", got, tt.want)
			}
		})
	}
}
