//go:build linux

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/danpilch/umdgraph/pkg/metrics"
)

const procStat = "/proc/stat"

// ReadTicks reads the aggregate cpu line from /proc/stat.
func (c *Collector) ReadTicks() (metrics.CPUTicks, error) {
	file, err := os.Open(procStat)
	if err != nil {
		return metrics.CPUTicks{}, err
	}
	defer file.Close()

	return parseProcStat(file)
}

// parseProcStat extracts user, nice, system and idle from the "cpu " line.
// Format: cpu  user nice system idle iowait irq softirq steal ...
func parseProcStat(r io.Reader) (metrics.CPUTicks, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			return metrics.CPUTicks{}, fmt.Errorf("unexpected %s format: %q", procStat, line)
		}

		var vals [4]uint64
		for i := range vals {
			v, err := strconv.ParseUint(fields[i+1], 10, 64)
			if err != nil {
				return metrics.CPUTicks{}, fmt.Errorf("parse %s field %d: %w", procStat, i+1, err)
			}
			vals[i] = v
		}

		return metrics.CPUTicks{
			User:   vals[0],
			Nice:   vals[1],
			System: vals[2],
			Idle:   vals[3],
		}, nil
	}
	if err := scanner.Err(); err != nil {
		return metrics.CPUTicks{}, err
	}

	return metrics.CPUTicks{}, fmt.Errorf("cpu line not found in %s", procStat)
}
