//go:build linux

package memory

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/danpilch/umdgraph/pkg/metrics"
)

const procMeminfo = "/proc/meminfo"

// Read returns memory usage from /proc/meminfo.
func (c *Collector) Read() (metrics.MemoryReading, error) {
	file, err := os.Open(procMeminfo)
	if err != nil {
		return metrics.MemoryReading{}, err
	}
	defer file.Close()

	info, err := parseMemInfo(file)
	if err != nil {
		return metrics.MemoryReading{}, fmt.Errorf("parse %s: %w", procMeminfo, err)
	}
	return readingFromMemInfo(info)
}

// parseMemInfo parses /proc/meminfo into a map of kB values.
func parseMemInfo(r io.Reader) (map[string]uint64, error) {
	info := make(map[string]uint64)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		key := strings.TrimSuffix(fields[0], ":")
		value, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}
		info[key] = value
	}

	return info, scanner.Err()
}

// readingFromMemInfo converts meminfo kB values to a byte reading.
func readingFromMemInfo(info map[string]uint64) (metrics.MemoryReading, error) {
	total, ok := info["MemTotal"]
	if !ok {
		return metrics.MemoryReading{}, fmt.Errorf("MemTotal not found in %s", procMeminfo)
	}

	// MemAvailable exists on Linux 3.14+.
	available, ok := info["MemAvailable"]
	if !ok {
		available = info["MemFree"] + info["Buffers"] + info["Cached"]
	}

	var used uint64
	if total > available {
		used = total - available
	}

	return metrics.MemoryReading{
		UsedBytes:  used * 1024,
		TotalBytes: total * 1024,
	}, nil
}
