//go:build linux

package crosscheck

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// systemMemorySource reads memory usage from the sysinfo syscall.
func systemMemorySource() (Source, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return Source{}, err
	}
	unit := uint64(info.Unit)
	total := uint64(info.Totalram) * unit
	free := uint64(info.Freeram) * unit
	buffers := uint64(info.Bufferram) * unit

	if total == 0 {
		return Source{}, errors.New("total RAM is 0")
	}
	used := total - min(total, free+buffers)
	return Source{
		Name:    "sysinfo",
		Value:   float64(used) / float64(total) * 100,
		Unit:    "%",
		RawData: fmt.Sprintf("total=%d free=%d buffers=%d", total, free, buffers),
	}, nil
}
