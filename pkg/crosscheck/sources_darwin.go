//go:build darwin

package crosscheck

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// systemMemorySource derives memory usage from sysctl free page counts.
func systemMemorySource() (Source, error) {
	total, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return Source{}, err
	}
	if total == 0 {
		return Source{}, errors.New("hw.memsize is 0")
	}
	freePages, err := unix.SysctlUint32("vm.page_free_count")
	if err != nil {
		return Source{}, err
	}
	free := uint64(freePages) * uint64(unix.Getpagesize())
	used := total - min(total, free)
	return Source{
		Name:    "sysctl",
		Value:   float64(used) / float64(total) * 100,
		Unit:    "%",
		RawData: fmt.Sprintf("hw.memsize=%d free=%d", total, free),
	}, nil
}
