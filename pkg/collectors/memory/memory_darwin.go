//go:build darwin

package memory

import (
	"fmt"
	"unsafe"

	"github.com/danpilch/umdgraph/pkg/metrics"
)

/*
#include <stdlib.h>
#include <mach/mach.h>
#include <mach/mach_host.h>
#include <sys/sysctl.h>
*/
import "C"

// Read returns memory usage using sysctl hw.memsize and host_statistics64.
// Used memory counts active, inactive, wired and compressed pages.
func (c *Collector) Read() (metrics.MemoryReading, error) {
	var totalMem C.uint64_t
	size := C.size_t(unsafe.Sizeof(totalMem))
	name := C.CString("hw.memsize")
	defer C.free(unsafe.Pointer(name))

	if C.sysctlbyname(name, unsafe.Pointer(&totalMem), &size, nil, 0) != 0 {
		return metrics.MemoryReading{}, fmt.Errorf("failed to get hw.memsize")
	}

	var vmStats C.vm_statistics64_data_t
	count := C.mach_msg_type_number_t(C.HOST_VM_INFO64_COUNT)

	host := C.mach_host_self()
	ret := C.host_statistics64(host, C.HOST_VM_INFO64, (*C.integer_t)(unsafe.Pointer(&vmStats)), &count)
	if ret != C.KERN_SUCCESS {
		return metrics.MemoryReading{}, fmt.Errorf("host_statistics64 failed: %d", ret)
	}

	pageSize := uint64(C.vm_kernel_page_size)
	usedPages := uint64(vmStats.active_count) +
		uint64(vmStats.inactive_count) +
		uint64(vmStats.wire_count) +
		uint64(vmStats.compressor_page_count)

	return metrics.MemoryReading{
		UsedBytes:  usedPages * pageSize,
		TotalBytes: uint64(totalMem),
	}, nil
}
