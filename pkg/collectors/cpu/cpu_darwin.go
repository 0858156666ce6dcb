//go:build darwin

package cpu

import (
	"fmt"
	"unsafe"

	"github.com/danpilch/umdgraph/pkg/metrics"
)

/*
#include <mach/mach.h>
#include <mach/mach_host.h>
*/
import "C"

// ReadTicks reads host-wide CPU load ticks using Mach host_statistics.
func (c *Collector) ReadTicks() (metrics.CPUTicks, error) {
	var (
		info  C.host_cpu_load_info_data_t
		count = C.mach_msg_type_number_t(C.HOST_CPU_LOAD_INFO_COUNT)
	)

	host := C.mach_host_self()
	ret := C.host_statistics(host, C.HOST_CPU_LOAD_INFO, (*C.integer_t)(unsafe.Pointer(&info)), &count)
	if ret != C.KERN_SUCCESS {
		return metrics.CPUTicks{}, fmt.Errorf("host_statistics failed: %d", ret)
	}

	return metrics.CPUTicks{
		User:   uint64(info.cpu_ticks[C.CPU_STATE_USER]),
		System: uint64(info.cpu_ticks[C.CPU_STATE_SYSTEM]),
		Idle:   uint64(info.cpu_ticks[C.CPU_STATE_IDLE]),
		Nice:   uint64(info.cpu_ticks[C.CPU_STATE_NICE]),
	}, nil
}
