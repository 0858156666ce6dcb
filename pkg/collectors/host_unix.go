//go:build linux || darwin

package collectors

import (
	"github.com/danpilch/umdgraph/pkg/collectors/cpu"
	"github.com/danpilch/umdgraph/pkg/collectors/memory"
	"github.com/danpilch/umdgraph/pkg/metrics"
)

func registerHost(r *Registry) {
	r.Register(DefaultSource, func() (metrics.Source, error) {
		return NewHostSource(cpu.New(), memory.New()), nil
	})
}
