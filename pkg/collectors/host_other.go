//go:build !linux && !darwin

package collectors

import "github.com/danpilch/umdgraph/pkg/collectors/psutil"

// Without native collectors the default name resolves to gopsutil.
func registerHost(r *Registry) {
	r.Register(DefaultSource, r.factories[psutil.Name])
}
