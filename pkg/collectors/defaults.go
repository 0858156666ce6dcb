package collectors

import (
	"github.com/sirupsen/logrus"

	"github.com/danpilch/umdgraph/pkg/collectors/psutil"
	"github.com/danpilch/umdgraph/pkg/metrics"
)

// DefaultSource is the source used when none is configured.
const DefaultSource = "host"

// DefaultRegistry returns a registry with every source supported on this
// platform.
func DefaultRegistry(logger *logrus.Logger) *Registry {
	r := NewRegistry(logger)
	r.Register(psutil.Name, func() (metrics.Source, error) {
		return psutil.New(), nil
	})
	registerHost(r)
	return r
}
