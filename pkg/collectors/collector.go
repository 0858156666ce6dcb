// Package collectors provides the metric sources available to the sampler.
package collectors

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/danpilch/umdgraph/pkg/metrics"
)

// TickReader reads cumulative CPU ticks.
type TickReader interface {
	ReadTicks() (metrics.CPUTicks, error)
}

// MemoryReader reads memory usage.
type MemoryReader interface {
	Read() (metrics.MemoryReading, error)
}

// HostSource combines a CPU and a memory collector into a metrics.Source.
type HostSource struct {
	cpu TickReader
	mem MemoryReader
}

// NewHostSource creates a source from the given collectors.
func NewHostSource(cpu TickReader, mem MemoryReader) *HostSource {
	return &HostSource{cpu: cpu, mem: mem}
}

// Name returns the source name.
func (h *HostSource) Name() string {
	return "host"
}

// ReadCPUTicks implements metrics.Source.
func (h *HostSource) ReadCPUTicks() (metrics.CPUTicks, error) {
	return h.cpu.ReadTicks()
}

// ReadMemory implements metrics.Source.
func (h *HostSource) ReadMemory() (metrics.MemoryReading, error) {
	return h.mem.Read()
}

// Factory builds a metrics.Source.
type Factory func() (metrics.Source, error)

// Registry holds named source factories.
type Registry struct {
	factories map[string]Factory
	logger    *logrus.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *logrus.Logger) *Registry {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	return &Registry{
		factories: make(map[string]Factory),
		logger:    logger,
	}
}

// Register adds a factory under name, replacing any existing one.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Names returns the registered source names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup builds the source registered under name.
func (r *Registry) Lookup(name string) (metrics.Source, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown source %q (available: %v)", name, r.Names())
	}

	r.logger.WithField("source", name).Debug("Building source")
	src, err := f()
	if err != nil {
		return nil, fmt.Errorf("build source %q: %w", name, err)
	}
	return src, nil
}
