// Package monitor samples a metric source and keeps rolling CPU and RAM
// histories for chart rendering.
package monitor

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/danpilch/umdgraph/pkg/chart"
	"github.com/danpilch/umdgraph/pkg/history"
	"github.com/danpilch/umdgraph/pkg/metrics"
	"github.com/danpilch/umdgraph/pkg/usage"
)

// Metric identifies a tracked series.
type Metric string

const (
	CPU Metric = "CPU"
	RAM Metric = "RAM"
)

// Reading holds the most recently recorded values.
type Reading struct {
	CPU      float64 `json:"cpu"`
	RAM      float64 `json:"ram"`
	CPUReady bool    `json:"cpu_ready"`
	RAMReady bool    `json:"ram_ready"`
}

// Monitor owns one history buffer and one scaling policy per metric.
//
// Sample calls are serialized. History accessors may be called from any
// goroutine.
type Monitor struct {
	source metrics.Source
	logger *logrus.Logger

	sampleMu sync.Mutex
	calc     *usage.Calculator
	samples  uint64

	cpu       *history.Buffer
	ram       *history.Buffer
	cpuPolicy chart.Policy
	ramPolicy chart.Policy
}

// Option configures a Monitor.
type Option func(*options)

type options struct {
	capacity  int
	cpuPolicy chart.Policy
	ramPolicy chart.Policy
	logger    *logrus.Logger
}

// WithCapacity sets the number of samples kept per metric.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// WithCPUPolicy sets the scaling policy for the CPU chart.
func WithCPUPolicy(p chart.Policy) Option {
	return func(o *options) { o.cpuPolicy = p }
}

// WithRAMPolicy sets the scaling policy for the RAM chart.
func WithRAMPolicy(p chart.Policy) Option {
	return func(o *options) { o.ramPolicy = p }
}

// WithLogger sets the logger.
func WithLogger(l *logrus.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a Monitor reading from src. By default CPU is scaled linearly
// and RAM uses an 80-100% window.
func New(src metrics.Source, opts ...Option) *Monitor {
	o := options{
		capacity:  history.DefaultCapacity,
		cpuPolicy: chart.Linear(),
		ramPolicy: chart.WindowedClamp(80, 100),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logrus.New()
		o.logger.SetLevel(logrus.WarnLevel)
	}

	return &Monitor{
		source:    src,
		logger:    o.logger,
		calc:      usage.NewCalculator(),
		cpu:       history.New(o.capacity),
		ram:       history.New(o.capacity),
		cpuPolicy: o.cpuPolicy,
		ramPolicy: o.ramPolicy,
	}
}

// Sample reads the source once and records CPU and RAM usage.
//
// Nothing is recorded unless both reads succeed and are valid. The first
// successful call only seeds the CPU delta, so CPU history starts on the
// second call.
func (m *Monitor) Sample() error {
	m.sampleMu.Lock()
	defer m.sampleMu.Unlock()

	log := m.logger.WithField("source", m.source.Name())

	ticks, err := m.source.ReadCPUTicks()
	if err != nil {
		log.WithError(err).Warn("CPU read failed")
		return fmt.Errorf("read cpu ticks from %s: %w: %w", m.source.Name(), metrics.ErrSourceUnavailable, err)
	}

	mem, err := m.source.ReadMemory()
	if err != nil {
		log.WithError(err).Warn("Memory read failed")
		return fmt.Errorf("read memory from %s: %w: %w", m.source.Name(), metrics.ErrSourceUnavailable, err)
	}

	ramPct, err := usage.ComputeMemoryUsage(mem)
	if err != nil {
		log.WithError(err).Warn("Invalid memory reading")
		return fmt.Errorf("%s: %w", m.source.Name(), err)
	}

	cpuPct, cpuOK := m.calc.CPU(ticks)
	if cpuOK {
		m.cpu.Append(cpuPct)
	}
	m.ram.Append(ramPct)
	m.samples++

	log.WithFields(logrus.Fields{
		"cpu":       cpuPct,
		"cpu_ready": cpuOK,
		"ram":       ramPct,
		"sample":    m.samples,
	}).Debug("Sampled")

	return nil
}

// CPUHistory returns the CPU samples, oldest first.
func (m *Monitor) CPUHistory() []float64 {
	return m.cpu.Snapshot()
}

// RAMHistory returns the RAM samples, oldest first.
func (m *Monitor) RAMHistory() []float64 {
	return m.ram.Snapshot()
}

// History returns the samples for metric.
func (m *Monitor) History(metric Metric) []float64 {
	if metric == RAM {
		return m.RAMHistory()
	}
	return m.CPUHistory()
}

// CPUPolicy returns the CPU scaling policy.
func (m *Monitor) CPUPolicy() chart.Policy {
	return m.cpuPolicy
}

// RAMPolicy returns the RAM scaling policy.
func (m *Monitor) RAMPolicy() chart.Policy {
	return m.ramPolicy
}

// Policy returns the scaling policy for metric.
func (m *Monitor) Policy(metric Metric) chart.Policy {
	if metric == RAM {
		return m.ramPolicy
	}
	return m.cpuPolicy
}

// Points projects the history of metric onto a width x height area.
func (m *Monitor) Points(metric Metric, width, height float64) []chart.Point {
	return chart.Project(m.History(metric), m.Policy(metric), width, height)
}

// Latest returns the newest recorded values.
func (m *Monitor) Latest() Reading {
	var r Reading
	r.CPU, r.CPUReady = m.cpu.Last()
	r.RAM, r.RAMReady = m.ram.Last()
	return r
}

// Capacity returns the per-metric history capacity.
func (m *Monitor) Capacity() int {
	return m.cpu.Cap()
}

// Samples returns the number of successful Sample calls.
func (m *Monitor) Samples() uint64 {
	m.sampleMu.Lock()
	defer m.sampleMu.Unlock()
	return m.samples
}

// Source returns the underlying metric source.
func (m *Monitor) Source() metrics.Source {
	return m.source
}
