package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/danpilch/umdgraph/pkg/metrics"
)

// TraceLogger provides step-by-step trace logging for source reads.
type TraceLogger struct {
	mu      sync.Mutex
	writer  io.Writer
	enabled bool
}

// NewTraceLogger creates a trace logger writing to the given writer.
// A nil writer means stderr.
func NewTraceLogger(w io.Writer) *TraceLogger {
	if w == nil {
		w = defaultTraceWriter()
	}
	return &TraceLogger{
		writer:  w,
		enabled: true,
	}
}

// SetEnabled turns trace output on or off.
func (t *TraceLogger) SetEnabled(on bool) {
	t.mu.Lock()
	t.enabled = on
	t.mu.Unlock()
}

// Log records a trace entry for a source step.
func (t *TraceLogger) Log(source, step, detail string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled {
		return
	}
	fmt.Fprintf(t.writer, "[TRACE %s] %s: %s - %s\n",
		time.Now().Format("15:04:05.000"), source, step, detail)
}

// TracedSource logs every read of the wrapped source.
type TracedSource struct {
	inner  metrics.Source
	trace  *TraceLogger
	logger *logrus.Logger
}

// NewTracedSource wraps src so each read is written to trace. Failed reads
// are also logged at debug level.
func NewTracedSource(src metrics.Source, trace *TraceLogger, logger *logrus.Logger) *TracedSource {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	return &TracedSource{inner: src, trace: trace, logger: logger}
}

// Name returns the wrapped source's name.
func (t *TracedSource) Name() string {
	return t.inner.Name()
}

// ReadCPUTicks traces a CPU tick read.
func (t *TracedSource) ReadCPUTicks() (metrics.CPUTicks, error) {
	ticks, err := t.inner.ReadCPUTicks()
	if err != nil {
		t.trace.Log(t.Name(), "cpu", "error: "+err.Error())
		t.logger.WithField("source", t.Name()).WithError(err).Debug("Traced CPU read failed")
		return ticks, err
	}
	t.trace.Log(t.Name(), "cpu", fmt.Sprintf("user=%d nice=%d system=%d idle=%d",
		ticks.User, ticks.Nice, ticks.System, ticks.Idle))
	return ticks, nil
}

// ReadMemory traces a memory read.
func (t *TracedSource) ReadMemory() (metrics.MemoryReading, error) {
	r, err := t.inner.ReadMemory()
	if err != nil {
		t.trace.Log(t.Name(), "memory", "error: "+err.Error())
		t.logger.WithField("source", t.Name()).WithError(err).Debug("Traced memory read failed")
		return r, err
	}
	t.trace.Log(t.Name(), "memory", fmt.Sprintf("used=%d total=%d", r.UsedBytes, r.TotalBytes))
	return r, nil
}

// defaultTraceWriter returns stderr for trace output.
func defaultTraceWriter() io.Writer {
	return os.Stderr
}
