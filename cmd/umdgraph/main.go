// Command umdgraph samples CPU and memory usage and charts the recent history.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/danpilch/umdgraph/pkg/collectors"
	"github.com/danpilch/umdgraph/pkg/config"
	"github.com/danpilch/umdgraph/pkg/debug"
	"github.com/danpilch/umdgraph/pkg/metrics"
	"github.com/danpilch/umdgraph/pkg/monitor"
)

// app holds state shared by all subcommands once flags are parsed.
type app struct {
	configPath string
	pprofAddr  string
	trace      bool
	timing     bool

	cfg      *config.Config
	logger   *logrus.Logger
	registry *collectors.Registry
	interval time.Duration

	timed     []*debug.TimedSource
	stopPprof func()
	errOut    io.Writer
}

func main() {
	root, a := newRootCmd()
	if err := run(root, a); err != nil {
		os.Exit(1)
	}
}

// run executes root and always tears down, since cobra skips post-run hooks
// when a command fails.
func run(root *cobra.Command, a *app) error {
	defer a.teardown()
	return root.Execute()
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{errOut: os.Stderr}

	root := &cobra.Command{
		Use:          "umdgraph",
		Short:        "Chart CPU and memory usage in the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.errOut = cmd.ErrOrStderr()
			return a.setup(cmd)
		},
	}

	def := config.Default()
	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", config.DefaultPath(), "config file path")
	f.String("source", def.Sampling.Source, "metric source (see 'umdgraph sources')")
	f.String("interval", def.Sampling.Interval, "time between samples")
	f.Int("capacity", def.Sampling.Capacity, "samples kept per metric")
	f.String("cpu-policy", def.Chart.CPUPolicy, "CPU chart scaling: linear or window:LOW-HIGH")
	f.String("ram-policy", def.Chart.RAMPolicy, "RAM chart scaling: linear or window:LOW-HIGH")
	f.String("log-level", def.Log.Level, "log level (debug, info, warn, error)")
	f.String("log-format", def.Log.Format, "log format (text, json)")
	f.StringVar(&a.pprofAddr, "pprof", "", "serve pprof on this address")
	f.BoolVar(&a.trace, "trace", false, "trace every source read to stderr")
	f.BoolVar(&a.timing, "timing", false, "print source read timings on exit")

	root.AddCommand(
		newWatchCmd(a),
		newStreamCmd(a),
		newOnceCmd(a),
		newCrosscheckCmd(a),
		newBenchCmd(a),
		newSourcesCmd(a),
	)
	return root, a
}

// setup loads config from file, .env, environment and flags, in increasing
// precedence.
func (a *app) setup(cmd *cobra.Command) error {
	config.LoadEnvFiles()

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	interval, err := cfg.IntervalDuration()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.interval = interval
	a.registry = collectors.DefaultRegistry(logger)

	if a.pprofAddr != "" {
		stop, err := debug.StartPprofServer(a.pprofAddr, logger)
		if err != nil {
			return err
		}
		a.stopPprof = stop
	}

	logger.WithFields(logrus.Fields{
		"source":   cfg.Sampling.Source,
		"interval": interval,
		"capacity": cfg.Sampling.Capacity,
	}).Debug("Configured")
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	var err error
	str := func(name string, dst *string) {
		if err == nil && f.Changed(name) {
			*dst, err = f.GetString(name)
		}
	}
	str("source", &cfg.Sampling.Source)
	str("interval", &cfg.Sampling.Interval)
	str("cpu-policy", &cfg.Chart.CPUPolicy)
	str("ram-policy", &cfg.Chart.RAMPolicy)
	str("log-level", &cfg.Log.Level)
	str("log-format", &cfg.Log.Format)
	if err == nil && f.Changed("capacity") {
		cfg.Sampling.Capacity, err = f.GetInt("capacity")
	}
	return err
}

// teardown prints read timings and stops the pprof server. It is safe to
// call more than once.
func (a *app) teardown() {
	if a.timing && len(a.timed) > 0 {
		var timings []debug.ReadTiming
		for _, t := range a.timed {
			timings = append(timings, t.Timings()...)
		}
		debug.TimingReport(a.errOut, timings)
		a.timed = nil
	}
	if a.stopPprof != nil {
		a.stopPprof()
		a.stopPprof = nil
	}
}

// source looks up name and applies the --trace and --timing wrappers.
func (a *app) source(name string) (metrics.Source, error) {
	src, err := a.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	if a.trace {
		src = debug.NewTracedSource(src, debug.NewTraceLogger(os.Stderr), a.logger)
	}
	if a.timing {
		timed := debug.NewTimedSource(src)
		a.timed = append(a.timed, timed)
		src = timed
	}
	return src, nil
}

// allSources returns every registered source that can be constructed.
func (a *app) allSources() []metrics.Source {
	var out []metrics.Source
	for _, name := range a.registry.Names() {
		src, err := a.source(name)
		if err != nil {
			a.logger.WithField("source", name).WithError(err).Warn("Skipping source")
			continue
		}
		out = append(out, src)
	}
	return out
}

func (a *app) newMonitor() (*monitor.Monitor, error) {
	src, err := a.source(a.cfg.Sampling.Source)
	if err != nil {
		return nil, err
	}
	cpuPolicy, ramPolicy, err := a.cfg.Policies()
	if err != nil {
		return nil, err
	}
	return monitor.New(src,
		monitor.WithCapacity(a.cfg.Sampling.Capacity),
		monitor.WithCPUPolicy(cpuPolicy),
		monitor.WithRAMPolicy(ramPolicy),
		monitor.WithLogger(a.logger),
	), nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// ignoreCanceled treats an interrupted run as a clean exit.
func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
