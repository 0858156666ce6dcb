package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/danpilch/umdgraph/pkg/benchmark"
	"github.com/danpilch/umdgraph/pkg/collectors"
	"github.com/danpilch/umdgraph/pkg/crosscheck"
	"github.com/danpilch/umdgraph/pkg/debug"
	"github.com/danpilch/umdgraph/pkg/monitor"
	"github.com/danpilch/umdgraph/pkg/output"
	"github.com/danpilch/umdgraph/pkg/scheduler"
	"github.com/danpilch/umdgraph/pkg/tui"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Show live CPU and RAM charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			mon, err := a.newMonitor()
			if err != nil {
				return err
			}
			return tui.Run(mon, a.interval)
		},
	}
}

func newStreamCmd(a *app) *cobra.Command {
	var (
		format string
		count  int
		plot   bool
	)

	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Print a report after every sample",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Chart.Format
			}
			mon, err := a.newMonitor()
			if err != nil {
				return err
			}

			f := output.NewFormatter(output.Format(format), cmd.OutOrStdout())
			f.SetPlot(plot, a.cfg.Chart.Width, a.cfg.Chart.Height)

			s := scheduler.New(a.interval, mon, a.logger)
			s.Limit = count
			s.OnSample = func() {
				r := output.NewReport(mon, float64(a.cfg.Chart.Width), float64(a.cfg.Chart.Height))
				if err := f.Render(r); err != nil {
					a.logger.WithError(err).Error("Render failed")
				}
			}

			ctx, cancel := signalContext()
			defer cancel()
			return ignoreCanceled(s.Run(ctx))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table, json, tsv, plain)")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "stop after this many samples (0 = forever)")
	cmd.Flags().BoolVar(&plot, "plot", false, "draw character charts below the table")
	return cmd
}

func newOnceCmd(a *app) *cobra.Command {
	var (
		format string
		plot   bool
	)

	cmd := &cobra.Command{
		Use:   "once",
		Short: "Take two samples one interval apart and print a report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Chart.Format
			}
			mon, err := a.newMonitor()
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()
			if err := sampleTwice(ctx, mon, a.interval, a.logger); err != nil {
				return ignoreCanceled(err)
			}

			f := output.NewFormatter(output.Format(format), cmd.OutOrStdout())
			f.SetPlot(plot, a.cfg.Chart.Width, a.cfg.Chart.Height)
			return f.Render(output.NewReport(mon, float64(a.cfg.Chart.Width), float64(a.cfg.Chart.Height)))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table, json, tsv, plain)")
	cmd.Flags().BoolVar(&plot, "plot", false, "draw character charts below the table")
	return cmd
}

func newCrosscheckCmd(a *app) *cobra.Command {
	var (
		samples int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "crosscheck",
		Short: "Compare readings from every registered source",
		RunE: func(cmd *cobra.Command, args []string) error {
			mon, err := a.newMonitor()
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			s := scheduler.New(a.interval, mon, a.logger)
			s.Limit = samples
			if err := s.Run(ctx); err != nil {
				return ignoreCanceled(err)
			}

			validations, sanity, err := crosscheck.RunCrossChecks(ctx, a.allSources(), a.interval, mon)
			if err != nil {
				return ignoreCanceled(err)
			}
			if asJSON {
				return crosscheck.RenderJSON(cmd.OutOrStdout(), validations, sanity)
			}
			crosscheck.RenderReport(cmd.OutOrStdout(), validations, sanity)
			return nil
		},
	}

	cmd.Flags().IntVar(&samples, "samples", 3, "samples recorded before sanity checks")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

func newBenchCmd(a *app) *cobra.Command {
	opts := benchmark.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure read latency of every registered source",
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := a.allSources()
			before := benchmark.MeasureOverhead()
			results := benchmark.Run(sources, opts)
			overhead := benchmark.MeasureOverhead().Since(before)
			benchmark.RenderResults(cmd.OutOrStdout(), results, overhead)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Iterations, "iterations", opts.Iterations, "timed iterations per source")
	cmd.Flags().IntVar(&opts.Warmup, "warmup", opts.Warmup, "untimed iterations per source")
	return cmd
}

func newSourcesCmd(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List registered metric sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

			for _, name := range a.registry.Names() {
				line := "  " + name
				switch name {
				case a.cfg.Sampling.Source:
					line = active.Render("* " + name)
				case collectors.DefaultSource:
					line += " (default)"
				}
				fmt.Fprintln(w, line)
			}

			if raw {
				debug.DumpReadings(w, a.allSources())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "read each source once and dump raw counters")
	return cmd
}

// sampleTwice records two samples gap apart so CPU has one value. It
// returns an error only when the final sample failed; an earlier failure
// followed by a success still leaves a usable report.
func sampleTwice(ctx context.Context, mon *monitor.Monitor, gap time.Duration, logger *logrus.Logger) error {
	s := scheduler.New(gap, mon, logger)
	s.Limit = 2
	var lastErr error
	s.OnError = func(err error) { lastErr = err }
	s.OnSample = func() { lastErr = nil }
	if err := s.Run(ctx); err != nil {
		return err
	}
	return lastErr
}
