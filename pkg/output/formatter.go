// Package output renders sampled metrics for terminals and machines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/danpilch/umdgraph/pkg/chart"
	"github.com/danpilch/umdgraph/pkg/monitor"
)

// Format represents the output format type.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatTSV   Format = "tsv"
	FormatPlain Format = "plain"
)

// MetricReport describes one tracked series.
type MetricReport struct {
	Name    string        `json:"name"`
	Current float64       `json:"current"`
	Ready   bool          `json:"ready"`
	Policy  string        `json:"policy"`
	History []float64     `json:"history"`
	Points  []chart.Point `json:"points"`

	policy chart.Policy
}

// Report is a point-in-time view of a Monitor.
type Report struct {
	Source    string         `json:"source"`
	Timestamp time.Time      `json:"timestamp"`
	Samples   uint64         `json:"samples"`
	Capacity  int            `json:"capacity"`
	Metrics   []MetricReport `json:"metrics"`
}

// NewReport captures the monitor's histories, projected onto a
// width x height area.
func NewReport(m *monitor.Monitor, width, height float64) Report {
	latest := m.Latest()
	r := Report{
		Source:    m.Source().Name(),
		Timestamp: time.Now(),
		Samples:   m.Samples(),
		Capacity:  m.Capacity(),
	}

	for _, metric := range []monitor.Metric{monitor.CPU, monitor.RAM} {
		hist := m.History(metric)
		policy := m.Policy(metric)
		mr := MetricReport{
			Name:    string(metric),
			Policy:  policy.String(),
			History: hist,
			Points:  chart.Project(hist, policy, width, height),
			policy:  policy,
		}
		if metric == monitor.CPU {
			mr.Current, mr.Ready = latest.CPU, latest.CPUReady
		} else {
			mr.Current, mr.Ready = latest.RAM, latest.RAMReady
		}
		r.Metrics = append(r.Metrics, mr)
	}
	return r
}

// Text returns the metric label, or a placeholder when no value exists yet.
func (mr MetricReport) Text() string {
	if !mr.Ready {
		return Placeholder(mr.Name)
	}
	return Label(mr.Name, mr.Current)
}

// Formatter handles output formatting.
type Formatter struct {
	format   Format
	writer   io.Writer
	showPlot bool
	cols     int
	rows     int
}

// NewFormatter creates a new formatter.
func NewFormatter(format Format, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
		cols:   50,
		rows:   8,
	}
}

// SetPlot enables character plots of cols x rows below the table.
func (f *Formatter) SetPlot(show bool, cols, rows int) {
	f.showPlot = show
	if cols > 0 {
		f.cols = cols
	}
	if rows > 0 {
		f.rows = rows
	}
}

// Render outputs the report in the configured format.
func (f *Formatter) Render(r Report) error {
	switch f.format {
	case FormatJSON:
		return f.renderJSON(r)
	case FormatTSV:
		return f.renderTSV(r)
	case FormatPlain:
		return f.renderPlain(r)
	default:
		return f.renderTable(r)
	}
}

// renderJSON outputs the report as a single JSON line.
func (f *Formatter) renderJSON(r Report) error {
	return json.NewEncoder(f.writer).Encode(r)
}

// metricStyles colors each series like the chart lines.
var metricStyles = map[string]lipgloss.Style{
	string(monitor.CPU): lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),  // Red
	string(monitor.RAM): lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true), // Green
}

// renderTable outputs the report as a styled table.
func (f *Formatter) renderTable(r Report) error {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)

	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	fmt.Fprintln(f.writer, titleStyle.Render(fmt.Sprintf("System Performance (%s)", r.Source)))
	fmt.Fprintln(f.writer, strings.Repeat("═", 60))
	fmt.Fprintln(f.writer)

	rows := make([][]string, len(r.Metrics))
	for i, m := range r.Metrics {
		rows[i] = []string{
			metricStyles[m.Name].Render(m.Text()),
			m.Policy,
			fmt.Sprintf("%d/%d", len(m.History), r.Capacity),
			Sparkline(m.History),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("VALUE", "SCALE", "SAMPLES", "TREND").
		Rows(rows...)

	fmt.Fprintln(f.writer, t)

	if f.showPlot {
		for _, m := range r.Metrics {
			fmt.Fprintln(f.writer)
			fmt.Fprintln(f.writer, metricStyles[m.Name].Render(m.Text()))
			f.renderPlot(m)
		}
	}
	return nil
}

func (f *Formatter) renderPlot(m MetricReport) {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))

	lines := PlotSeries(m.History, m.policy, f.cols, f.rows)
	fmt.Fprintln(f.writer, frame.Render(metricStyles[m.Name].Render(strings.Join(lines, "\n"))))
}

// renderTSV outputs one line per metric as tab-separated values.
func (f *Formatter) renderTSV(r Report) error {
	fmt.Fprintln(f.writer, "METRIC\tVALUE\tREADY\tPOLICY\tSAMPLES\tHISTORY")

	for _, m := range r.Metrics {
		hist := make([]string, len(m.History))
		for i, v := range m.History {
			hist[i] = fmt.Sprintf("%.1f", v)
		}
		fmt.Fprintf(f.writer, "%s\t%.4f\t%t\t%s\t%d\t%s\n",
			m.Name, m.Current, m.Ready, m.Policy, len(m.History), strings.Join(hist, ","))
	}
	return nil
}

// renderPlain outputs the labels on a single line.
func (f *Formatter) renderPlain(r Report) error {
	parts := make([]string, len(r.Metrics))
	for i, m := range r.Metrics {
		parts[i] = m.Text()
	}
	_, err := fmt.Fprintln(f.writer, strings.Join(parts, "  "))
	return err
}
