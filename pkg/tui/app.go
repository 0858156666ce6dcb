// Package tui renders live CPU and RAM charts in the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/danpilch/umdgraph/pkg/monitor"
	"github.com/danpilch/umdgraph/pkg/output"
)

const (
	defaultChartCols = 40
	defaultChartRows = 8
)

// tickMsg fires on every refresh interval.
type tickMsg time.Time

// sampledMsg reports the result of one Monitor.Sample call.
type sampledMsg struct {
	err error
}

// Model is the Bubbletea model for the live chart view.
type Model struct {
	monitor  *monitor.Monitor
	interval time.Duration

	width  int
	height int

	lastErr     error
	lastUpdated time.Time
}

// NewModel returns a Model that samples mon every interval.
func NewModel(mon *monitor.Monitor, interval time.Duration) Model {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return Model{
		monitor:  mon,
		interval: interval,
	}
}

// Init samples once and starts the refresh timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.sample(), m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) sample() tea.Cmd {
	mon := m.monitor
	return func() tea.Msg {
		return sampledMsg{err: mon.Sample()}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Sample):
			return m, m.sample()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tea.Batch(m.sample(), m.tick())

	case sampledMsg:
		m.lastErr = msg.err
		if msg.err == nil {
			m.lastUpdated = time.Now()
		}
	}

	return m, nil
}

// View renders the CPU and RAM charts side by side, or stacked when the
// terminal is too narrow.
func (m Model) View() string {
	cols, rows := m.chartSize()

	cpu := m.renderChart(monitor.CPU, styleCPU, cols, rows)
	ram := m.renderChart(monitor.RAM, styleRAM, cols, rows)

	var body string
	if m.width > 0 && m.width < 2*(cols+4) {
		body = lipgloss.JoinVertical(lipgloss.Left, cpu, ram)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, cpu, "  ", ram)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter())
}

func (m Model) chartSize() (int, int) {
	cols, rows := defaultChartCols, defaultChartRows
	if m.width > 0 {
		if c := m.width/2 - 4; c >= 10 {
			cols = c
		}
	}
	if m.height > 0 {
		if r := m.height - 6; r >= 3 && r < rows {
			rows = r
		}
	}
	return cols, rows
}

func (m Model) renderChart(metric monitor.Metric, style lipgloss.Style, cols, rows int) string {
	title := output.Placeholder(string(metric))
	latest := m.monitor.Latest()
	switch {
	case metric == monitor.CPU && latest.CPUReady:
		title = output.Label(string(metric), latest.CPU)
	case metric == monitor.RAM && latest.RAMReady:
		title = output.Label(string(metric), latest.RAM)
	}

	lines := output.PlotSeries(m.monitor.History(metric), m.monitor.Policy(metric), cols, rows)
	chart := styleChart.Render(style.Render(strings.Join(lines, "\n")))

	return lipgloss.JoinVertical(lipgloss.Left, styleTitle.Inherit(style).Render(title), chart)
}

func (m Model) renderFooter() string {
	var help []string
	for _, b := range keys.ShortHelp() {
		h := b.Help()
		help = append(help, h.Key+": "+h.Desc)
	}
	footer := strings.Join(help, " | ")

	if !m.lastUpdated.IsZero() {
		footer += fmt.Sprintf("  Updated: %s", m.lastUpdated.Format("15:04:05"))
	}
	if m.lastErr != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			styleError.Render(m.lastErr.Error()),
			styleFooter.Render(footer))
	}
	return styleFooter.Render(footer)
}

// Run starts the TUI and blocks until the user quits.
func Run(mon *monitor.Monitor, interval time.Duration) error {
	p := tea.NewProgram(NewModel(mon, interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
