package debug

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danpilch/umdgraph/pkg/metrics"
)

// DumpReadings reads each source once and prints the raw counters. A failed
// read is shown in place of its values.
func DumpReadings(w io.Writer, sources []metrics.Source) {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, title.Render("Raw Readings Dump"))
	fmt.Fprintln(w, dim.Render(strings.Repeat("═", 85)))
	fmt.Fprintf(w, "  %s %s %s\n",
		header.Render("SOURCE      "),
		header.Render("READ    "),
		header.Render("VALUES                                           "))
	fmt.Fprintln(w, "  "+dim.Render(strings.Repeat("─", 85)))

	for _, src := range sources {
		ticks, err := src.ReadCPUTicks()
		if err != nil {
			fmt.Fprintf(w, "  %-14s %-10s %s\n", src.Name(), "cpu", dim.Render(err.Error()))
		} else {
			fmt.Fprintf(w, "  %-14s %-10s user=%d nice=%d system=%d idle=%d total=%d\n",
				src.Name(), "cpu", ticks.User, ticks.Nice, ticks.System, ticks.Idle, ticks.Total())
		}

		mem, err := src.ReadMemory()
		if err != nil {
			fmt.Fprintf(w, "  %-14s %-10s %s\n", src.Name(), "memory", dim.Render(err.Error()))
		} else {
			fmt.Fprintf(w, "  %-14s %-10s used=%d total=%d\n",
				src.Name(), "memory", mem.UsedBytes, mem.TotalBytes)
		}
	}
}
