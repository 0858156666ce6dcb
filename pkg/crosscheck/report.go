package crosscheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/danpilch/umdgraph/pkg/metrics"
	"github.com/danpilch/umdgraph/pkg/monitor"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	validStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	suspectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	conflictStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	passStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// RenderReport outputs cross-check validation results and sanity checks as a styled table.
func RenderReport(w io.Writer, validations []ValidationResult, sanity []SanityResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Cross-Check Validation Report"))
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("═", 60)))

	if len(validations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render("Metric Cross-Checks"))

		var rows [][]string
		for _, v := range validations {
			rows = append(rows, []string{v.Metric, fmt.Sprintf("%.1f%%", v.Consensus),
				fmt.Sprintf("%.1f%%", v.MaxDeviation), statusLabel(v.Status)})
			for _, src := range v.Sources {
				rows = append(rows, []string{"  " + src.Name, fmt.Sprintf("%.1f%s", src.Value, src.Unit), "", dimStyle.Render(src.RawData)})
			}
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(dimStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return lipgloss.NewStyle().Padding(0, 1)
			}).
			Headers("METRIC", "VALUE", "MAX DEV", "STATUS").
			Rows(rows...)
		fmt.Fprintln(w, t)
	}

	if len(sanity) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render("Sanity Checks"))
		failed := 0
		for _, s := range sanity {
			var icon string
			if s.Passed {
				icon = passStyle.Render("PASS")
			} else {
				icon = failStyle.Render("FAIL")
				failed++
			}
			fmt.Fprintf(w, "  [%s] %-40s %s\n", icon, s.Check, dimStyle.Render(s.Details))
		}
		fmt.Fprintln(w)
		if failed == 0 {
			fmt.Fprintf(w, "  %s\n", passStyle.Render(fmt.Sprintf("All %d sanity checks passed.", len(sanity))))
		} else {
			fmt.Fprintf(w, "  %s\n", failStyle.Render(fmt.Sprintf("%d of %d sanity checks failed.", failed, len(sanity))))
		}
	}
}

func statusLabel(s ValidationStatus) string {
	switch s {
	case StatusConflict:
		return conflictStyle.Render("CONFLICT")
	case StatusSuspect:
		return suspectStyle.Render("SUSPECT")
	default:
		return validStyle.Render("VALID")
	}
}

// RenderJSON outputs cross-check results as JSON.
func RenderJSON(w io.Writer, validations []ValidationResult, sanity []SanityResult) error {
	output := struct {
		Validations []ValidationResult `json:"validations"`
		Sanity      []SanityResult     `json:"sanity"`
	}{
		Validations: validations,
		Sanity:      sanity,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// RunCrossChecks compares every source's CPU and memory readings and runs
// sanity checks on the monitor's recorded histories.
func RunCrossChecks(ctx context.Context, sources []metrics.Source, interval time.Duration, mon *monitor.Monitor) ([]ValidationResult, []SanityResult, error) {
	validator := NewValidator()

	cpuSources, err := GetCPUSources(ctx, sources, interval)
	if err != nil {
		return nil, nil, err
	}
	memSources := GetMemorySources(sources)

	var validations []ValidationResult

	if len(cpuSources) > 0 {
		validations = append(validations, validator.CrossCheck("CPU Utilization", cpuSources))
	}
	if len(memSources) > 0 {
		validations = append(validations, validator.CrossCheck("Memory Utilization", memSources))
	}

	var sanity []SanityResult
	if mon != nil {
		sanity = RunSanityChecks(mon.CPUHistory(), mon.RAMHistory(), mon.Capacity())
	}

	return validations, sanity, nil
}
