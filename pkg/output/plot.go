package output

import (
	"math"
	"strings"

	"github.com/danpilch/umdgraph/pkg/chart"
)

const (
	plotDot   = '•'
	plotBlank = ' '
)

// PlotSeries projects samples onto a cols x rows character grid and draws
// them with Plot.
func PlotSeries(samples []float64, policy chart.Policy, cols, rows int) []string {
	if cols < 1 || rows < 1 {
		return nil
	}
	points := chart.Project(samples, policy, float64(cols-1), float64(rows-1))
	return Plot(points, cols, rows)
}

// Plot rasterizes projected points onto a grid. Points are expected in
// [0, cols-1] x [0, rows-1] with y growing upward; row 0 of the result is
// the top line. Columns between two points are filled by linear
// interpolation so the series reads as a continuous line.
func Plot(points []chart.Point, cols, rows int) []string {
	if cols < 1 || rows < 1 {
		return nil
	}

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(string(plotBlank), cols))
	}

	set := func(x, y float64) {
		col := int(math.Round(x))
		row := rows - 1 - int(math.Round(y))
		if col < 0 || col >= cols || row < 0 || row >= rows {
			return
		}
		grid[row][col] = plotDot
	}

	for i, p := range points {
		set(p.X, p.Y)
		if i == 0 {
			continue
		}
		prev := points[i-1]
		if p.X == prev.X {
			continue
		}
		start := int(math.Ceil(prev.X))
		end := int(math.Floor(p.X))
		for col := start; col <= end; col++ {
			t := (float64(col) - prev.X) / (p.X - prev.X)
			set(float64(col), prev.Y+t*(p.Y-prev.Y))
		}
	}

	lines := make([]string, rows)
	for r, row := range grid {
		lines[r] = string(row)
	}
	return lines
}
