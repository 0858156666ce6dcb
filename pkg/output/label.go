package output

import (
	"fmt"

	"github.com/danpilch/umdgraph/pkg/usage"
)

// Label formats a metric value as "CPU: 45%".
func Label(name string, percent float64) string {
	return fmt.Sprintf("%s: %d%%", name, usage.Round(percent))
}

// Placeholder is shown until a metric has a value.
func Placeholder(name string) string {
	return name + ": Loading…"
}
