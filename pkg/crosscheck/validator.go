// Package crosscheck compares CPU and memory readings from several sources
// and sanity-checks recorded histories.
package crosscheck

import (
	"math"
	"slices"
)

// ValidationStatus indicates how well the sources agree.
type ValidationStatus string

const (
	StatusValid    ValidationStatus = "valid"
	StatusSuspect  ValidationStatus = "suspect"
	StatusConflict ValidationStatus = "conflict"
)

// Source is one source's reading of a metric, in percent.
type Source struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Unit    string  `json:"unit"`
	RawData string  `json:"raw,omitempty"`
}

// ValidationResult holds the cross-check outcome for a metric.
// MaxDeviation is the largest distance from Consensus in percentage points.
type ValidationResult struct {
	Metric       string           `json:"metric"`
	Sources      []Source         `json:"sources"`
	Consensus    float64          `json:"consensus"`
	MaxDeviation float64          `json:"max_deviation"`
	Status       ValidationStatus `json:"status"`
}

// Validator grades agreement between sources.
type Validator struct {
	SuspectPoints  float64 // deviation to mark suspect (default 5 points)
	ConflictPoints float64 // deviation to mark conflict (default 20 points)
}

// NewValidator creates a validator with default thresholds.
func NewValidator() *Validator {
	return &Validator{
		SuspectPoints:  5,
		ConflictPoints: 20,
	}
}

// CrossCheck takes the median of the sources as consensus and grades the
// largest absolute deviation from it. Readings are percentages, so 1% vs 2%
// on an idle host is one point apart and still valid.
func (v *Validator) CrossCheck(metric string, sources []Source) ValidationResult {
	result := ValidationResult{
		Metric:  metric,
		Sources: sources,
		Status:  StatusValid,
	}
	if len(sources) == 0 {
		return result
	}

	values := make([]float64, len(sources))
	for i, s := range sources {
		values[i] = s.Value
	}
	result.Consensus = median(values)

	for _, val := range values {
		result.MaxDeviation = math.Max(result.MaxDeviation, math.Abs(val-result.Consensus))
	}

	switch {
	case result.MaxDeviation >= v.ConflictPoints:
		result.Status = StatusConflict
	case result.MaxDeviation >= v.SuspectPoints:
		result.Status = StatusSuspect
	}
	return result
}

func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
