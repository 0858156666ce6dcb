package crosscheck

import "fmt"

// SanityResult holds the outcome of a physical constraint check.
type SanityResult struct {
	Check   string `json:"check"`
	Passed  bool   `json:"passed"`
	Details string `json:"details"`
}

// RunSanityChecks validates recorded histories: every value is a
// percentage, neither history exceeds capacity, and CPU never holds more
// samples than RAM since its first sample only seeds the delta.
func RunSanityChecks(cpu, ram []float64, capacity int) []SanityResult {
	var results []SanityResult

	for _, series := range []struct {
		name   string
		values []float64
	}{{"CPU", cpu}, {"RAM", ram}} {
		results = append(results, rangeCheck(series.name, series.values))

		if capacity > 0 {
			results = append(results, SanityResult{
				Check:   fmt.Sprintf("%s history length", series.name),
				Passed:  len(series.values) <= capacity,
				Details: fmt.Sprintf("%d samples, capacity %d", len(series.values), capacity),
			})
		}
	}

	results = append(results, SanityResult{
		Check:   "CPU lags RAM",
		Passed:  len(cpu) <= len(ram),
		Details: fmt.Sprintf("cpu=%d ram=%d", len(cpu), len(ram)),
	})

	return results
}

func rangeCheck(name string, values []float64) SanityResult {
	check := fmt.Sprintf("%s utilization range", name)
	for i, v := range values {
		// NaN fails both comparisons.
		if !(v >= 0 && v <= 100) {
			return SanityResult{
				Check:   check,
				Passed:  false,
				Details: fmt.Sprintf("sample %d out of [0, 100]: %.2f", i, v),
			}
		}
	}
	return SanityResult{
		Check:   check,
		Passed:  true,
		Details: fmt.Sprintf("%d samples within [0, 100]", len(values)),
	}
}
