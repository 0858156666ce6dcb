// Package chart projects a series of percentage samples onto drawable
// coordinates.
package chart

import (
	"fmt"
	"strconv"
	"strings"
)

// PolicyKind selects how sample values are normalized.
type PolicyKind string

const (
	KindLinear        PolicyKind = "linear"
	KindWindowedClamp PolicyKind = "window"
)

// Policy maps a percentage onto [0, 1].
type Policy struct {
	Kind PolicyKind
	Low  float64
	High float64
}

// Linear maps [0, 100] onto [0, 1].
func Linear() Policy {
	return Policy{Kind: KindLinear, Low: 0, High: 100}
}

// WindowedClamp maps [low, high] onto [0, 1]. Values below low sit on the
// baseline, so a metric whose interesting range is the top of the scale
// uses the full height.
func WindowedClamp(low, high float64) Policy {
	return Policy{Kind: KindWindowedClamp, Low: low, High: high}
}

// Normalize returns the position of value in [0, 1].
func (p Policy) Normalize(value float64) float64 {
	switch p.Kind {
	case KindWindowedClamp:
		if p.High <= p.Low {
			// Degenerate window: a step at Low.
			if value < p.Low {
				return 0
			}
			return 1
		}
		return clamp01((value - p.Low) / (p.High - p.Low))
	default:
		return clamp01(value / 100)
	}
}

// String returns the policy in the form accepted by ParsePolicy.
func (p Policy) String() string {
	if p.Kind == KindWindowedClamp {
		return fmt.Sprintf("window:%s-%s", formatBound(p.Low), formatBound(p.High))
	}
	return string(KindLinear)
}

// ParsePolicy parses "linear" or "window:LOW-HIGH" (e.g. "window:80-100").
func ParsePolicy(s string) (Policy, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == string(KindLinear) {
		return Linear(), nil
	}

	rest, ok := strings.CutPrefix(s, string(KindWindowedClamp)+":")
	if !ok {
		return Policy{}, fmt.Errorf("unknown scaling policy %q", s)
	}

	lowStr, highStr, ok := strings.Cut(rest, "-")
	if !ok {
		return Policy{}, fmt.Errorf("window policy %q: expected LOW-HIGH", s)
	}
	low, err := strconv.ParseFloat(lowStr, 64)
	if err != nil {
		return Policy{}, fmt.Errorf("window policy %q: bad low bound: %w", s, err)
	}
	high, err := strconv.ParseFloat(highStr, 64)
	if err != nil {
		return Policy{}, fmt.Errorf("window policy %q: bad high bound: %w", s, err)
	}
	if high <= low {
		return Policy{}, fmt.Errorf("window policy %q: high must exceed low", s)
	}
	return WindowedClamp(low, high), nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func clamp01(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
