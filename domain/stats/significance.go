package stats

import (
	"fmt"
	"strconv"
)

// Marker is the fixed-threshold label attached to a p-value on reports.
type Marker string

const (
	MarkerHighlySignificant Marker = "***"
	MarkerVerySignificant   Marker = "**"
	MarkerSignificant       Marker = "*"
	MarkerNotSignificant    Marker = "not significant"
)

// Significance thresholds, strict upper bounds.
const (
	AlphaHigh     = 0.001
	AlphaVery     = 0.01
	AlphaStandard = 0.05
)

// MarkerFor maps a p-value onto its significance marker
func MarkerFor(p float64) Marker {
	switch {
	case p < AlphaHigh:
		return MarkerHighlySignificant
	case p < AlphaVery:
		return MarkerVerySignificant
	case p < AlphaStandard:
		return MarkerSignificant
	default:
		return MarkerNotSignificant
	}
}

// Significant reports whether the marker is one of the star levels
func (m Marker) Significant() bool {
	return m == MarkerHighlySignificant || m == MarkerVerySignificant || m == MarkerSignificant
}

// Short returns the compact form used in figure annotations and tables
func (m Marker) Short() string {
	if m == MarkerNotSignificant {
		return "n.s."
	}
	return string(m)
}

func (m Marker) String() string {
	return string(m)
}

// FormatPValue renders p the way figure annotations show it.
func FormatPValue(p float64) string {
	if p < AlphaHigh {
		return "p<0.001"
	}
	return fmt.Sprintf("p=%.3f", p)
}

// FormatFixed renders p with a fixed number of decimal places
func FormatFixed(p float64, places int) string {
	if places < 0 {
		places = 0
	}
	return strconv.FormatFloat(p, 'f', places, 64)
}
