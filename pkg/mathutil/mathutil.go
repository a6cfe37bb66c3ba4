// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/revenuex/revenue-forecast/pkg/constants"
)

// RoundLedger rounds a value to the nearest whole ledger-currency unit.
// Rounding is applied once, to final aggregated figures, never to
// intermediate per-item values.
func RoundLedger(val float64) float64 {
	return math.Round(val)
}

// FloorZero clamps a value to be non-negative.
func FloorZero(val float64) float64 {
	if val < 0 {
		return 0
	}
	return val
}

// ApplyPercentage applies a percentage (0-100 scale) to a value.
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}
