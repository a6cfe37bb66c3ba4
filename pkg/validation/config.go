// Package validation provides configuration validation utilities. Checks
// produce warnings rather than errors: the simulation engine is a total
// function over its inputs and degenerate values are accepted, not rejected.
package validation

import (
	"fmt"

	"github.com/revenuex/revenue-forecast/pkg/constants"
)

// Simulation carries the validation-relevant view of a simulation
// configuration, decoupled from the config package's concrete types.
type Simulation struct {
	PeriodMonths        int
	MonthlyGrowthRate   float64
	InitialUsers        float64
	ExchangeRate        float64
	PlanConversionTotal float64
	Amounts             []AmountInfo
	Rates               []RateInfo
}

// AmountInfo is one configured monetary amount.
type AmountInfo struct {
	Name   string
	Kind   string
	Amount float64
}

// RateInfo is one configured percentage rate.
type RateInfo struct {
	Name string
	Kind string
	Rate float64
}

// ValidateSimulation checks a simulation configuration and returns warnings
// for values that are arithmetically accepted but probably misconfigured.
func ValidateSimulation(sim Simulation) []string {
	var warnings []string

	if sim.PeriodMonths < 0 {
		warnings = append(warnings, fmt.Sprintf("Projection horizon is negative (%d months) - simulation output will be empty", sim.PeriodMonths))
	}
	if sim.PeriodMonths > constants.MaxReasonableHorizonMonths {
		warnings = append(warnings, fmt.Sprintf("Projection horizon of %d months exceeds %d - results this far out are rarely meaningful",
			sim.PeriodMonths, constants.MaxReasonableHorizonMonths))
	}
	if sim.InitialUsers < 0 {
		warnings = append(warnings, fmt.Sprintf("Initial user count is negative (%.0f) - user counts will be floored at 0", sim.InitialUsers))
	}
	if sim.ExchangeRate <= 0 {
		warnings = append(warnings, fmt.Sprintf("Exchange rate is not positive (%.4f) - converted amounts will be zero or negative", sim.ExchangeRate))
	}

	for _, amount := range sim.Amounts {
		if amount.Amount < 0 {
			warnings = append(warnings, fmt.Sprintf("%s '%s' has a negative amount (%.2f)",
				titleKind(amount.Kind), displayName(amount.Name), amount.Amount))
		}
	}

	for _, rate := range sim.Rates {
		if rate.Rate < 0 || rate.Rate > constants.PercentageMultiplier {
			warnings = append(warnings, fmt.Sprintf("%s for '%s' is outside 0-100 (%.2f%%)",
				titleKind(rate.Kind), displayName(rate.Name), rate.Rate))
		}
	}

	if sim.PlanConversionTotal > constants.PercentageMultiplier {
		warnings = append(warnings, fmt.Sprintf("Plan conversion rates sum to %.2f%% - each plan draws from the same new-user pool, so totals above 100%% mean users convert to multiple plans",
			sim.PlanConversionTotal))
	}

	return warnings
}

func displayName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}

func titleKind(kind string) string {
	if kind == "" {
		return "Item"
	}
	// Capitalize the first word only; kinds are short ASCII phrases.
	b := []byte(kind)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
