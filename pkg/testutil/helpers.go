// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/revenuex/revenue-forecast/internal/simulation"
)

// RecordsFromCumulativeProfits builds a minimal monthly record sequence with
// the given cumulative profits, months numbered from 1.
func RecordsFromCumulativeProfits(cumulativeProfits ...float64) []simulation.MonthlyRecord {
	records := make([]simulation.MonthlyRecord, 0, len(cumulativeProfits))
	for i, cumulative := range cumulativeProfits {
		records = append(records, simulation.MonthlyRecord{
			Month:            i + 1,
			CumulativeProfit: cumulative,
		})
	}
	return records
}

// FindPlan finds a per-plan subscriber result by name.
// Returns a pointer to the entry if found, nil otherwise.
func FindPlan(plans []simulation.PlanSubscribers, name string) *simulation.PlanSubscribers {
	for i := range plans {
		if plans[i].Name == name {
			return &plans[i]
		}
	}
	return nil
}
