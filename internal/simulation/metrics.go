package simulation

// Derived metrics over a finished sequence of monthly records. All functions
// here are stateless and side-effect-free; the ok result is false when the
// metric has no answer for the given sequence.

import (
	"fmt"

	"github.com/revenuex/revenue-forecast/internal/config"
	"github.com/revenuex/revenue-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// BreakEvenMonth returns the (possibly fractional) month at which cumulative
// profit first crosses from non-positive to positive, found by linear
// interpolation across the crossing pair. Only the first crossing counts,
// even if cumulative profit later dips negative again. A first month that is
// already profitable breaks even at month 1.
func BreakEvenMonth(records []MonthlyRecord) (float64, bool) {
	if len(records) == 0 {
		return 0, false
	}

	if records[0].CumulativeProfit > 0 {
		return 1, true
	}

	for i := 1; i < len(records); i++ {
		prev := records[i-1]
		curr := records[i]
		if prev.CumulativeProfit <= 0 && curr.CumulativeProfit > 0 {
			// The crossing condition guarantees a strictly positive
			// denominator, so no divide-by-zero case exists here.
			delta := curr.CumulativeProfit - prev.CumulativeProfit
			return float64(prev.Month) + (-prev.CumulativeProfit)/delta, true
		}
	}

	return 0, false
}

// MaxCumulativeDeficit returns the minimum cumulative profit across all
// records. Despite the name this is the minimum even when always positive;
// callers interpret the sign.
func MaxCumulativeDeficit(records []MonthlyRecord) (float64, bool) {
	if len(records) == 0 {
		return 0, false
	}

	deficit := records[0].CumulativeProfit
	for _, record := range records[1:] {
		if record.CumulativeProfit < deficit {
			deficit = record.CumulativeProfit
		}
	}
	return deficit, true
}

// FirstIncomeMilestone returns the first month whose total income meets or
// exceeds the threshold.
func FirstIncomeMilestone(records []MonthlyRecord, threshold float64) (int, bool) {
	for _, record := range records {
		if record.TotalIncome >= threshold {
			return record.Month, true
		}
	}
	return 0, false
}

// ExpenseBreakdown sums each expense category across the full horizon.
type ExpenseBreakdown struct {
	InitialCost     float64 `json:"initialCost"`
	FixedExpense    float64 `json:"fixedExpense"`
	VariableExpense float64 `json:"variableExpense"`
	TransactionFee  float64 `json:"transactionFee"`
}

// IncomeBreakdown sums each income category across the full horizon.
type IncomeBreakdown struct {
	Subscription    float64 `json:"subscription"`
	OneTimePurchase float64 `json:"oneTimePurchase"`
	Ad              float64 `json:"ad"`
}

// Breakdown is the aggregate composition of expenses and income over the
// projection horizon.
type Breakdown struct {
	Expense ExpenseBreakdown `json:"expense"`
	Income  IncomeBreakdown  `json:"income"`
}

// Breakdown re-runs the per-month accumulation and sums each category across
// the horizon, rounding each category total once at the end.
func (e *Engine) Breakdown(sim config.Simulation) Breakdown {
	var breakdown Breakdown
	e.forEachMonth(sim, func(month int, totals monthlyTotals) {
		breakdown.Expense.InitialCost += totals.initialCost
		breakdown.Expense.FixedExpense += totals.fixedExpense
		breakdown.Expense.VariableExpense += totals.variableExpense
		breakdown.Expense.TransactionFee += totals.transactionFee
		breakdown.Income.Subscription += totals.subscription
		breakdown.Income.OneTimePurchase += totals.oneTimePurchase
		breakdown.Income.Ad += totals.ad
	})

	breakdown.Expense.InitialCost = mathutil.RoundLedger(breakdown.Expense.InitialCost)
	breakdown.Expense.FixedExpense = mathutil.RoundLedger(breakdown.Expense.FixedExpense)
	breakdown.Expense.VariableExpense = mathutil.RoundLedger(breakdown.Expense.VariableExpense)
	breakdown.Expense.TransactionFee = mathutil.RoundLedger(breakdown.Expense.TransactionFee)
	breakdown.Income.Subscription = mathutil.RoundLedger(breakdown.Income.Subscription)
	breakdown.Income.OneTimePurchase = mathutil.RoundLedger(breakdown.Income.OneTimePurchase)
	breakdown.Income.Ad = mathutil.RoundLedger(breakdown.Income.Ad)

	return breakdown
}

// PlanSubscribers is the terminal subscriber count for one plan.
type PlanSubscribers struct {
	Name        string `json:"name"`
	Subscribers int    `json:"subscribers"`
}

// FinalPlanSubscribers re-runs the cohort trackers to completion and reports
// the terminal count per plan, labeled by plan name. Unnamed plans get a
// positional placeholder label.
func (e *Engine) FinalPlanSubscribers(sim config.Simulation) []PlanSubscribers {
	processor := e.forEachMonth(sim, func(int, monthlyTotals) {})

	finals := make([]PlanSubscribers, 0, len(sim.Subscriptions))
	for i := range sim.Subscriptions {
		plan := &sim.Subscriptions[i]
		name := plan.Name
		if name == "" {
			name = fmt.Sprintf("Plan %d", i+1)
		}
		finals = append(finals, PlanSubscribers{
			Name:        name,
			Subscribers: int(mathutil.RoundLedger(processor.FinalCount(plan, i))),
		})
	}
	return finals
}

// MilestoneResult reports whether and when monthly income first reached a
// configured threshold.
type MilestoneResult struct {
	Threshold float64 `json:"threshold"`
	Month     int     `json:"month,omitempty"`
	Achieved  bool    `json:"achieved"`
}

// Summary bundles every derived metric for one finished projection.
type Summary struct {
	BreakEvenMonth       *float64          `json:"breakEvenMonth,omitempty"`
	MaxCumulativeDeficit *float64          `json:"maxCumulativeDeficit,omitempty"`
	Milestones           []MilestoneResult `json:"milestones,omitempty"`
	Breakdown            Breakdown         `json:"breakdown"`
	PlanSubscribers      []PlanSubscribers `json:"planSubscribers,omitempty"`
}

// Summarize computes the full set of derived metrics for a finished run.
func (e *Engine) Summarize(sim config.Simulation, records []MonthlyRecord, milestones []float64) Summary {
	summary := Summary{
		Breakdown:       e.Breakdown(sim),
		PlanSubscribers: e.FinalPlanSubscribers(sim),
	}

	if bep, ok := BreakEvenMonth(records); ok {
		summary.BreakEvenMonth = &bep
	}
	if deficit, ok := MaxCumulativeDeficit(records); ok {
		summary.MaxCumulativeDeficit = &deficit
	}
	for _, threshold := range milestones {
		result := MilestoneResult{Threshold: threshold}
		if month, ok := FirstIncomeMilestone(records, threshold); ok {
			result.Month = month
			result.Achieved = true
		}
		summary.Milestones = append(summary.Milestones, result)
	}

	e.logger.Debug("summary computed",
		zap.String("op", "simulation.Summarize"),
		zap.Int("milestones", len(summary.Milestones)),
		zap.Int("plans", len(summary.PlanSubscribers)),
	)

	return summary
}
