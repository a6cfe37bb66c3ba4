// Package cohort tracks per-plan subscriber counts across months under
// conversion and churn dynamics.
package cohort

import (
	"fmt"

	"github.com/revenuex/revenue-forecast/internal/config"
	"github.com/revenuex/revenue-forecast/pkg/mathutil"
	"github.com/revenuex/revenue-forecast/pkg/normalize"
	"go.uber.org/zap"
)

// Tracker holds the running subscriber count for a single subscription plan.
// State is owned exclusively by one simulation run and starts at 0.
type Tracker struct {
	count float64
}

// Advance applies one month of churn and acquisition and returns the updated
// subscriber count. Churn is computed against the previous month's count;
// acquisition against this month's newly acquired users. The floor at 0 is a
// safety net against rounding-driven negative counts.
func (t *Tracker) Advance(newUsers, conversionRate, churnRate float64) float64 {
	churned := mathutil.ApplyPercentage(t.count, churnRate)
	acquired := mathutil.ApplyPercentage(newUsers, conversionRate)
	t.count = mathutil.FloorZero(t.count - churned + acquired)
	return t.count
}

// Count returns the current subscriber count.
func (t *Tracker) Count() float64 {
	return t.count
}

// PlanProcessor advances the trackers for every configured plan one month at
// a time. Plans do not share or compete for the acquisition pool; each plan's
// conversion rate is applied to the same pool of newly acquired users.
type PlanProcessor struct {
	logger   *zap.Logger
	trackers map[string]*Tracker
}

// NewPlanProcessor creates a plan processor with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewPlanProcessor(logger *zap.Logger) *PlanProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanProcessor{
		logger:   logger,
		trackers: make(map[string]*Tracker),
	}
}

// ProcessMonth advances every plan by one month and returns the total
// subscriber count and the subscription revenue in ledger units.
func (pp *PlanProcessor) ProcessMonth(plans []config.SubscriptionPlan, newUsers, exchangeRate float64) (subscribers, revenue float64) {
	for i := range plans {
		plan := &plans[i]
		tracker := pp.tracker(plan, i)
		count := tracker.Advance(newUsers, plan.ConversionRate, plan.ChurnRate)

		unitAmount := normalize.MonthlyLedgerAmount(plan.Amount, plan.Currency, plan.BillingCycle, exchangeRate)
		subscribers += count
		revenue += unitAmount * count

		pp.logger.Debug("plan advanced",
			zap.String("op", "cohort.ProcessMonth"),
			zap.String("plan", plan.Name),
			zap.Float64("newUsers", newUsers),
			zap.Float64("subscribers", count),
		)
	}
	return subscribers, revenue
}

// FinalCount returns the terminal subscriber count for the plan at the given
// position, 0 when the plan was never advanced.
func (pp *PlanProcessor) FinalCount(plan *config.SubscriptionPlan, index int) float64 {
	return pp.tracker(plan, index).Count()
}

func (pp *PlanProcessor) tracker(plan *config.SubscriptionPlan, index int) *Tracker {
	key := plan.ID
	if key == "" {
		// Unsaved plans may not carry an ID yet; fall back to position.
		key = fmt.Sprintf("plan-%d", index)
	}
	tracker, ok := pp.trackers[key]
	if !ok {
		tracker = &Tracker{}
		pp.trackers[key] = tracker
	}
	return tracker
}
