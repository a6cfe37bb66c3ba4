// Package simulation defines the data structures related to a projection run
// and includes functions for computing the month-by-month forecast.
package simulation

import (
	"math"

	"github.com/revenuex/revenue-forecast/internal/config"
	"github.com/revenuex/revenue-forecast/pkg/cohort"
	"github.com/revenuex/revenue-forecast/pkg/constants"
	"github.com/revenuex/revenue-forecast/pkg/mathutil"
	"github.com/revenuex/revenue-forecast/pkg/normalize"
	"go.uber.org/zap"
)

// MonthlyRecord is one month of the projection, 1-indexed. Monetary values
// are rounded to whole ledger-currency units at emission time; the running
// cumulative profit is accumulated unrounded so per-plan rounding error does
// not compound across months.
type MonthlyRecord struct {
	Month            int     `json:"month"`
	Users            int     `json:"users"`
	Subscribers      int     `json:"subscribers"`
	TotalExpense     float64 `json:"totalExpense"`
	TotalIncome      float64 `json:"totalIncome"`
	Profit           float64 `json:"profit"`
	CumulativeProfit float64 `json:"cumulativeProfit"`
}

// Engine computes projections. It holds no simulation state; each Run owns
// its cohort trackers exclusively, so concurrent runs need no coordination.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a simulation engine with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// monthlyTotals is the per-category accumulation for a single month, in
// unrounded ledger units.
type monthlyTotals struct {
	users       float64
	subscribers float64

	initialCost     float64
	fixedExpense    float64
	variableExpense float64
	transactionFee  float64

	subscription    float64
	oneTimePurchase float64
	ad              float64
}

func (mt monthlyTotals) income() float64 {
	return mt.subscription + mt.oneTimePurchase + mt.ad
}

func (mt monthlyTotals) expense() float64 {
	return mt.initialCost + mt.fixedExpense + mt.variableExpense + mt.transactionFee
}

// Run computes the projection for the given simulation configuration and
// returns one record per month. A zero or negative horizon yields an empty
// sequence. Run is deterministic and total: malformed numeric input produces
// arithmetically consistent output rather than an error.
func (e *Engine) Run(sim config.Simulation) []MonthlyRecord {
	capacity := sim.PeriodMonths
	if capacity < 0 {
		capacity = 0
	}
	records := make([]MonthlyRecord, 0, capacity)

	cumulativeProfit := 0.0
	e.forEachMonth(sim, func(month int, totals monthlyTotals) {
		profit := totals.income() - totals.expense()
		cumulativeProfit += profit

		records = append(records, MonthlyRecord{
			Month:            month,
			Users:            int(mathutil.RoundLedger(totals.users)),
			Subscribers:      int(mathutil.RoundLedger(totals.subscribers)),
			TotalExpense:     mathutil.RoundLedger(totals.expense()),
			TotalIncome:      mathutil.RoundLedger(totals.income()),
			Profit:           mathutil.RoundLedger(profit),
			CumulativeProfit: mathutil.RoundLedger(cumulativeProfit),
		})
	})

	e.logger.Debug("simulation complete",
		zap.String("op", "simulation.Run"),
		zap.Int("months", len(records)),
		zap.Int("plans", len(sim.Subscriptions)),
	)

	return records
}

// forEachMonth drives the month loop and hands the unrounded per-category
// totals for each month to visit, in increasing month order. The returned
// processor carries the terminal per-plan subscriber counts.
func (e *Engine) forEachMonth(sim config.Simulation, visit func(month int, totals monthlyTotals)) *cohort.PlanProcessor {
	rate := sim.ExchangeRate

	// Per-month unit amounts are normalized up front; they do not vary with
	// the month index. Initial costs and one-time purchases are single-shot
	// amounts, so only the currency conversion applies to them.
	initialCostTotal := 0.0
	for _, item := range sim.InitialCosts {
		initialCostTotal += normalize.ToLedgerAmount(item.Amount, item.Currency, rate)
	}
	fixedPerMonth := 0.0
	for _, item := range sim.FixedExpenses {
		fixedPerMonth += normalize.MonthlyLedgerAmount(item.Amount, item.Currency, item.BillingCycle, rate)
	}
	variablePerUser := 0.0
	for _, item := range sim.VariableExpenses {
		variablePerUser += normalize.MonthlyLedgerAmount(item.Amount, item.Currency, item.BillingCycle, rate)
	}
	adPerUser := 0.0
	for _, item := range sim.Ads {
		adPerUser += normalize.MonthlyLedgerAmount(item.Amount, item.Currency, item.BillingCycle, rate)
	}
	feeRateTotal := 0.0
	for _, fee := range sim.TransactionFees {
		feeRateTotal += fee.Rate
	}

	growthMultiplier := 1 + sim.MonthlyGrowthRate/constants.PercentageMultiplier
	plans := cohort.NewPlanProcessor(e.logger)

	previousUsers := 0.0
	for month := 1; month <= sim.PeriodMonths; month++ {
		growthFactor := math.Pow(growthMultiplier, float64(month-1))
		users := mathutil.FloorZero(sim.InitialUsers * growthFactor)
		newUsers := mathutil.FloorZero(users - previousUsers)

		var totals monthlyTotals
		totals.users = users

		totals.subscribers, totals.subscription = plans.ProcessMonth(sim.Subscriptions, newUsers, rate)

		// One-time purchases are realized once against this month's new-user
		// cohort only; no running total of past purchasers is kept.
		for _, purchase := range sim.OneTimePurchases {
			unitAmount := normalize.ToLedgerAmount(purchase.Amount, purchase.Currency, rate)
			totals.oneTimePurchase += mathutil.ApplyPercentage(newUsers, purchase.ConversionRate) * unitAmount
		}

		totals.ad = adPerUser * users

		// Fees apply against subscription and one-time revenue, never ads.
		totals.transactionFee = mathutil.ApplyPercentage(totals.subscription+totals.oneTimePurchase, feeRateTotal)

		if month == 1 {
			totals.initialCost = initialCostTotal
		}
		totals.fixedExpense = fixedPerMonth
		totals.variableExpense = variablePerUser * users

		visit(month, totals)
		previousUsers = users
	}

	return plans
}
