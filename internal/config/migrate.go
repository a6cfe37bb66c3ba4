package config

// Schema migration between configuration versions. Earlier schemas lacked
// initialCosts, oneTimePurchases, transactionFees, per-item
// currency/billingCycle, and the exchange rate; loading fills those in with
// documented defaults so the engine always sees a fully-populated,
// current-schema configuration.

import (
	"github.com/revenuex/revenue-forecast/pkg/constants"
)

// DefaultConfiguration returns the configuration seeded on first run or when
// a persisted blob is missing or unreadable.
func DefaultConfiguration() *Configuration {
	conf := &Configuration{
		Simulation: Simulation{
			FixedExpenses:     []LineItem{{Name: "", Amount: 0}},
			Ads:               []LineItem{{Name: "", Amount: 0}},
			PeriodMonths:      constants.DefaultPeriodMonths,
			MonthlyGrowthRate: constants.DefaultMonthlyGrowthRate,
		},
	}
	conf.ApplyDefaults()
	return conf
}

// ApplyDefaults upgrades a configuration decoded from an older schema to the
// current shape. Missing collections become empty, missing currencies default
// to the ledger currency, missing billing cycles to monthly, and a missing or
// zero exchange rate to the default rate. Idempotent.
func (conf *Configuration) ApplyDefaults() {
	sim := &conf.Simulation

	if sim.InitialCosts == nil {
		sim.InitialCosts = []LineItem{}
	}
	if sim.FixedExpenses == nil {
		sim.FixedExpenses = []LineItem{}
	}
	if sim.VariableExpenses == nil {
		sim.VariableExpenses = []LineItem{}
	}
	if sim.TransactionFees == nil {
		sim.TransactionFees = []TransactionFee{}
	}
	if sim.Subscriptions == nil {
		sim.Subscriptions = []SubscriptionPlan{}
	}
	if sim.OneTimePurchases == nil {
		sim.OneTimePurchases = []OneTimePurchase{}
	}
	if sim.Ads == nil {
		sim.Ads = []LineItem{}
	}

	for i := range sim.InitialCosts {
		defaultLineItem(&sim.InitialCosts[i])
	}
	for i := range sim.FixedExpenses {
		defaultLineItem(&sim.FixedExpenses[i])
	}
	for i := range sim.VariableExpenses {
		defaultLineItem(&sim.VariableExpenses[i])
	}
	for i := range sim.Ads {
		defaultLineItem(&sim.Ads[i])
	}
	for i := range sim.Subscriptions {
		plan := &sim.Subscriptions[i]
		if plan.Currency == "" {
			plan.Currency = CurrencyJPY
		}
		if plan.BillingCycle == "" {
			plan.BillingCycle = CycleMonthly
		}
	}
	for i := range sim.OneTimePurchases {
		if sim.OneTimePurchases[i].Currency == "" {
			sim.OneTimePurchases[i].Currency = CurrencyJPY
		}
	}

	if sim.ExchangeRate == 0 {
		sim.ExchangeRate = constants.DefaultExchangeRate
	}

	if conf.Milestones == nil {
		conf.Milestones = []float64{constants.MilestoneSideIncome, constants.MilestoneFullTime}
	}
}

func defaultLineItem(item *LineItem) {
	if item.Currency == "" {
		item.Currency = CurrencyJPY
	}
	if item.BillingCycle == "" {
		item.BillingCycle = CycleMonthly
	}
}
