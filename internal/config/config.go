// Package config defines the data structures related to configuration and
// includes functions for loading and migrating the config.
package config

import (
	"fmt"
	"io"

	"github.com/revenuex/revenue-forecast/pkg/validation"
	"github.com/spf13/viper"
)

// Currency identifies the currency a line item amount is expressed in.
// JPY is the ledger currency; all output figures are normalized into it.
type Currency string

const (
	CurrencyJPY Currency = "JPY"
	CurrencyUSD Currency = "USD"
)

// BillingCycle is the recurrence period of a line item amount.
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

// Configuration holds all configuration for revenue-forecast.
type Configuration struct {
	Simulation Simulation    `yaml:"simulation"`
	Milestones []float64     `yaml:"milestones,omitempty"`
	Logging    LoggingConfig `yaml:"logging,omitempty"`
	Output     OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Simulation aggregates every line-item collection plus the scalar
// parameters of one projection run.
type Simulation struct {
	InitialCosts     []LineItem         `yaml:"initialCosts"`
	FixedExpenses    []LineItem         `yaml:"fixedExpenses"`
	VariableExpenses []LineItem         `yaml:"variableExpenses"`
	TransactionFees  []TransactionFee   `yaml:"transactionFees"`
	Subscriptions    []SubscriptionPlan `yaml:"subscriptions"`
	OneTimePurchases []OneTimePurchase  `yaml:"oneTimePurchases"`
	Ads              []LineItem         `yaml:"ads"`

	PeriodMonths      int     `yaml:"periodMonths"`      // projection horizon in whole months
	MonthlyGrowthRate float64 `yaml:"monthlyGrowthRate"` // percent, may be negative
	InitialUsers      float64 `yaml:"initialUsers"`
	ExchangeRate      float64 `yaml:"exchangeRate"` // USD->JPY
}

// LineItem is a single configured cost or revenue entry. Initial costs are
// applied only in month 1; fixed expenses recur independent of user count;
// variable expenses and ad revenue scale per user.
type LineItem struct {
	ID           string       `yaml:"id,omitempty"`
	Name         string       `yaml:"name"`
	Amount       float64      `yaml:"amount"`
	Currency     Currency     `yaml:"currency,omitempty"`
	BillingCycle BillingCycle `yaml:"billingCycle,omitempty"`
}

// SubscriptionPlan is recurring per-subscriber revenue with cohort dynamics.
type SubscriptionPlan struct {
	ID           string       `yaml:"id,omitempty"`
	Name         string       `yaml:"name"`
	Amount       float64      `yaml:"amount"`
	Currency     Currency     `yaml:"currency,omitempty"`
	BillingCycle BillingCycle `yaml:"billingCycle,omitempty"`

	// ConversionRate is the share of newly acquired users who convert to
	// this plan each month (percent). ChurnRate is the share of existing
	// subscribers who cancel each month (percent).
	ConversionRate float64 `yaml:"conversionRate"`
	ChurnRate      float64 `yaml:"churnRate"`
}

// OneTimePurchase is revenue realized once per converting user in the month
// that user is acquired; there is no recurring component.
type OneTimePurchase struct {
	ID             string   `yaml:"id,omitempty"`
	Name           string   `yaml:"name"`
	Amount         float64  `yaml:"amount"`
	Currency       Currency `yaml:"currency,omitempty"`
	ConversionRate float64  `yaml:"conversionRate"`
}

// TransactionFee is a percentage rate applied against realized subscription
// and one-time-purchase revenue, added to expenses. Fees never apply against
// ad revenue.
type TransactionFee struct {
	ID   string  `yaml:"id,omitempty"`
	Name string  `yaml:"name"`
	Rate float64 `yaml:"rate"` // percent
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Schema defaults are applied after decoding.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// arbitrary reader; used by the HTTP API for request bodies.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Degenerate numeric input is warned about, never rejected;
// the engine itself is total over its inputs.
func (conf *Configuration) ValidateConfiguration() []string {
	return validation.ValidateSimulation(toValidationSimulation(conf.Simulation))
}

func toValidationSimulation(sim Simulation) validation.Simulation {
	out := validation.Simulation{
		PeriodMonths:      sim.PeriodMonths,
		MonthlyGrowthRate: sim.MonthlyGrowthRate,
		InitialUsers:      sim.InitialUsers,
		ExchangeRate:      sim.ExchangeRate,
	}

	for _, item := range sim.InitialCosts {
		out.Amounts = append(out.Amounts, validation.AmountInfo{Name: item.Name, Kind: "initial cost", Amount: item.Amount})
	}
	for _, item := range sim.FixedExpenses {
		out.Amounts = append(out.Amounts, validation.AmountInfo{Name: item.Name, Kind: "fixed expense", Amount: item.Amount})
	}
	for _, item := range sim.VariableExpenses {
		out.Amounts = append(out.Amounts, validation.AmountInfo{Name: item.Name, Kind: "variable expense", Amount: item.Amount})
	}
	for _, item := range sim.Ads {
		out.Amounts = append(out.Amounts, validation.AmountInfo{Name: item.Name, Kind: "ad revenue", Amount: item.Amount})
	}

	for _, fee := range sim.TransactionFees {
		out.Rates = append(out.Rates, validation.RateInfo{Name: fee.Name, Kind: "transaction fee", Rate: fee.Rate})
	}
	for _, plan := range sim.Subscriptions {
		out.Amounts = append(out.Amounts, validation.AmountInfo{Name: plan.Name, Kind: "subscription plan", Amount: plan.Amount})
		out.Rates = append(out.Rates, validation.RateInfo{Name: plan.Name, Kind: "conversion rate", Rate: plan.ConversionRate})
		out.Rates = append(out.Rates, validation.RateInfo{Name: plan.Name, Kind: "churn rate", Rate: plan.ChurnRate})
		out.PlanConversionTotal += plan.ConversionRate
	}
	for _, purchase := range sim.OneTimePurchases {
		out.Amounts = append(out.Amounts, validation.AmountInfo{Name: purchase.Name, Kind: "one-time purchase", Amount: purchase.Amount})
		out.Rates = append(out.Rates, validation.RateInfo{Name: purchase.Name, Kind: "conversion rate", Rate: purchase.ConversionRate})
	}

	return out
}
