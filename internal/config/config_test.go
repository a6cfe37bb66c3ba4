package config

import (
	"strings"
	"testing"
)

const sampleYAML = `
simulation:
  initialCosts:
    - name: "PC"
      amount: 200000
  fixedExpenses:
    - name: "Server"
      amount: 2000
    - name: "Domain"
      amount: 12000
      billingCycle: "yearly"
  variableExpenses:
    - name: "API calls"
      amount: 10
  transactionFees:
    - name: "Apple"
      rate: 30
  subscriptions:
    - id: "pro"
      name: "Pro"
      amount: 9.99
      currency: "USD"
      conversionRate: 10
      churnRate: 5
  oneTimePurchases:
    - name: "Lifetime unlock"
      amount: 4980
      conversionRate: 2
  ads:
    - name: "Banner"
      amount: 50
  periodMonths: 24
  monthlyGrowthRate: 5
  initialUsers: 100
  exchangeRate: 150
milestones: [50000, 300000]
logging:
  level: "debug"
  format: "console"
output:
  format: "csv"
`

func TestLoadConfigurationFromReader(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	sim := conf.Simulation
	if sim.PeriodMonths != 24 {
		t.Errorf("PeriodMonths = %d, expected 24", sim.PeriodMonths)
	}
	if sim.MonthlyGrowthRate != 5 {
		t.Errorf("MonthlyGrowthRate = %v, expected 5", sim.MonthlyGrowthRate)
	}
	if len(sim.FixedExpenses) != 2 {
		t.Fatalf("got %d fixed expenses, expected 2", len(sim.FixedExpenses))
	}
	if sim.FixedExpenses[1].BillingCycle != CycleYearly {
		t.Errorf("Domain billing cycle = %q, expected yearly", sim.FixedExpenses[1].BillingCycle)
	}
	if len(sim.Subscriptions) != 1 {
		t.Fatalf("got %d subscriptions, expected 1", len(sim.Subscriptions))
	}
	plan := sim.Subscriptions[0]
	if plan.Currency != CurrencyUSD {
		t.Errorf("plan currency = %q, expected USD", plan.Currency)
	}
	if plan.ConversionRate != 10 || plan.ChurnRate != 5 {
		t.Errorf("plan rates = %v/%v, expected 10/5", plan.ConversionRate, plan.ChurnRate)
	}
	if len(sim.OneTimePurchases) != 1 || sim.OneTimePurchases[0].ConversionRate != 2 {
		t.Errorf("one-time purchases not decoded: %+v", sim.OneTimePurchases)
	}

	if len(conf.Milestones) != 2 || conf.Milestones[0] != 50000 {
		t.Errorf("milestones = %v, expected [50000 300000]", conf.Milestones)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("logging config = %+v", conf.Logging)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("output format = %q, expected csv", conf.Output.Format)
	}
}

func TestLoadConfigurationFromReaderAppliesDefaults(t *testing.T) {
	// An older-schema document: no initialCosts, oneTimePurchases,
	// transactionFees, currencies, cycles, or exchange rate.
	old := `
simulation:
  fixedExpenses:
    - name: "Server"
      amount: 2000
  subscriptions:
    - name: "Pro"
      amount: 1000
      conversionRate: 10
      churnRate: 0
  periodMonths: 12
  initialUsers: 100
`
	conf, err := LoadConfigurationFromReader(strings.NewReader(old))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	sim := conf.Simulation
	if sim.InitialCosts == nil || sim.OneTimePurchases == nil || sim.TransactionFees == nil {
		t.Error("expected missing collections to be migrated to empty lists")
	}
	if sim.FixedExpenses[0].Currency != CurrencyJPY {
		t.Errorf("migrated currency = %q, expected JPY", sim.FixedExpenses[0].Currency)
	}
	if sim.FixedExpenses[0].BillingCycle != CycleMonthly {
		t.Errorf("migrated billing cycle = %q, expected monthly", sim.FixedExpenses[0].BillingCycle)
	}
	if sim.Subscriptions[0].Currency != CurrencyJPY {
		t.Errorf("migrated plan currency = %q, expected JPY", sim.Subscriptions[0].Currency)
	}
	if sim.ExchangeRate != 150 {
		t.Errorf("migrated exchange rate = %v, expected 150", sim.ExchangeRate)
	}
	if len(conf.Milestones) != 2 {
		t.Errorf("migrated milestones = %v, expected the two defaults", conf.Milestones)
	}
}

func TestLoadConfigurationFromReaderAcceptsJSON(t *testing.T) {
	// YAML is a superset of JSON; the HTTP API relies on this.
	body := `{"simulation": {"periodMonths": 6, "initialUsers": 50, "ads": [{"name": "Banner", "amount": 30}]}}`

	conf, err := LoadConfigurationFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if conf.Simulation.PeriodMonths != 6 {
		t.Errorf("PeriodMonths = %d, expected 6", conf.Simulation.PeriodMonths)
	}
	if len(conf.Simulation.Ads) != 1 || conf.Simulation.Ads[0].Amount != 30 {
		t.Errorf("ads = %+v", conf.Simulation.Ads)
	}
}

func TestLoadConfigurationFromReaderRejectsMalformed(t *testing.T) {
	if _, err := LoadConfigurationFromReader(strings.NewReader("simulation: [unclosed")); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestApplyDefaultsIdempotent(t *testing.T) {
	conf := DefaultConfiguration()
	rate := conf.Simulation.ExchangeRate
	milestones := len(conf.Milestones)

	conf.ApplyDefaults()
	if conf.Simulation.ExchangeRate != rate {
		t.Errorf("exchange rate changed on second apply: %v", conf.Simulation.ExchangeRate)
	}
	if len(conf.Milestones) != milestones {
		t.Errorf("milestones changed on second apply: %v", conf.Milestones)
	}
}

func TestApplyDefaultsPreservesExplicitValues(t *testing.T) {
	conf := &Configuration{
		Simulation: Simulation{
			FixedExpenses: []LineItem{{Name: "Server", Amount: 10, Currency: CurrencyUSD, BillingCycle: CycleYearly}},
			ExchangeRate:  -5, // degenerate but explicit; only zero is migrated
		},
	}
	conf.ApplyDefaults()

	if conf.Simulation.FixedExpenses[0].Currency != CurrencyUSD {
		t.Error("explicit currency was overwritten")
	}
	if conf.Simulation.FixedExpenses[0].BillingCycle != CycleYearly {
		t.Error("explicit billing cycle was overwritten")
	}
	if conf.Simulation.ExchangeRate != -5 {
		t.Errorf("explicit exchange rate was overwritten: %v", conf.Simulation.ExchangeRate)
	}
}

func TestValidateConfiguration(t *testing.T) {
	conf := &Configuration{
		Simulation: Simulation{
			FixedExpenses: []LineItem{{Name: "Server", Amount: -2000}},
			Subscriptions: []SubscriptionPlan{
				{Name: "Basic", Amount: 500, ConversionRate: 60},
				{Name: "Pro", Amount: 1000, ConversionRate: 70, ChurnRate: 120},
			},
			PeriodMonths: 12,
			ExchangeRate: -5,
		},
	}

	warnings := conf.ValidateConfiguration()

	expectContains(t, warnings, "negative amount")
	expectContains(t, warnings, "outside 0-100")
	expectContains(t, warnings, "sum to 130.00%")
	expectContains(t, warnings, "Exchange rate is not positive")
}

func TestValidateConfigurationCleanConfig(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func expectContains(t *testing.T, warnings []string, fragment string) {
	t.Helper()
	for _, warning := range warnings {
		if strings.Contains(warning, fragment) {
			return
		}
	}
	t.Errorf("no warning containing %q in %v", fragment, warnings)
}
