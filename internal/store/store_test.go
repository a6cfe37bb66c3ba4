package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/revenuex/revenue-forecast/internal/config"
	"github.com/revenuex/revenue-forecast/pkg/constants"
	"go.uber.org/zap"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	s := New(t.TempDir(), zap.NewNop())

	conf := config.DefaultConfiguration()
	conf.Simulation.PeriodMonths = 36
	conf.Simulation.Subscriptions = []config.SubscriptionPlan{
		{ID: "pro", Name: "Pro", Amount: 980, Currency: config.CurrencyJPY, BillingCycle: config.CycleMonthly, ConversionRate: 10, ChurnRate: 5},
	}

	if err := s.Save(constants.StoreNamespace, conf); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded := s.Load(constants.StoreNamespace)
	if loaded.Simulation.PeriodMonths != 36 {
		t.Errorf("PeriodMonths = %d, expected 36", loaded.Simulation.PeriodMonths)
	}
	if len(loaded.Simulation.Subscriptions) != 1 {
		t.Fatalf("got %d subscriptions, expected 1", len(loaded.Simulation.Subscriptions))
	}
	plan := loaded.Simulation.Subscriptions[0]
	if plan.Name != "Pro" || plan.Amount != 980 || plan.ConversionRate != 10 {
		t.Errorf("loaded plan = %+v", plan)
	}
}

func TestLoadMissingKeyYieldsDefaults(t *testing.T) {
	s := New(t.TempDir(), zap.NewNop())

	conf := s.Load(constants.StoreNamespace)
	if conf.Simulation.PeriodMonths != constants.DefaultPeriodMonths {
		t.Errorf("PeriodMonths = %d, expected default %d", conf.Simulation.PeriodMonths, constants.DefaultPeriodMonths)
	}
	if conf.Simulation.MonthlyGrowthRate != constants.DefaultMonthlyGrowthRate {
		t.Errorf("MonthlyGrowthRate = %v, expected default %v", conf.Simulation.MonthlyGrowthRate, constants.DefaultMonthlyGrowthRate)
	}
	if conf.Simulation.ExchangeRate != constants.DefaultExchangeRate {
		t.Errorf("ExchangeRate = %v, expected default %v", conf.Simulation.ExchangeRate, constants.DefaultExchangeRate)
	}
}

func TestLoadCorruptBlobYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, zap.NewNop())

	path := filepath.Join(dir, constants.StoreNamespace+".yaml")
	if err := os.WriteFile(path, []byte("simulation: [not valid"), 0644); err != nil {
		t.Fatalf("failed to write corrupt blob: %v", err)
	}

	conf := s.Load(constants.StoreNamespace)
	if conf.Simulation.PeriodMonths != constants.DefaultPeriodMonths {
		t.Errorf("PeriodMonths = %d, expected default after corrupt blob", conf.Simulation.PeriodMonths)
	}
}

func TestLoadMigratesOlderSchema(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, zap.NewNop())

	// A blob written before initialCosts, currencies, and the exchange rate
	// existed in the schema.
	old := `
simulation:
  fixedExpenses:
    - name: "Server"
      amount: 2000
  periodMonths: 12
  initialUsers: 100
`
	path := filepath.Join(dir, constants.StoreNamespace+".yaml")
	if err := os.WriteFile(path, []byte(old), 0644); err != nil {
		t.Fatalf("failed to write blob: %v", err)
	}

	conf := s.Load(constants.StoreNamespace)
	if conf.Simulation.InitialCosts == nil {
		t.Error("expected initialCosts to be migrated to an empty list")
	}
	if conf.Simulation.FixedExpenses[0].Currency != config.CurrencyJPY {
		t.Errorf("migrated currency = %q, expected JPY", conf.Simulation.FixedExpenses[0].Currency)
	}
	if conf.Simulation.ExchangeRate != constants.DefaultExchangeRate {
		t.Errorf("migrated exchange rate = %v, expected %v", conf.Simulation.ExchangeRate, constants.DefaultExchangeRate)
	}
	if conf.Simulation.PeriodMonths != 12 {
		t.Errorf("PeriodMonths = %d, expected the stored 12", conf.Simulation.PeriodMonths)
	}
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, zap.NewNop())

	if err := s.Save("scratch", config.DefaultConfiguration()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Delete("scratch"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "scratch.yaml")); !os.IsNotExist(err) {
		t.Error("expected blob file to be removed")
	}

	// Deleting a missing key is a no-op.
	if err := s.Delete("scratch"); err != nil {
		t.Errorf("Delete() on missing key error = %v", err)
	}
}

func TestSaveNilConfiguration(t *testing.T) {
	s := New(t.TempDir(), nil)
	if err := s.Save("key", nil); err == nil {
		t.Error("expected an error saving a nil configuration")
	}
}
