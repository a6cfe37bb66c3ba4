// Package constants provides shared constants for the revenue-forecast application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for ledger-unit comparisons
	CurrencyTolerance = 0.5

	// MaxReasonableHorizonMonths is the horizon above which a warning is raised
	MaxReasonableHorizonMonths = 600
)

// Configuration schema defaults, applied when loading configurations that
// predate the corresponding fields.
const (
	// DefaultExchangeRate is the USD->JPY rate assumed when none is configured
	DefaultExchangeRate = 150.0

	// DefaultPeriodMonths is the default projection horizon
	DefaultPeriodMonths = 12

	// DefaultMonthlyGrowthRate is the default monthly user growth rate (percent)
	DefaultMonthlyGrowthRate = 5.0
)

// Milestone defaults (ledger units of monthly income)
const (
	// MilestoneSideIncome is the side-income milestone threshold
	MilestoneSideIncome = 50000.0

	// MilestoneFullTime is the full-time-income milestone threshold
	MilestoneFullTime = 300000.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// StoreNamespace is the fixed key under which configurations are persisted
	StoreNamespace = "revenue-x-simulation"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodyBytes is the default maximum request body size (256 KB)
	DefaultMaxBodyBytes int64 = 256 * 1024
)
