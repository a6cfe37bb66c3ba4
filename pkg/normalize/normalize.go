// Package normalize converts heterogeneous line items (different currencies,
// different billing cycles) into a single ledger currency and a monthly
// cadence before aggregation. All functions are pure and total; a zero or
// negative exchange rate is accepted arithmetically, validation of the rate
// is a caller concern.
package normalize

import (
	"github.com/revenuex/revenue-forecast/internal/config"
	"github.com/revenuex/revenue-forecast/pkg/constants"
)

// ToLedgerAmount converts an amount into the ledger currency. The exchange
// rate is applied only when the amount is in the secondary currency.
func ToLedgerAmount(amount float64, currency config.Currency, exchangeRate float64) float64 {
	if currency == config.CurrencyUSD {
		return amount * exchangeRate
	}
	return amount
}

// ToMonthlyEquivalent converts an amount to its monthly-equivalent figure.
// Yearly amounts are divided by 12; monthly amounts pass through.
func ToMonthlyEquivalent(amount float64, cycle config.BillingCycle) float64 {
	if cycle == config.CycleYearly {
		return amount / constants.MonthsPerYear
	}
	return amount
}

// MonthlyLedgerAmount normalizes a line item amount to "ledger currency,
// per month".
func MonthlyLedgerAmount(amount float64, currency config.Currency, cycle config.BillingCycle, exchangeRate float64) float64 {
	return ToMonthlyEquivalent(ToLedgerAmount(amount, currency, exchangeRate), cycle)
}
