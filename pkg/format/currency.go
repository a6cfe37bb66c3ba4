package format

import (
	"fmt"
	"math"
	"strings"
)

// Yen returns a ledger-currency string with a yen sign and thousands
// separators (e.g., "-¥1,234"). Ledger amounts are integral after emission
// rounding, so no decimal places are rendered.
func Yen(amount float64) string {
	formatted := formatGrouped(math.Abs(amount))
	if amount < 0 {
		return "-¥" + formatted
	}
	return "¥" + formatted
}

// NumericYen returns a ledger-currency string without a currency symbol but
// with separators (e.g., "-1,234").
func NumericYen(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return sign + formatGrouped(math.Abs(amount))
}

func formatGrouped(value float64) string {
	intPart := fmt.Sprintf("%.0f", value)

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart
}
