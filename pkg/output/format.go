// Package output provides utilities for formatting and displaying
// projection results.
package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/revenuex/revenue-forecast/internal/simulation"
	"github.com/revenuex/revenue-forecast/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(records []simulation.MonthlyRecord) {
	p := message.NewPrinter(language.Japanese)
	fmt.Printf("Month | Users    | Subs     | Income        | Expense       | Profit        | Cumulative\n")
	fmt.Printf("_____ | ________ | ________ | _____________ | _____________ | _____________ | _____________\n")
	for _, record := range records {
		_, _ = p.Printf("%5d | %8d | %8d | ¥%12.0f | ¥%12.0f | ¥%12.0f | ¥%12.0f\n",
			record.Month, record.Users, record.Subscribers,
			record.TotalIncome, record.TotalExpense,
			record.Profit, record.CumulativeProfit)
	}
}

// PrettySummary outputs the derived metrics for a finished projection.
func PrettySummary(summary simulation.Summary) {
	fmt.Printf("--- Summary ---\n")

	if summary.BreakEvenMonth != nil {
		fmt.Printf("Break-even month:       %.1f\n", *summary.BreakEvenMonth)
	} else {
		fmt.Printf("Break-even month:       not reached\n")
	}

	if summary.MaxCumulativeDeficit != nil && *summary.MaxCumulativeDeficit < 0 {
		fmt.Printf("Maximum deficit:        %s\n", format.Yen(*summary.MaxCumulativeDeficit))
	} else {
		fmt.Printf("Maximum deficit:        %s\n", format.Yen(0))
	}

	for _, milestone := range summary.Milestones {
		status := "not reached"
		if milestone.Achieved {
			status = fmt.Sprintf("month %d", milestone.Month)
		}
		fmt.Printf("Income %s/month:  %s\n", format.Yen(milestone.Threshold), status)
	}

	fmt.Printf("Expenses:               initial %s, fixed %s, variable %s, fees %s\n",
		format.Yen(summary.Breakdown.Expense.InitialCost),
		format.Yen(summary.Breakdown.Expense.FixedExpense),
		format.Yen(summary.Breakdown.Expense.VariableExpense),
		format.Yen(summary.Breakdown.Expense.TransactionFee))
	fmt.Printf("Income:                 subscriptions %s, one-time %s, ads %s\n",
		format.Yen(summary.Breakdown.Income.Subscription),
		format.Yen(summary.Breakdown.Income.OneTimePurchase),
		format.Yen(summary.Breakdown.Income.Ad))

	for _, plan := range summary.PlanSubscribers {
		fmt.Printf("Final subscribers:      %s: %d\n", plan.Name, plan.Subscribers)
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(records []simulation.MonthlyRecord) {
	fmt.Print(CsvString(records))
}

// CsvString renders the records as a CSV document.
func CsvString(records []simulation.MonthlyRecord) string {
	var builder strings.Builder
	builder.WriteString(`"month","users","subscribers","totalIncome","totalExpense","profit","cumulativeProfit"` + "\n")
	for _, record := range records {
		fields := []string{
			strconv.Itoa(record.Month),
			strconv.Itoa(record.Users),
			strconv.Itoa(record.Subscribers),
			strconv.FormatFloat(record.TotalIncome, 'f', 0, 64),
			strconv.FormatFloat(record.TotalExpense, 'f', 0, 64),
			strconv.FormatFloat(record.Profit, 'f', 0, 64),
			strconv.FormatFloat(record.CumulativeProfit, 'f', 0, 64),
		}
		builder.WriteString(`"` + strings.Join(fields, `","`) + `"` + "\n")
	}
	return builder.String()
}
