// Package output provides utilities for formatting and displaying generated ledgers.
package output

import (
	"fmt"
	"strings"

	"github.com/hwen6/loan-ledger/internal/planner"
	"github.com/hwen6/loan-ledger/pkg/datetime"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(plans []planner.Plan) {
	p := message.NewPrinter(language.English)
	for _, plan := range plans {
		fmt.Printf("--- Results for scenario %s ---\n", plan.Name)
		if plan.Description != "" {
			fmt.Printf("%s\n", plan.Description)
		}
		_, _ = p.Printf("Paid off %s after %d payments | principal %.2f | interest %.2f | total %.2f\n",
			plan.Summary.PayoffDate, plan.Summary.Periods,
			plan.Summary.TotalPrincipal, plan.Summary.TotalInterest, plan.Summary.TotalPaid)
		fmt.Printf("Period | Date       | Kind       | Principal    | Interest   | Remaining      | Total\n")
		fmt.Printf("______ | ____       | ____       | _________    | ________   | _________      | _____\n")
		for _, row := range plan.Rows {
			_, _ = p.Printf("%6d | %s | %-10s | %12.2f | %10.2f | %14.2f | %12.2f\n",
				row.Period, datetime.FormatDate(row.Date), row.Kind,
				row.Principal, row.Interest, row.RemainingPrincipal, row.TotalPayment)
		}
		if len(plans) > 1 {
			fmt.Printf("\n")
		}
	}
}

// CsvString renders the ledgers in comma-separated value format, one row per
// ledger entry with the scenario name in the first column.
func CsvString(plans []planner.Plan) string {
	var b strings.Builder
	b.WriteString(`"scenario","period","date","kind","principal","interest","remainingPrincipal","cumulativePrincipal","cumulativeInterest","totalPayment"`)
	b.WriteString("\n")
	for _, plan := range plans {
		for _, row := range plan.Rows {
			b.WriteString(fmt.Sprintf(`"%s","%d","%s","%s","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f"`,
				plan.Name, row.Period, datetime.FormatDate(row.Date), row.Kind,
				row.Principal, row.Interest, row.RemainingPrincipal,
				row.CumulativePrincipal, row.CumulativeInterest, row.TotalPayment))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(plans []planner.Plan) {
	fmt.Print(CsvString(plans))
}
