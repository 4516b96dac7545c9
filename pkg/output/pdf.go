package output

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/hwen6/loan-ledger/internal/planner"
	"github.com/hwen6/loan-ledger/pkg/datetime"
	"github.com/hwen6/loan-ledger/pkg/format"
)

// PDFBytes renders the ledgers as a paginated PDF, one section per plan.
func PDFBytes(plans []planner.Plan) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	if len(plans) == 0 {
		pdf.AddPage()
	}

	for _, plan := range plans {
		pdf.AddPage()
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Scenario: %s", plan.Name))
		pdf.Ln(10)

		pdf.SetFont("Arial", "", 10)
		if plan.Description != "" {
			pdf.Cell(0, 6, plan.Description)
			pdf.Ln(5)
		}
		pdf.Cell(0, 6, fmt.Sprintf("Paid off: %s after %d payments", plan.Summary.PayoffDate, plan.Summary.Periods))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Total principal: %s", format.Currency(plan.Summary.TotalPrincipal)))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Total interest: %s", format.Currency(plan.Summary.TotalInterest)))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Total paid: %s", format.Currency(plan.Summary.TotalPaid)))
		pdf.Ln(8)

		pdf.SetFont("Arial", "B", 8)
		pdf.CellFormat(14, 6, "Period", "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, "Date", "1", 0, "C", false, 0, "")
		pdf.CellFormat(24, 6, "Kind", "1", 0, "C", false, 0, "")
		pdf.CellFormat(26, 6, "Principal", "1", 0, "C", false, 0, "")
		pdf.CellFormat(24, 6, "Interest", "1", 0, "C", false, 0, "")
		pdf.CellFormat(28, 6, "Remaining", "1", 0, "C", false, 0, "")
		pdf.CellFormat(26, 6, "Total", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 8)
		for _, row := range plan.Rows {
			pdf.CellFormat(14, 5, fmt.Sprintf("%d", row.Period), "1", 0, "C", false, 0, "")
			pdf.CellFormat(22, 5, datetime.FormatDate(row.Date), "1", 0, "C", false, 0, "")
			pdf.CellFormat(24, 5, string(row.Kind), "1", 0, "C", false, 0, "")
			pdf.CellFormat(26, 5, format.NumericCurrency(row.Principal), "1", 0, "R", false, 0, "")
			pdf.CellFormat(24, 5, format.NumericCurrency(row.Interest), "1", 0, "R", false, 0, "")
			pdf.CellFormat(28, 5, format.NumericCurrency(row.RemainingPrincipal), "1", 0, "R", false, 0, "")
			pdf.CellFormat(26, 5, format.NumericCurrency(row.TotalPayment), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
