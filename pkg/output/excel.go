package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hwen6/loan-ledger/internal/planner"
	"github.com/hwen6/loan-ledger/pkg/datetime"
	"github.com/hwen6/loan-ledger/pkg/schedule"
)

var ledgerHeaders = []string{
	"Period", "Date", "Kind", "Principal", "Interest",
	"Remaining Principal", "Cumulative Principal", "Cumulative Interest", "Total Payment",
}

// ExcelBytes renders a summary sheet plus one worksheet per plan.
func ExcelBytes(plans []planner.Plan) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	f.SetSheetName("Sheet1", summarySheet)

	prepayFill, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFE6E6"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	summaryHeaders := []string{"Scenario", "Payoff Date", "Payments", "Total Principal", "Total Interest", "Total Paid"}
	for i, header := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(summarySheet, cell, header)
	}
	for i, plan := range plans {
		row := i + 2
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), plan.Name)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), plan.Summary.PayoffDate)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), plan.Summary.Periods)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("D%d", row), plan.Summary.TotalPrincipal)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("E%d", row), plan.Summary.TotalInterest)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("F%d", row), plan.Summary.TotalPaid)
	}

	used := map[string]bool{summarySheet: true}
	for _, plan := range plans {
		sheet := sheetName(plan.Name, used)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}

		for i, header := range ledgerHeaders {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			_ = f.SetCellValue(sheet, cell, header)
		}
		for i, row := range plan.Rows {
			r := i + 2
			_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.Period)
			_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r), datetime.FormatDate(row.Date))
			_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", r), string(row.Kind))
			_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.Principal)
			_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.Interest)
			_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", r), row.RemainingPrincipal)
			_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", r), row.CumulativePrincipal)
			_ = f.SetCellValue(sheet, fmt.Sprintf("H%d", r), row.CumulativeInterest)
			_ = f.SetCellValue(sheet, fmt.Sprintf("I%d", r), row.TotalPayment)
			if row.Kind == schedule.RowPrepayment {
				_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", r), fmt.Sprintf("I%d", r), prepayFill)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var sheetNameSanitizer = strings.NewReplacer(
	":", "-", "\\", "-", "/", "-", "?", "-", "*", "-", "[", "(", "]", ")",
)

// sheetName maps a scenario name onto a legal, unused worksheet name.
// Worksheet names cap at 31 characters; we stop at 28 to leave room for a
// collision suffix.
func sheetName(name string, used map[string]bool) string {
	sheet := sheetNameSanitizer.Replace(name)
	if sheet == "" {
		sheet = "scenario"
	}
	if runes := []rune(sheet); len(runes) > 28 {
		sheet = string(runes[:28])
	}
	base := sheet
	for n := 2; used[sheet]; n++ {
		sheet = fmt.Sprintf("%s %d", base, n)
	}
	used[sheet] = true
	return sheet
}
