package output

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExcelBytes(t *testing.T) {
	data, err := ExcelBytes(samplePlans())
	if err != nil {
		t.Fatalf("ExcelBytes() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("ExcelBytes() returned empty workbook")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("Expected summary plus one scenario sheet, got %v", sheets)
	}
	if sheets[0] != "summary" {
		t.Errorf("Expected first sheet 'summary', got %s", sheets[0])
	}

	name, err := f.GetCellValue("summary", "A2")
	if err != nil {
		t.Fatalf("GetCellValue error = %v", err)
	}
	if name != "Test Scenario" {
		t.Errorf("Expected scenario name in summary A2, got %q", name)
	}
	payoff, _ := f.GetCellValue("summary", "B2")
	if payoff != "2024-02-15" {
		t.Errorf("Expected payoff date 2024-02-15 in summary B2, got %q", payoff)
	}

	header, _ := f.GetCellValue("Test Scenario", "A1")
	if header != "Period" {
		t.Errorf("Expected ledger header 'Period', got %q", header)
	}
	kind, _ := f.GetCellValue("Test Scenario", "C3")
	if kind != "prepayment" {
		t.Errorf("Expected prepayment kind in C3, got %q", kind)
	}

	rows, err := f.GetRows("Test Scenario")
	if err != nil {
		t.Fatalf("GetRows error = %v", err)
	}
	if len(rows) != 4 {
		t.Errorf("Expected header plus 3 ledger rows, got %d", len(rows))
	}
}

func TestExcelBytesSheetNames(t *testing.T) {
	plans := samplePlans()
	plans[0].Name = "a/b:c*d?e[f]g"
	long := samplePlans()[0]
	long.Name = "this scenario name runs well past the worksheet limit"
	dupe := samplePlans()[0]
	dupe.Name = plans[0].Name
	plans = append(plans, long, dupe)

	data, err := ExcelBytes(plans)
	if err != nil {
		t.Fatalf("ExcelBytes() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) != 4 {
		t.Fatalf("Expected 4 sheets, got %v", sheets)
	}
	seen := make(map[string]bool)
	for _, sheet := range sheets {
		if len([]rune(sheet)) > 31 {
			t.Errorf("Sheet name %q exceeds the worksheet limit", sheet)
		}
		if seen[sheet] {
			t.Errorf("Duplicate sheet name %q", sheet)
		}
		seen[sheet] = true
	}
}

func TestExcelBytesNoPlans(t *testing.T) {
	data, err := ExcelBytes(nil)
	if err != nil {
		t.Fatalf("ExcelBytes() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	header, _ := f.GetCellValue("summary", "A1")
	if header != "Scenario" {
		t.Errorf("Expected summary header 'Scenario', got %q", header)
	}
}
