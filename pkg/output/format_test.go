package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/hwen6/loan-ledger/internal/planner"
	"github.com/hwen6/loan-ledger/pkg/schedule"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func samplePlans() []planner.Plan {
	day := func(value string) time.Time {
		parsed, _ := time.Parse("2006-01-02", value)
		return parsed
	}

	return []planner.Plan{
		{
			Name:        "Test Scenario",
			Description: "sample ledger",
			Rows: []schedule.Entry{
				{
					Period: 1, Date: day("2024-01-15"), Kind: schedule.RowRegular,
					Principal: 833.33, Interest: 27.08, RemainingPrincipal: 9166.67,
					CumulativePrincipal: 833.33, CumulativeInterest: 27.08, TotalPayment: 860.41,
				},
				{
					Period: 1, Date: day("2024-01-20"), Kind: schedule.RowPrepayment,
					Principal: 5000.00, Interest: 4.07, RemainingPrincipal: 4166.67,
					CumulativePrincipal: 5833.33, CumulativeInterest: 31.15, TotalPayment: 5004.07,
				},
				{
					Period: 2, Date: day("2024-02-15"), Kind: schedule.RowRegular,
					Principal: 4166.67, Interest: 11.28, RemainingPrincipal: 0.00,
					CumulativePrincipal: 10000.00, CumulativeInterest: 42.43, TotalPayment: 4177.95,
				},
			},
			Summary: planner.Summary{
				Periods:        2,
				Rows:           3,
				PayoffDate:     "2024-02-15",
				TotalPrincipal: 10000.00,
				TotalInterest:  42.43,
				TotalPaid:      10042.43,
			},
		},
	}
}

func TestPrettyFormat(t *testing.T) {
	output := captureStdout(t, func() {
		PrettyFormat(samplePlans())
	})

	if !strings.Contains(output, "--- Results for scenario Test Scenario ---") {
		t.Errorf("PrettyFormat missing scenario header")
	}
	if !strings.Contains(output, "sample ledger") {
		t.Errorf("PrettyFormat missing description")
	}
	if !strings.Contains(output, "Period | Date       | Kind") {
		t.Errorf("PrettyFormat missing table header")
	}
	if !strings.Contains(output, "after 2 payments") {
		t.Errorf("PrettyFormat missing summary line")
	}
	if !strings.Contains(output, "9,166.67") {
		t.Errorf("PrettyFormat missing grouped remaining principal")
	}
	if !strings.Contains(output, "10,042.43") {
		t.Errorf("PrettyFormat missing grouped total paid")
	}
	if !strings.Contains(output, "prepayment") {
		t.Errorf("PrettyFormat missing prepayment row")
	}
	if !strings.Contains(output, "2024-01-20") {
		t.Errorf("PrettyFormat missing prepayment date")
	}
}

func TestPrettyFormatMultiplePlans(t *testing.T) {
	plans := append(samplePlans(), samplePlans()...)
	plans[1].Name = "Second Scenario"

	output := captureStdout(t, func() {
		PrettyFormat(plans)
	})

	if !strings.Contains(output, "--- Results for scenario Test Scenario ---") {
		t.Errorf("PrettyFormat missing first scenario header")
	}
	if !strings.Contains(output, "--- Results for scenario Second Scenario ---") {
		t.Errorf("PrettyFormat missing second scenario header")
	}
}

func TestCsvString(t *testing.T) {
	csv := CsvString(samplePlans())
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d lines", len(lines))
	}

	wantHeader := `"scenario","period","date","kind","principal","interest","remainingPrincipal","cumulativePrincipal","cumulativeInterest","totalPayment"`
	if lines[0] != wantHeader {
		t.Errorf("Unexpected CSV header: %s", lines[0])
	}

	wantRow := `"Test Scenario","1","2024-01-15","regular","833.33","27.08","9166.67","833.33","27.08","860.41"`
	if lines[1] != wantRow {
		t.Errorf("Unexpected first CSV row: %s", lines[1])
	}

	if !strings.Contains(lines[2], `"prepayment"`) {
		t.Errorf("Expected prepayment kind in second row: %s", lines[2])
	}
}

func TestCsvFormatMatchesCsvString(t *testing.T) {
	plans := samplePlans()

	output := captureStdout(t, func() {
		CsvFormat(plans)
	})

	if output != CsvString(plans) {
		t.Errorf("CsvFormat output differs from CsvString")
	}
}

func TestCsvStringEmpty(t *testing.T) {
	csv := CsvString(nil)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	if len(lines) != 1 {
		t.Errorf("Expected only the header for no plans, got %d lines", len(lines))
	}
}
