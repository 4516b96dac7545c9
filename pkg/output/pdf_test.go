package output

import (
	"strings"
	"testing"
)

func TestPDFBytes(t *testing.T) {
	data, err := PDFBytes(samplePlans())
	if err != nil {
		t.Fatalf("PDFBytes() error = %v", err)
	}

	if !strings.HasPrefix(string(data[:8]), "%PDF-") {
		t.Errorf("PDFBytes() output does not start with a PDF header")
	}
	if len(data) < 1000 {
		t.Errorf("PDFBytes() output suspiciously small: %d bytes", len(data))
	}
}

func TestPDFBytesMultiplePlans(t *testing.T) {
	one, err := PDFBytes(samplePlans())
	if err != nil {
		t.Fatalf("PDFBytes() error = %v", err)
	}

	plans := append(samplePlans(), samplePlans()...)
	plans[1].Name = "Second Scenario"
	two, err := PDFBytes(plans)
	if err != nil {
		t.Fatalf("PDFBytes() error = %v", err)
	}

	if len(two) <= len(one) {
		t.Errorf("Expected a second scenario to grow the document: %d <= %d", len(two), len(one))
	}
}

func TestPDFBytesNoPlans(t *testing.T) {
	data, err := PDFBytes(nil)
	if err != nil {
		t.Fatalf("PDFBytes() error = %v", err)
	}
	if !strings.HasPrefix(string(data[:8]), "%PDF-") {
		t.Errorf("Empty document should still carry a PDF header")
	}
}
