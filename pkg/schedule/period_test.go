package schedule

import (
	"errors"
	"math"
	"testing"
)

func TestCalculateInstallment(t *testing.T) {
	tests := []struct {
		name       string
		principal  float64
		annualRate float64
		termMonths int
		expected   float64
	}{
		{"Standard 30-year loan", 400000, 3.25, 360, 1740.83},
		{"Short 1-year loan", 10000, 3.25, 12, 848.08},
		{"Zero interest divides evenly", 12000, 0, 12, 1000.00},
		{"Higher rate", 400000, 4.00, 360, 1909.66},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInstallment(tt.principal, tt.annualRate, tt.termMonths)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateInstallment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestCalculateInterest(t *testing.T) {
	tests := []struct {
		name               string
		remainingPrincipal float64
		annualRate         float64
		expected           float64
	}{
		{"Full balance at initial rate", 400000, 3.25, 1083.33},
		{"Reduced balance", 336666.67, 3.25, 911.81},
		{"Zero balance", 0, 3.25, 0.00},
		{"Zero rate", 400000, 0, 0.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInterest(tt.remainingPrincipal, tt.annualRate)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateInterest() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestPaymentSplit(t *testing.T) {
	loan := Loan{Principal: 400000, TermMonths: 360, AnnualRate: 3.25}

	tests := []struct {
		name              string
		method            Method
		balance           float64
		annualRate        float64
		expectedPrincipal float64
		expectedInterest  float64
	}{
		{"Equal principal on full balance", MethodEqualPrincipal, 400000, 3.25, 1111.11, 1083.33},
		{"Equal principal uses current rate", MethodEqualPrincipal, 395555.56, 3.10, 1111.11, 1021.85},
		{"Equal installment on full balance", MethodEqualInstallment, 400000, 3.25, 657.49, 1083.33},
		{"Equal installment ignores current rate", MethodEqualInstallment, 400000, 9.99, 657.49, 1083.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := loan
			loan.Method = tt.method
			principal, interest, err := paymentSplit(loan, tt.balance, tt.annualRate)
			if err != nil {
				t.Fatalf("paymentSplit() error = %v", err)
			}
			if math.Abs(principal-tt.expectedPrincipal) > 0.01 {
				t.Errorf("paymentSplit() principal = %.2f, expected %.2f", principal, tt.expectedPrincipal)
			}
			if math.Abs(interest-tt.expectedInterest) > 0.01 {
				t.Errorf("paymentSplit() interest = %.2f, expected %.2f", interest, tt.expectedInterest)
			}
		})
	}
}

func TestPaymentSplitUnsupportedMethod(t *testing.T) {
	loan := Loan{Principal: 400000, TermMonths: 360, AnnualRate: 3.25, Method: Method("bullet")}
	if _, _, err := paymentSplit(loan, 400000, 3.25); !errors.Is(err, ErrUnsupportedMethod) {
		t.Errorf("paymentSplit() error = %v, expected ErrUnsupportedMethod", err)
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Method
		wantErr  bool
	}{
		{"Equal principal", "equalPrincipal", MethodEqualPrincipal, false},
		{"Equal installment", "equalInstallment", MethodEqualInstallment, false},
		{"Case insensitive", "EQUALPRINCIPAL", MethodEqualPrincipal, false},
		{"Mixed case", "EqualInstallment", MethodEqualInstallment, false},
		{"Unknown method", "interestOnly", "", true},
		{"Empty string", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseMethod(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedMethod) {
					t.Fatalf("ParseMethod(%q) error = %v, expected ErrUnsupportedMethod", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMethod(%q) error = %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("ParseMethod(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}
