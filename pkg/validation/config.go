// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/hwen6/loan-ledger/pkg/datetime"
)

// RateChangePoint is a rate change as it appears in configuration, with the
// date still in string form.
type RateChangePoint struct {
	Date string
	Rate float64
}

// PrepaymentPoint is a one-off prepayment as it appears in configuration.
type PrepaymentPoint struct {
	Date   string
	Amount float64
}

// LoanProfile carries the loan fields the warning checks need.
type LoanProfile struct {
	Principal        float64
	TermMonths       int
	FirstPaymentDate string
}

// ScenarioProfile carries the per-scenario fields the warning checks need.
type ScenarioProfile struct {
	Name             string
	Active           bool
	UseNationalRates bool
	RateChanges      []RateChangePoint
	Prepayments      []PrepaymentPoint
}

// ValidatePrepayments flags prepayments the simulation will ignore or that
// look implausible. Entries with unparsable dates are skipped; those surface
// as hard errors elsewhere.
func ValidatePrepayments(scenarioName string, loan LoanProfile, prepayments []PrepaymentPoint) []string {
	var warnings []string

	firstPayment, err := datetime.ParseDate(loan.FirstPaymentDate)
	if err != nil {
		return warnings
	}
	windowStart := datetime.StartOfMonth(firstPayment)
	maturity := datetime.AddMonths(firstPayment, loan.TermMonths-1)

	for _, prepayment := range prepayments {
		if prepayment.Amount <= 0 {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' prepayment on %s has non-positive amount %.2f and will be skipped",
				scenarioName, prepayment.Date, prepayment.Amount))
		}
		if loan.Principal > 0 && prepayment.Amount >= loan.Principal {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' prepayment on %s meets or exceeds the loan principal (%.2f >= %.2f)",
				scenarioName, prepayment.Date, prepayment.Amount, loan.Principal))
		}

		date, err := datetime.ParseDate(prepayment.Date)
		if err != nil {
			continue
		}
		if date.Before(windowStart) {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' prepayment on %s falls before the first payment month and will be ignored",
				scenarioName, prepayment.Date))
		}
		if date.After(maturity) {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' prepayment on %s falls after the scheduled final payment (%s)",
				scenarioName, prepayment.Date, datetime.FormatDate(maturity)))
		}
	}

	return warnings
}

// ValidateRateChanges flags suspicious rate change entries. Entries with
// unparsable dates are skipped; those surface as hard errors elsewhere.
func ValidateRateChanges(scenarioName string, loan LoanProfile, changes []RateChangePoint) []string {
	var warnings []string

	firstPayment, firstErr := datetime.ParseDate(loan.FirstPaymentDate)
	seen := make(map[string]bool)

	for _, change := range changes {
		if change.Rate < 0 {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' rate change on %s has negative rate %.3f",
				scenarioName, change.Date, change.Rate))
		}
		if seen[change.Date] {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' has duplicate rate changes on %s; the later entry wins",
				scenarioName, change.Date))
		}
		seen[change.Date] = true

		date, err := datetime.ParseDate(change.Date)
		if err != nil || firstErr != nil {
			continue
		}
		if !date.After(firstPayment) {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' rate change on %s is not after the first payment date and overrides the initial annual rate",
				scenarioName, change.Date))
		}
	}

	return warnings
}

// ConfigValidator runs the warning checks over a full configuration.
type ConfigValidator struct {
	Loan      LoanProfile
	Scenarios []ScenarioProfile
}

// ValidateAll validates the entire configuration and returns warnings.
// Inactive scenarios are skipped.
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	for _, scenario := range cv.Scenarios {
		if !scenario.Active {
			continue
		}

		if scenario.UseNationalRates {
			if len(scenario.RateChanges) > 0 {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s' uses the published rate table; its manual rate changes are replaced",
					scenario.Name))
			}
		} else {
			warnings = append(warnings, ValidateRateChanges(scenario.Name, cv.Loan, scenario.RateChanges)...)
		}

		warnings = append(warnings, ValidatePrepayments(scenario.Name, cv.Loan, scenario.Prepayments)...)
	}

	return warnings
}
