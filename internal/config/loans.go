// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"

	"github.com/hwen6/loan-ledger/pkg/constants"
	"github.com/hwen6/loan-ledger/pkg/datetime"
	"github.com/hwen6/loan-ledger/pkg/rates"
	"github.com/hwen6/loan-ledger/pkg/schedule"
)

// Loan holds the loan terms shared by all scenarios.
type Loan struct {
	Principal        float64
	TermYears        int
	FirstPaymentDate string
	AnnualRate       float64
	Method           string // equalPrincipal or equalInstallment
}

// TermMonths returns the loan term in months.
func (l *Loan) TermMonths() int {
	return l.TermYears * constants.MonthsPerYear
}

// Scenario holds the rate timeline and prepayments for one candidate plan.
type Scenario struct {
	Name                string
	Active              bool
	Description         string
	RateChanges         []RateChange
	Prepayments         []Prepayment
	UseNationalRates    bool
	FirstHome           bool
	RateAdjustmentBasis string // januaryFirst or anniversary
}

// RateChange is one repricing point in a scenario's rate timeline.
type RateChange struct {
	Date string
	Rate float64
}

// Prepayment is a dated one-off extra principal payment.
type Prepayment struct {
	Date   string
	Amount float64
}

// Validate performs hard validation of the configuration. Violations here are
// errors; see ValidateConfiguration for the advisory warnings.
func (c *Configuration) Validate() error {
	if c.Loan.Principal <= 0 {
		return fmt.Errorf("loan principal must be positive, got %.2f", c.Loan.Principal)
	}
	if c.Loan.TermYears <= 0 {
		return fmt.Errorf("loan termYears must be positive, got %d", c.Loan.TermYears)
	}
	if c.Loan.AnnualRate < 0 {
		return fmt.Errorf("loan annualRate must not be negative, got %.3f", c.Loan.AnnualRate)
	}
	if _, err := datetime.ParseDate(c.Loan.FirstPaymentDate); err != nil {
		return fmt.Errorf("invalid firstPaymentDate %q: %w", c.Loan.FirstPaymentDate, err)
	}
	if _, err := schedule.ParseMethod(c.Loan.Method); err != nil {
		return err
	}

	for _, scenario := range c.Scenarios {
		if !scenario.Active {
			continue
		}
		if scenario.UseNationalRates {
			if _, err := rates.ParseBasis(scenario.RateAdjustmentBasis); err != nil {
				return fmt.Errorf("scenario %q: %w", scenario.Name, err)
			}
		} else {
			for _, change := range scenario.RateChanges {
				if _, err := datetime.ParseDate(change.Date); err != nil {
					return fmt.Errorf("scenario %q: invalid rate change date %q: %w", scenario.Name, change.Date, err)
				}
			}
		}
		for _, prepayment := range scenario.Prepayments {
			if _, err := datetime.ParseDate(prepayment.Date); err != nil {
				return fmt.Errorf("scenario %q: invalid prepayment date %q: %w", scenario.Name, prepayment.Date, err)
			}
		}
	}

	return nil
}
