// Package config defines conversion utilities for configuration objects.
package config

import (
	"fmt"

	"github.com/hwen6/loan-ledger/pkg/datetime"
	"github.com/hwen6/loan-ledger/pkg/rates"
	"github.com/hwen6/loan-ledger/pkg/schedule"
)

// ToScheduleLoan resolves the shared loan terms plus one scenario into the
// loan the schedule generator consumes. Scenarios on the published rate table
// have their manual rate changes replaced by the aligned table entries.
func (c *Configuration) ToScheduleLoan(scenario Scenario) (schedule.Loan, error) {
	firstPayment, err := datetime.ParseDate(c.Loan.FirstPaymentDate)
	if err != nil {
		return schedule.Loan{}, fmt.Errorf("invalid firstPaymentDate %q: %w", c.Loan.FirstPaymentDate, err)
	}

	method, err := schedule.ParseMethod(c.Loan.Method)
	if err != nil {
		return schedule.Loan{}, err
	}

	loan := schedule.Loan{
		Principal:        c.Loan.Principal,
		TermMonths:       c.Loan.TermMonths(),
		FirstPaymentDate: firstPayment,
		AnnualRate:       c.Loan.AnnualRate,
		Method:           method,
	}

	if scenario.UseNationalRates {
		basis, err := rates.ParseBasis(scenario.RateAdjustmentBasis)
		if err != nil {
			return schedule.Loan{}, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		changes, err := rates.TimelineFor(scenario.FirstHome, c.Loan.TermYears, basis, firstPayment)
		if err != nil {
			return schedule.Loan{}, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		loan.RateChanges = changes
	} else {
		for _, change := range scenario.RateChanges {
			date, err := datetime.ParseDate(change.Date)
			if err != nil {
				return schedule.Loan{}, fmt.Errorf("scenario %q: invalid rate change date %q: %w", scenario.Name, change.Date, err)
			}
			loan.RateChanges = append(loan.RateChanges, schedule.RateChange{
				Date:       date,
				AnnualRate: change.Rate,
			})
		}
	}

	for _, prepayment := range scenario.Prepayments {
		date, err := datetime.ParseDate(prepayment.Date)
		if err != nil {
			return schedule.Loan{}, fmt.Errorf("scenario %q: invalid prepayment date %q: %w", scenario.Name, prepayment.Date, err)
		}
		loan.Prepayments = append(loan.Prepayments, schedule.Prepayment{
			Date:   date,
			Amount: prepayment.Amount,
		})
	}

	return loan, nil
}
