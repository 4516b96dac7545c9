package schedule

import (
	"fmt"
	"math"

	"github.com/hwen6/loan-ledger/pkg/constants"
)

// CalculateInstallment calculates the constant monthly installment for a
// loan using the standard annuity formula.
func CalculateInstallment(principal, annualRate float64, termMonths int) float64 {
	if annualRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	monthlyRate := annualRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow(1.00+monthlyRate, float64(termMonths))
	discountFactor := (power - 1.00) / power
	return principal * monthlyRate / discountFactor
}

// CalculateInterest calculates the monthly interest accrued on a balance.
func CalculateInterest(remainingPrincipal, annualRate float64) float64 {
	return remainingPrincipal * annualRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// dailyInterest is the one-day interest accrual on a balance, on a 365-day
// basis.
func dailyInterest(remainingPrincipal, annualRate float64) float64 {
	return remainingPrincipal * annualRate / constants.PercentageMultiplier / constants.DaysPerYear
}

// paymentSplit computes the principal and interest portions of one regular
// payment against the given balance. The equal-installment variant derives
// both the installment and its interest from the loan's initial rate: rate
// changes on the timeline never reprice an equal-installment ledger.
func paymentSplit(loan Loan, remainingPrincipal, annualRate float64) (principal, interest float64, err error) {
	switch loan.Method {
	case MethodEqualPrincipal:
		principal = loan.Principal / float64(loan.TermMonths)
		interest = CalculateInterest(remainingPrincipal, annualRate)
	case MethodEqualInstallment:
		installment := CalculateInstallment(loan.Principal, loan.AnnualRate, loan.TermMonths)
		interest = CalculateInterest(remainingPrincipal, loan.AnnualRate)
		principal = installment - interest
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnsupportedMethod, loan.Method)
	}
	return principal, interest, nil
}
