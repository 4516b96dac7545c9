package schedule

import (
	"math"

	"github.com/hwen6/loan-ledger/pkg/constants"
	"github.com/hwen6/loan-ledger/pkg/mathutil"
)

// finalize reconciles a ledger in place. Cumulative columns become running
// sums over the rows, total payment is recomputed per row, the last row is
// adjusted so the loan retires exactly, and every currency field is rounded
// for presentation. Cumulative values carry six decimal places before the
// final two-decimal rounding.
func finalize(rows []Entry, loanPrincipal float64) {
	if len(rows) == 0 {
		return
	}

	cumPrincipal := 0.00
	cumInterest := 0.00
	for i := range rows {
		cumPrincipal += rows[i].Principal
		cumInterest += rows[i].Interest
		rows[i].CumulativePrincipal = mathutil.RoundTo(cumPrincipal, constants.CumulativePrecision)
		rows[i].CumulativeInterest = mathutil.RoundTo(cumInterest, constants.CumulativePrecision)
		rows[i].TotalPayment = rows[i].Principal + rows[i].Interest
	}

	last := &rows[len(rows)-1]
	if math.Abs(last.RemainingPrincipal) > constants.ResidualTolerance {
		last.Principal += last.RemainingPrincipal
		last.TotalPayment = last.Principal + last.Interest
		last.CumulativePrincipal = loanPrincipal
	}
	last.RemainingPrincipal = 0.00

	for i := range rows {
		rows[i].Principal = mathutil.Round(rows[i].Principal)
		rows[i].Interest = mathutil.Round(rows[i].Interest)
		rows[i].RemainingPrincipal = mathutil.Round(rows[i].RemainingPrincipal)
		rows[i].CumulativePrincipal = mathutil.Round(rows[i].CumulativePrincipal)
		rows[i].CumulativeInterest = mathutil.Round(rows[i].CumulativeInterest)
		rows[i].TotalPayment = mathutil.Round(rows[i].TotalPayment)
	}
}
