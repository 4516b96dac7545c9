package schedule

import (
	"fmt"
	"time"

	"github.com/hwen6/loan-ledger/pkg/datetime"
	"go.uber.org/zap"
)

// applyPrepaymentMonth emits the rows for a period whose month contains the
// given prepayment. Ordering depends on where the prepayment date falls
// relative to the period's payment date.
func (s *simulation) applyPrepaymentMonth(prepay Prepayment, annualRate float64) error {
	s.logger.Debug(fmt.Sprintf("%s: applying prepayment %.2f in period %d",
		datetime.FormatDate(prepay.Date), prepay.Amount, s.period),
		zap.String("op", "schedule.Generate"),
	)
	if prepay.Date.Before(s.cursor) {
		return s.prepayBeforePayment(prepay, annualRate)
	}
	return s.prepayAfterPayment(prepay, annualRate)
}

// prepayBeforePayment handles a prepayment dated strictly before the
// period's payment date: the prepayment row comes first and the regular
// split is computed on the already-reduced balance.
func (s *simulation) prepayBeforePayment(prepay Prepayment, annualRate float64) error {
	interest := dailyInterest(s.balance, annualRate) * float64(accrualDays(s.cursor, prepay.Date))

	s.balance -= prepay.Amount
	s.append(Entry{
		Period:             s.period,
		Date:               prepay.Date,
		Kind:               RowPrepayment,
		Principal:          prepay.Amount,
		Interest:           interest,
		RemainingPrincipal: s.balance,
		TotalPayment:       prepay.Amount + interest,
	})

	principal, regularInterest, err := paymentSplit(s.loan, s.balance, annualRate)
	if err != nil {
		return err
	}
	s.append(Entry{
		Period:             s.period,
		Date:               s.cursor,
		Kind:               RowRegular,
		Principal:          principal,
		Interest:           regularInterest,
		RemainingPrincipal: s.balance - principal,
		TotalPayment:       principal + regularInterest,
	})
	s.balance -= principal
	return nil
}

// prepayAfterPayment handles a prepayment dated on or after the period's
// payment date: the regular row is applied first, the prepayment accrues
// daily interest on the post-payment balance, and the regular row is then
// edited retroactively so its balance shows the pre-prepayment value and
// its principal excludes the prepaid amount.
func (s *simulation) prepayAfterPayment(prepay Prepayment, annualRate float64) error {
	principal, interest, err := paymentSplit(s.loan, s.balance, annualRate)
	if err != nil {
		return err
	}
	regularIdx := len(s.rows)
	s.append(Entry{
		Period:             s.period,
		Date:               s.cursor,
		Kind:               RowRegular,
		Principal:          principal,
		Interest:           interest,
		RemainingPrincipal: s.balance - principal,
		TotalPayment:       principal + interest,
	})
	s.balance -= principal

	prepayInterest := dailyInterest(s.balance, annualRate) * float64(accrualDays(s.cursor, prepay.Date))
	s.balance -= prepay.Amount
	s.append(Entry{
		Period:             s.period,
		Date:               prepay.Date,
		Kind:               RowPrepayment,
		Principal:          prepay.Amount,
		Interest:           prepayInterest,
		RemainingPrincipal: s.balance,
		TotalPayment:       prepay.Amount + prepayInterest,
	})

	regular := &s.rows[regularIdx]
	regular.RemainingPrincipal = s.balance + prepay.Amount
	regular.Principal -= prepay.Amount
	regular.TotalPayment = regular.Principal + regular.Interest
	regular.CumulativePrincipal = s.loan.Principal - regular.RemainingPrincipal
	regular.CumulativeInterest += prepayInterest
	return nil
}

// accrualDays is the day count a prepayment accrues interest for, relative
// to the period's payment date. A prepayment on or before the payment date
// still accrues a single day.
func accrualDays(periodDate, prepayDate time.Time) int {
	days := datetime.DaysBetween(periodDate, prepayDate)
	if days < 1 {
		days = 1
	}
	return days
}
