package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/hwen6/loan-ledger/pkg/constants"
	"github.com/hwen6/loan-ledger/pkg/datetime"
	"go.uber.org/zap"
)

// simulation carries the whole state of one ledger run: the payment cursor,
// the period counter, the live balance, and the pending prepayment queue.
type simulation struct {
	loan          Loan
	timeline      RateTimeline
	pending       []Prepayment
	cursor        time.Time
	period        int
	balance       float64
	totalInterest float64
	lastRate      float64
	rows          []Entry
	logger        *zap.Logger
}

func newSimulation(loan Loan, logger *zap.Logger) *simulation {
	if logger == nil {
		logger = zap.NewNop()
	}
	pending := make([]Prepayment, len(loan.Prepayments))
	copy(pending, loan.Prepayments)
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Date.Before(pending[j].Date)
	})
	return &simulation{
		loan:     loan,
		timeline: NewRateTimeline(loan.AnnualRate, loan.RateChanges),
		pending:  pending,
		cursor:   loan.FirstPaymentDate,
		period:   1,
		balance:  loan.Principal,
		lastRate: loan.AnnualRate,
		logger:   logger,
	}
}

// run drives the simulation over periods 1..term until the balance is
// retired, clamping sub-cent residue to zero between periods.
func (s *simulation) run() ([]Entry, error) {
	for s.balance > 0 && s.period <= s.loan.TermMonths {
		annualRate := s.timeline.EffectiveRate(s.cursor)
		if annualRate != s.lastRate {
			s.logger.Debug(fmt.Sprintf("%s: annual rate changed from %.3f%% to %.3f%%",
				datetime.FormatDate(s.cursor), s.lastRate, annualRate),
				zap.String("op", "schedule.Generate"),
			)
			s.lastRate = annualRate
		}

		if err := s.step(annualRate); err != nil {
			return nil, err
		}

		if s.balance <= constants.BalanceEpsilon {
			s.balance = 0
		}
		if s.balance <= 0 {
			break
		}
		s.cursor = datetime.AddMonths(s.cursor, 1)
		s.period++
	}
	return s.rows, nil
}

// step emits the rows for the current period. Pending prepayments dated
// before the current month are discarded; at most one prepayment is applied
// per month, the first in date order, and any others left in the same month
// expire at the next period's window filter.
func (s *simulation) step(annualRate float64) error {
	monthStart := datetime.StartOfMonth(s.cursor)
	pending := s.pending[:0]
	for _, prepay := range s.pending {
		if !prepay.Date.Before(monthStart) {
			pending = append(pending, prepay)
		}
	}
	s.pending = pending

	handled := false
	for _, prepay := range s.pending {
		if handled {
			continue
		}
		if datetime.SameYearMonth(prepay.Date, s.cursor) {
			if prepay.Amount > 0 && s.balance > 0 {
				if err := s.applyPrepaymentMonth(prepay, annualRate); err != nil {
					return err
				}
				handled = true
			}
		} else {
			if err := s.applyRegularMonth(annualRate); err != nil {
				return err
			}
			handled = true
		}
	}
	if len(s.pending) == 0 && !handled {
		return s.applyRegularMonth(annualRate)
	}
	return nil
}

// applyRegularMonth emits the plain scheduled payment row for the period.
func (s *simulation) applyRegularMonth(annualRate float64) error {
	principal, interest, err := paymentSplit(s.loan, s.balance, annualRate)
	if err != nil {
		return err
	}
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
	return nil
}

// append records a row, filling the interim cumulative fields from the
// running totals. The finalizer recomputes both columns afterwards.
func (s *simulation) append(entry Entry) {
	s.totalInterest += entry.Interest
	entry.CumulativePrincipal = s.loan.Principal - entry.RemainingPrincipal
	entry.CumulativeInterest = s.totalInterest
	s.rows = append(s.rows, entry)
}
