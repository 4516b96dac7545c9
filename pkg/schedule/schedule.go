// Package schedule provides loan repayment ledger generation.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrUnsupportedMethod indicates a repayment method tag outside the two
// supported variants.
var ErrUnsupportedMethod = errors.New("unsupported repayment method")

// Method selects how a regular payment splits into principal and interest.
type Method string

const (
	// MethodEqualPrincipal repays a constant principal share each month.
	MethodEqualPrincipal Method = "equalPrincipal"

	// MethodEqualInstallment repays a constant total installment each month.
	MethodEqualInstallment Method = "equalInstallment"
)

// ParseMethod resolves a method tag, case-insensitively, to one of the
// supported variants.
func ParseMethod(value string) (Method, error) {
	switch {
	case strings.EqualFold(value, string(MethodEqualPrincipal)):
		return MethodEqualPrincipal, nil
	case strings.EqualFold(value, string(MethodEqualInstallment)):
		return MethodEqualInstallment, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, value)
	}
}

// RowKind distinguishes scheduled payments from one-off prepayments.
type RowKind string

const (
	// RowRegular is a scheduled monthly payment.
	RowRegular RowKind = "regular"

	// RowPrepayment is a one-off extra principal payment.
	RowPrepayment RowKind = "prepayment"
)

// RateChange is one step of a piecewise-constant rate timeline.
type RateChange struct {
	Date       time.Time
	AnnualRate float64 // percent, e.g. 3.25
}

// Prepayment is a dated one-off principal payment.
type Prepayment struct {
	Date   time.Time
	Amount float64
}

// Entry is one row of the repayment ledger. The cumulative fields hold
// interim running values during simulation and are overwritten
// authoritatively by the finalizer.
type Entry struct {
	Period              int
	Date                time.Time
	Kind                RowKind
	Principal           float64
	Interest            float64
	RemainingPrincipal  float64
	CumulativePrincipal float64
	CumulativeInterest  float64
	TotalPayment        float64
}

// Loan holds the parameters for one loan.
type Loan struct {
	Principal        float64
	TermMonths       int
	FirstPaymentDate time.Time
	AnnualRate       float64 // initial annual rate, percent
	Method           Method
	RateChanges      []RateChange
	Prepayments      []Prepayment
}

// Generator produces repayment ledgers for loans.
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a new generator instance.
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger}
}

// Generate simulates the loan month by month and returns the finalized
// ledger. The caller's rate-change and prepayment slices are never mutated.
func (g *Generator) Generate(loan Loan) ([]Entry, error) {
	method, err := ParseMethod(string(loan.Method))
	if err != nil {
		return nil, err
	}
	loan.Method = method

	g.logger.Debug(fmt.Sprintf("generating %s ledger for %.2f over %d months",
		loan.Method, loan.Principal, loan.TermMonths),
		zap.String("op", "schedule.Generate"),
	)

	sim := newSimulation(loan, g.logger)
	rows, err := sim.run()
	if err != nil {
		return nil, err
	}
	finalize(rows, loan.Principal)
	return rows, nil
}
