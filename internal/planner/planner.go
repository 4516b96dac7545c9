// Package planner turns a configuration into per-scenario repayment plans.
package planner

import (
	"fmt"
	"time"

	"github.com/hwen6/loan-ledger/internal/config"
	"github.com/hwen6/loan-ledger/internal/metrics"
	"github.com/hwen6/loan-ledger/pkg/datetime"
	"github.com/hwen6/loan-ledger/pkg/mathutil"
	"github.com/hwen6/loan-ledger/pkg/schedule"
	"go.uber.org/zap"
)

// Plan holds one scenario's generated ledger and its headline numbers.
type Plan struct {
	Name        string
	Description string
	Rows        []schedule.Entry
	Summary     Summary
}

// Summary aggregates a ledger for quick comparison between scenarios.
type Summary struct {
	Periods        int    // scheduled payment periods reached
	Rows           int    // ledger rows, prepayments included
	PayoffDate     string // date of the final ledger row
	TotalPrincipal float64
	TotalInterest  float64
	TotalPaid      float64
}

// BuildPlans generates a Plan for every active scenario.
func BuildPlans(logger *zap.Logger, conf config.Configuration) ([]Plan, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	generator := schedule.NewGenerator(logger)

	var plans []Plan
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "planner.BuildPlans"),
			)
			continue
		}

		loan, err := conf.ToScheduleLoan(scenario)
		if err != nil {
			return plans, err
		}

		start := time.Now()
		rows, err := generator.Generate(loan)
		if err != nil {
			metrics.ObserveGenerate(string(loan.Method), metrics.ResultError, time.Since(start))
			return plans, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		metrics.ObserveGenerate(string(loan.Method), metrics.ResultSuccess, time.Since(start))
		metrics.ObserveLedgerRows(string(loan.Method), len(rows))

		logger.Debug(fmt.Sprintf("scenario %s produced %d ledger rows", scenario.Name, len(rows)),
			zap.String("op", "planner.BuildPlans"),
		)

		plans = append(plans, Plan{
			Name:        scenario.Name,
			Description: scenario.Description,
			Rows:        rows,
			Summary:     Summarize(rows),
		})
	}

	return plans, nil
}

// Summarize computes the headline numbers for a ledger.
func Summarize(rows []schedule.Entry) Summary {
	summary := Summary{Rows: len(rows)}

	for _, row := range rows {
		if row.Kind == schedule.RowRegular {
			summary.Periods++
		}
	}

	if len(rows) > 0 {
		last := rows[len(rows)-1]
		summary.PayoffDate = datetime.FormatDate(last.Date)
		summary.TotalPrincipal = last.CumulativePrincipal
		summary.TotalInterest = last.CumulativeInterest
		summary.TotalPaid = mathutil.Round(last.CumulativePrincipal + last.CumulativeInterest)
	}

	return summary
}
