// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/hwen6/loan-ledger/internal/planner"
)

// FindPlan finds a plan by scenario name in the results slice.
// Returns a pointer to the plan if found, nil otherwise.
func FindPlan(plans []planner.Plan, name string) *planner.Plan {
	for i := range plans {
		if plans[i].Name == name {
			return &plans[i]
		}
	}
	return nil
}
