// Package finance implements the calculator formulas: budget aggregation,
// compound growth with periodic contribution, and amortized loan payment.
// All functions are deterministic and side-effect free; rounding to two
// decimals is for display and applied only at the API boundary.
package finance

import "math"

// BudgetResult aggregates a monthly budget.
type BudgetResult struct {
	Income         float64 `json:"income"`
	TotalExpenses  float64 `json:"total_expenses"`
	Savings        float64 `json:"savings"`
	SavingsPercent float64 `json:"savings_percent"`
}

// Budget sums the expense categories against income. With zero income the
// savings percentage is defined as 0 rather than dividing by zero.
func Budget(income float64, expenses []float64) BudgetResult {
	var total float64
	for _, e := range expenses {
		total += e
	}
	savings := income - total

	var percent float64
	if income != 0 {
		percent = 100 * savings / income
	}

	return BudgetResult{
		Income:         income,
		TotalExpenses:  total,
		Savings:        savings,
		SavingsPercent: percent,
	}
}

// CompoundGrowth projects the future value of a principal plus a fixed
// monthly contribution at the given annual rate over the given years.
// The rate is a percentage (7 means 7%). With a zero rate the projection
// degenerates to principal plus the sum of contributions.
func CompoundGrowth(principal, monthlyContribution, annualRatePercent float64, years int) float64 {
	r := annualRatePercent / 100 / 12
	n := float64(years * 12)

	if r == 0 {
		return principal + monthlyContribution*n
	}

	growth := math.Pow(1+r, n)
	return principal*growth + monthlyContribution*(growth-1)/r
}

// LoanPayment computes the fixed monthly payment that amortizes principal
// at the given annual rate over the given years. A zero rate splits the
// principal evenly across the term.
func LoanPayment(principal, annualRatePercent float64, years int) float64 {
	r := annualRatePercent / 100 / 12
	n := float64(years * 12)
	if n == 0 {
		return 0
	}

	if r == 0 {
		return principal / n
	}

	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}

// Round2 rounds to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
