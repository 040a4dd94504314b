// file: internal/services/calculator_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetCalculator(t *testing.T) {
	svc := NewCalculatorService()

	result, err := svc.Budget(context.Background(), &BudgetRequest{
		Income:   3000,
		Expenses: []float64{1200, 450, 300},
	})
	require.NoError(t, err)
	assert.Equal(t, 1950.0, result.TotalExpenses)
	assert.Equal(t, 1050.0, result.Savings)
	assert.Equal(t, 35.0, result.SavingsPercent)
}

func TestBudgetCalculatorZeroIncome(t *testing.T) {
	svc := NewCalculatorService()

	result, err := svc.Budget(context.Background(), &BudgetRequest{
		Income:   0,
		Expenses: []float64{100},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.SavingsPercent, "zero income must not divide by zero")
	assert.Equal(t, -100.0, result.Savings)
}

func TestCompoundGrowthCalculator(t *testing.T) {
	svc := NewCalculatorService()

	result, err := svc.CompoundGrowth(context.Background(), &CompoundGrowthRequest{
		Principal:           1000,
		MonthlyContribution: 200,
		AnnualRatePercent:   7,
		Years:               20,
	})
	require.NoError(t, err)
	assert.InDelta(t, 108224.07, result.FutureValue, 0.01)
	assert.Equal(t, 49000.0, result.TotalContributed)
	assert.InDelta(t, 59224.07, result.InterestEarned, 0.01)
}

func TestLoanPaymentCalculator(t *testing.T) {
	svc := NewCalculatorService()

	result, err := svc.LoanPayment(context.Background(), &LoanPaymentRequest{
		Principal:         150000,
		AnnualRatePercent: 3.5,
		Years:             25,
	})
	require.NoError(t, err)
	assert.InDelta(t, 750.94, result.MonthlyPayment, 0.01)
	assert.InDelta(t, 225281.63, result.TotalPaid, 1.0)
}

func TestCalculatorsRejectInvalidInput(t *testing.T) {
	svc := NewCalculatorService()

	_, err := svc.LoanPayment(context.Background(), &LoanPaymentRequest{
		Principal:         -1,
		AnnualRatePercent: 3.5,
		Years:             10,
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	_, err = svc.CompoundGrowth(context.Background(), &CompoundGrowthRequest{
		Principal:         1000,
		AnnualRatePercent: 7,
		Years:             0,
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}
