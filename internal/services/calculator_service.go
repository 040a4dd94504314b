// file: internal/services/calculator_service.go
package services

import (
	"context"

	"finlit/internal/finance"
	"finlit/internal/validation"

	"github.com/go-playground/validator/v10"
)

// calculatorService implements CalculatorService as a thin validated shell
// over the pure formulas in internal/finance. Results are rounded to two
// decimals here because this is the display boundary.
type calculatorService struct {
	validate *validator.Validate
}

// NewCalculatorService creates the calculator service.
func NewCalculatorService() CalculatorService {
	return &calculatorService{validate: validation.New()}
}

// Budget aggregates income against expense categories.
func (s *calculatorService) Budget(ctx context.Context, req *BudgetRequest) (*finance.BudgetResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid budget request", err)
	}

	result := finance.Budget(req.Income, req.Expenses)
	result.Income = finance.Round2(result.Income)
	result.TotalExpenses = finance.Round2(result.TotalExpenses)
	result.Savings = finance.Round2(result.Savings)
	result.SavingsPercent = finance.Round2(result.SavingsPercent)
	return &result, nil
}

// CompoundGrowth projects savings growth with monthly contributions.
func (s *calculatorService) CompoundGrowth(ctx context.Context, req *CompoundGrowthRequest) (*CompoundGrowthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid growth request", err)
	}

	future := finance.CompoundGrowth(req.Principal, req.MonthlyContribution, req.AnnualRatePercent, req.Years)
	contributed := req.Principal + req.MonthlyContribution*float64(req.Years*12)
	return &CompoundGrowthResponse{
		FutureValue:      finance.Round2(future),
		TotalContributed: finance.Round2(contributed),
		InterestEarned:   finance.Round2(future - contributed),
	}, nil
}

// LoanPayment amortizes a loan into a fixed monthly payment.
func (s *calculatorService) LoanPayment(ctx context.Context, req *LoanPaymentRequest) (*LoanPaymentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid loan request", err)
	}

	payment := finance.LoanPayment(req.Principal, req.AnnualRatePercent, req.Years)
	total := payment * float64(req.Years*12)
	return &LoanPaymentResponse{
		MonthlyPayment: finance.Round2(payment),
		TotalPaid:      finance.Round2(total),
		TotalInterest:  finance.Round2(total - req.Principal),
	}, nil
}
