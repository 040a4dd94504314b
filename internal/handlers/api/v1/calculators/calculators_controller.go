// file: internal/handlers/api/v1/calculators/calculators_controller.go
package calculators

import (
	"encoding/json"
	"net/http"

	"finlit/internal/response"
	"finlit/internal/services"

	"go.uber.org/zap"
)

// Controller serves the financial calculator endpoints. The calculators
// are stateless and require no session.
type Controller struct {
	calculators services.CalculatorService
	logger      *zap.Logger
	builder     *response.Builder
}

// NewController creates the calculators controller.
func NewController(calculators services.CalculatorService, logger *zap.Logger, builder *response.Builder) *Controller {
	return &Controller{calculators: calculators, logger: logger, builder: builder}
}

// Budget handles POST /api/v1/calculators/budget.
func (c *Controller) Budget(w http.ResponseWriter, r *http.Request) {
	var req services.BudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	result, err := c.calculators.Budget(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, result)
}

// CompoundGrowth handles POST /api/v1/calculators/compound-growth.
func (c *Controller) CompoundGrowth(w http.ResponseWriter, r *http.Request) {
	var req services.CompoundGrowthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	result, err := c.calculators.CompoundGrowth(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, result)
}

// LoanPayment handles POST /api/v1/calculators/loan-payment.
func (c *Controller) LoanPayment(w http.ResponseWriter, r *http.Request) {
	var req services.LoanPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	result, err := c.calculators.LoanPayment(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, result)
}
