// file: internal/services/types.go
package services

import (
	"time"

	"finlit/internal/models"
	"finlit/internal/progress"

	"github.com/gofrs/uuid"
)

// ===============================
// AUTH TYPES
// ===============================

// RegisterRequest carries a new account registration.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email,max=320"`
	Password string  `json:"password" validate:"required"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=150"`
}

// LoginRequest carries a credentials login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned from register and login.
type AuthResponse struct {
	User        *models.User `json:"user"`
	Token       string       `json:"token"`
	SessionType string       `json:"session_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// SessionInfo describes the session behind a bearer token.
type SessionInfo struct {
	User      *models.User `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// UpdateProfileRequest mutates the profile record.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,max=150"`
}

// ===============================
// PROGRESS TYPES
// ===============================

// UpdateProgressRequest patches the ledger's mutable display fields. Only
// the tier pointer is client-settable, and only to a tier already unlocked.
type UpdateProgressRequest struct {
	Level *models.Level `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// RecordCompletionRequest marks a unit completed with a points award.
type RecordCompletionRequest struct {
	UnitID string `json:"unit_id" validate:"required,max=120"`
	Points int    `json:"points" validate:"gte=0,lte=1000"`
}

// ProgressResponse is the ledger row plus its derived display fields.
type ProgressResponse struct {
	Progress      *models.UserProgress `json:"progress"`
	Rank          string               `json:"rank"`
	NextRankAt    *int                 `json:"next_rank_at,omitempty"`
	EarnedBadges  []models.Badge       `json:"earned_badges"`
	BadgeCatalog  []models.Badge       `json:"badge_catalog"`
}

// CompletionResponse reports the outcome of a completion event.
type CompletionResponse struct {
	Applied      bool                 `json:"applied"`
	PointsEarned int                  `json:"points_earned"`
	NewBadges    []string             `json:"new_badges"`
	Progress     *models.UserProgress `json:"progress"`
	Unlocks      progress.UnlockState `json:"unlocks"`
}

// QuizAttemptRequest submits the selected option index per question, in
// question order. -1 marks a question left unanswered.
type QuizAttemptRequest struct {
	CourseID uuid.UUID `json:"course_id" validate:"required"`
	Selected []int     `json:"selected" validate:"required,dive,gte=-1,lte=15"`
}

// QuizAttemptResponse reports the server-side score and its ledger effect.
type QuizAttemptResponse struct {
	Score        int                  `json:"score"`
	Total        int                  `json:"total_questions"`
	PointsEarned int                  `json:"points_earned"`
	Applied      bool                 `json:"applied"`
	Progress     *models.UserProgress `json:"progress"`
}

// ===============================
// CALCULATOR TYPES
// ===============================

// BudgetRequest carries monthly income and expense categories.
type BudgetRequest struct {
	Income   float64   `json:"income" validate:"gte=0"`
	Expenses []float64 `json:"expenses" validate:"required,dive,gte=0"`
}

// CompoundGrowthRequest projects savings growth.
type CompoundGrowthRequest struct {
	Principal           float64 `json:"principal" validate:"gte=0"`
	MonthlyContribution float64 `json:"monthly_contribution" validate:"gte=0"`
	AnnualRatePercent   float64 `json:"annual_rate_percent" validate:"gte=0,lte=100"`
	Years               int     `json:"years" validate:"gte=1,lte=100"`
}

// CompoundGrowthResponse reports the projection, display-rounded.
type CompoundGrowthResponse struct {
	FutureValue      float64 `json:"future_value"`
	TotalContributed float64 `json:"total_contributed"`
	InterestEarned   float64 `json:"interest_earned"`
}

// LoanPaymentRequest amortizes a loan.
type LoanPaymentRequest struct {
	Principal         float64 `json:"principal" validate:"gt=0"`
	AnnualRatePercent float64 `json:"annual_rate_percent" validate:"gte=0,lte=100"`
	Years             int     `json:"years" validate:"gte=1,lte=50"`
}

// LoanPaymentResponse reports the fixed payment, display-rounded.
type LoanPaymentResponse struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPaid      float64 `json:"total_paid"`
	TotalInterest  float64 `json:"total_interest"`
}
