// file: internal/services/interfaces.go
package services

import (
	"context"

	"finlit/internal/finance"
	"finlit/internal/models"
	"finlit/internal/progress"

	"github.com/gofrs/uuid"
)

// AuthService owns identity: registration, login, logout, session
// introspection and profile updates.
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	Logout(ctx context.Context, token string) error
	GetSession(ctx context.Context, token string) (*SessionInfo, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error)
}

// ProgressService owns the gamification ledger and its derived views.
type ProgressService interface {
	GetProgress(ctx context.Context, userID uuid.UUID) (*ProgressResponse, error)
	UpdateProgress(ctx context.Context, userID uuid.UUID, req *UpdateProgressRequest) (*ProgressResponse, error)
	RecordCompletion(ctx context.Context, userID uuid.UUID, req *RecordCompletionRequest) (*CompletionResponse, error)
	ResetProgress(ctx context.Context, userID uuid.UUID) (*ProgressResponse, error)
	GetUnlocks(ctx context.Context, userID uuid.UUID) (*progress.UnlockState, error)
	CompleteLesson(ctx context.Context, userID, lessonID uuid.UUID) (*CompletionResponse, error)
	IsLessonCompleted(ctx context.Context, userID, lessonID uuid.UUID) (bool, error)
	SubmitQuizAttempt(ctx context.Context, userID uuid.UUID, req *QuizAttemptRequest) (*QuizAttemptResponse, error)
	QuizAttemptHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*models.QuizAttempt, error)
}

// CatalogService serves the published course catalog and supplemental
// content, read-through cached.
type CatalogService interface {
	ListCourses(ctx context.Context, level *models.Level) ([]*models.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error)
	GetQuiz(ctx context.Context, courseID uuid.UUID) ([]*models.QuizQuestion, error)
	ListGlossaryTerms(ctx context.Context, category *string) ([]*models.GlossaryTerm, error)
	ListNewsItems(ctx context.Context, limit int) ([]*models.NewsItem, error)
}

// CalculatorService evaluates the financial calculators. Stateless; it
// exists so validation and display rounding live in one place.
type CalculatorService interface {
	Budget(ctx context.Context, req *BudgetRequest) (*finance.BudgetResult, error)
	CompoundGrowth(ctx context.Context, req *CompoundGrowthRequest) (*CompoundGrowthResponse, error)
	LoanPayment(ctx context.Context, req *LoanPaymentRequest) (*LoanPaymentResponse, error)
}

// EmailService is the delivery seam for transactional mail. The default
// implementation only logs; nothing in scope sends real mail.
type EmailService interface {
	SendWelcomeEmail(ctx context.Context, to string, fullName string) error
}
