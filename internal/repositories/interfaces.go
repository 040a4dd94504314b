// file: internal/repositories/interfaces.go
package repositories

import (
	"context"
	"errors"

	"finlit/internal/models"

	"github.com/gofrs/uuid"
)

// ErrNotFound is returned when a requested row does not exist. For ledger
// and profile reads it can be transient: a freshly registered user's rows
// may lag the account row, which is what the service-level retry absorbs.
var ErrNotFound = errors.New("repositories: not found")

// UserRepository manages account and profile rows.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, fullName *string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// SessionRepository manages server-side login sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	Invalidate(ctx context.Context, token string) error
	InvalidateAllForUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// ProgressRepository manages the gamification ledger and its auxiliary
// completion records.
type ProgressRepository interface {
	Create(ctx context.Context, p *models.UserProgress) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProgress, error)
	Update(ctx context.Context, p *models.UserProgress) error
	UpsertLessonCompletion(ctx context.Context, userID, lessonID uuid.UUID) error
	IsLessonCompleted(ctx context.Context, userID, lessonID uuid.UUID) (bool, error)
	CreateQuizAttempt(ctx context.Context, attempt *models.QuizAttempt) error
	ListQuizAttempts(ctx context.Context, userID uuid.UUID, limit int) ([]*models.QuizAttempt, error)
	DeleteAuxiliaryRecords(ctx context.Context, userID uuid.UUID) error
}

// CourseRepository reads the published catalog.
type CourseRepository interface {
	ListPublished(ctx context.Context, level *models.Level) ([]*models.Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	GetModules(ctx context.Context, courseID uuid.UUID) ([]*models.CourseModule, error)
	GetLessons(ctx context.Context, moduleID uuid.UUID) ([]*models.CourseLesson, error)
	GetLessonByID(ctx context.Context, lessonID uuid.UUID) (*models.CourseLesson, error)
	GetQuizQuestions(ctx context.Context, courseID uuid.UUID) ([]*models.QuizQuestion, error)
	UnitTiers(ctx context.Context) (map[string]models.Level, error)
}

// ContentRepository reads the supplemental content feeds.
type ContentRepository interface {
	ListGlossaryTerms(ctx context.Context, category *string) ([]*models.GlossaryTerm, error)
	ListNewsItems(ctx context.Context, limit int) ([]*models.NewsItem, error)
}
