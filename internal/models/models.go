// file: internal/models/models.go
package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// ===============================
// LEVELS
// ===============================

// Level identifies a content tier. Catalog rows and ledger rows share the
// same three tiers; the "master" display rank exists only as a points
// threshold on the profile page and never appears in the catalog.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Valid reports whether l is one of the three catalog tiers.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// ===============================
// IDENTITY
// ===============================

// User represents an authenticated account with its profile record.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email" validate:"required,email,max=320"`
	FullName     *string   `json:"full_name,omitempty" db:"full_name" validate:"omitempty,max=150"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Session represents a server-side login session backing a bearer token.
type Session struct {
	ID           int64     `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	SessionToken string    `json:"-" db:"session_token"`
	ExpiresAt    time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	IsActive     bool      `json:"is_active" db:"is_active"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// ===============================
// PROGRESS LEDGER
// ===============================

// UserProgress is the per-user gamification ledger: one row per account,
// created at registration and mutated only through completion and reset
// operations.
type UserProgress struct {
	ID             int64     `json:"id" db:"id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	Level          Level     `json:"level" db:"level"`
	CompletedUnits []string  `json:"completed_units" db:"completed_units"`
	Badges         []string  `json:"badges" db:"badges"`
	TotalPoints    int       `json:"total_points" db:"total_points"`
	CurrentStreak  int       `json:"current_streak" db:"current_streak"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// HasCompleted reports whether unitID is already in the completed set.
func (p *UserProgress) HasCompleted(unitID string) bool {
	for _, u := range p.CompletedUnits {
		if u == unitID {
			return true
		}
	}
	return false
}

// HasBadge reports whether the badge has been earned.
func (p *UserProgress) HasBadge(badgeID string) bool {
	for _, b := range p.Badges {
		if b == badgeID {
			return true
		}
	}
	return false
}

// LessonCompletion records that a user finished a single lesson.
type LessonCompletion struct {
	ID          int64     `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	LessonID    uuid.UUID `json:"lesson_id" db:"lesson_id"`
	CompletedAt time.Time `json:"completed_at" db:"completed_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// QuizAttempt records one scored quiz run against a course.
type QuizAttempt struct {
	ID             int64     `json:"id" db:"id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	CourseID       uuid.UUID `json:"course_id" db:"course_id"`
	Score          int       `json:"score" db:"score"`
	TotalQuestions int       `json:"total_questions" db:"total_questions"`
	PointsEarned   int       `json:"points_earned" db:"points_earned"`
	CompletedAt    time.Time `json:"completed_at" db:"completed_at"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// ===============================
// COURSE CATALOG
// ===============================

// CourseStatus gates catalog visibility.
type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
	CourseArchived  CourseStatus = "archived"
)

// Course is the top of the catalog hierarchy: one course per tier in
// practice, carrying presentation metadata the clients render directly.
type Course struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	Slug        string       `json:"slug" db:"slug" validate:"required,max=120"`
	Title       string       `json:"title" db:"title" validate:"required,max=200"`
	Subtitle    *string      `json:"subtitle,omitempty" db:"subtitle"`
	Description *string      `json:"description,omitempty" db:"description"`
	Level       Level        `json:"level" db:"level" validate:"required,oneof=beginner intermediate advanced"`
	Icon        string       `json:"icon" db:"icon"`
	ColorFrom   string       `json:"color_from" db:"color_from"`
	ColorTo     string       `json:"color_to" db:"color_to"`
	Status      CourseStatus `json:"status" db:"status"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`

	// Loaded on demand, not stored on the row
	Modules       []*CourseModule `json:"modules,omitempty" db:"-"`
	QuizQuestions []*QuizQuestion `json:"quiz_questions,omitempty" db:"-"`
	TotalModules  int             `json:"total_modules" db:"-"`
}

// CourseModule groups lessons inside a course.
type CourseModule struct {
	ID              uuid.UUID `json:"id" db:"id"`
	CourseID        uuid.UUID `json:"course_id" db:"course_id"`
	Title           string    `json:"title" db:"title" validate:"required,max=200"`
	Description     *string   `json:"description,omitempty" db:"description"`
	OrderIndex      int       `json:"order_index" db:"order_index"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	Lessons []*CourseLesson `json:"lessons,omitempty" db:"-"`
}

// CourseLesson is an atomic completable piece of content.
type CourseLesson struct {
	ID              uuid.UUID `json:"id" db:"id"`
	ModuleID        uuid.UUID `json:"module_id" db:"module_id"`
	Title           string    `json:"title" db:"title" validate:"required,max=200"`
	Content         string    `json:"content" db:"content"`
	OrderIndex      int       `json:"order_index" db:"order_index"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// QuizQuestion is one multiple-choice question attached to a course quiz.
type QuizQuestion struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CourseID    uuid.UUID `json:"course_id" db:"course_id"`
	Question    string    `json:"question" db:"question" validate:"required"`
	Explanation *string   `json:"explanation,omitempty" db:"explanation"`
	OrderIndex  int       `json:"order_index" db:"order_index"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Options []*QuizOption `json:"options,omitempty" db:"-"`
}

// QuizOption is one selectable answer. IsCorrect is never serialized in
// quiz payloads served to clients; scoring happens server side.
type QuizOption struct {
	ID         uuid.UUID `json:"id" db:"id"`
	QuestionID uuid.UUID `json:"question_id" db:"question_id"`
	OptionText string    `json:"option_text" db:"option_text" validate:"required"`
	IsCorrect  bool      `json:"-" db:"is_correct"`
	OrderIndex int       `json:"order_index" db:"order_index"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// ===============================
// SUPPLEMENTAL CONTENT
// ===============================

// GlossaryTerm is a read-only dictionary entry.
type GlossaryTerm struct {
	ID         int64     `json:"id" db:"id"`
	Term       string    `json:"term" db:"term"`
	Definition string    `json:"definition" db:"definition"`
	Category   *string   `json:"category,omitempty" db:"category"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// NewsItem is a read-only feed entry.
type NewsItem struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Summary     string    `json:"summary" db:"summary"`
	Source      *string   `json:"source,omitempty" db:"source"`
	URL         *string   `json:"url,omitempty" db:"url"`
	PublishedAt time.Time `json:"published_at" db:"published_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
