// file: internal/repositories/progress_repository.go
package repositories

import (
	"context"
	"fmt"

	"finlit/internal/database"
	"finlit/internal/models"

	"github.com/gofrs/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// progressRepository implements ProgressRepository over the ledger tables.
// completed_units and badges live as text[] columns, matching the shape
// the ledger mutates in memory.
type progressRepository struct {
	*BaseRepository
}

// NewProgressRepository creates a new progress repository.
func NewProgressRepository(db *database.Manager, logger *zap.Logger) ProgressRepository {
	return &progressRepository{BaseRepository: NewBaseRepository(db, logger)}
}

// Create inserts a fresh ledger row for a new user.
func (r *progressRepository) Create(ctx context.Context, p *models.UserProgress) error {
	if p.Level == "" {
		p.Level = models.LevelBeginner
	}
	query := `
		INSERT INTO user_progress (user_id, level, completed_units, badges, total_points, current_streak)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(ctx, query,
		p.UserID, p.Level,
		pq.Array(p.CompletedUnits), pq.Array(p.Badges),
		p.TotalPoints, p.CurrentStreak,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		r.GetLogger().Error("Failed to create progress row",
			zap.Error(err),
			zap.String("user_id", p.UserID.String()),
		)
		return fmt.Errorf("failed to create progress: %w", err)
	}
	return nil
}

// GetByUserID retrieves the ledger row for a user.
func (r *progressRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProgress, error) {
	query := `
		SELECT id, user_id, level, completed_units, badges,
		       total_points, current_streak, created_at, updated_at
		FROM user_progress
		WHERE user_id = $1`

	var p models.UserProgress
	err := r.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Level,
		pq.Array(&p.CompletedUnits), pq.Array(&p.Badges),
		&p.TotalPoints, &p.CurrentStreak, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	if p.CompletedUnits == nil {
		p.CompletedUnits = []string{}
	}
	if p.Badges == nil {
		p.Badges = []string{}
	}
	return &p, nil
}

// Update persists the mutable ledger fields and refreshes updated_at.
func (r *progressRepository) Update(ctx context.Context, p *models.UserProgress) error {
	query := `
		UPDATE user_progress
		SET level = $2, completed_units = $3, badges = $4,
		    total_points = $5, current_streak = $6, updated_at = now()
		WHERE user_id = $1
		RETURNING id, updated_at`

	err := r.QueryRowContext(ctx, query,
		p.UserID, p.Level,
		pq.Array(p.CompletedUnits), pq.Array(p.Badges),
		p.TotalPoints, p.CurrentStreak,
	).Scan(&p.ID, &p.UpdatedAt)
	if err != nil {
		if r.IsNotFound(err) {
			return ErrNotFound
		}
		r.GetLogger().Error("Failed to update progress",
			zap.Error(err),
			zap.String("user_id", p.UserID.String()),
		)
		return fmt.Errorf("failed to update progress: %w", err)
	}
	return nil
}

// UpsertLessonCompletion records a lesson completion; repeating it only
// refreshes the completion timestamp.
func (r *progressRepository) UpsertLessonCompletion(ctx context.Context, userID, lessonID uuid.UUID) error {
	query := `
		INSERT INTO user_lesson_progress (user_id, lesson_id, completed_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id, lesson_id)
		DO UPDATE SET completed_at = EXCLUDED.completed_at`

	if _, err := r.ExecContext(ctx, query, userID, lessonID); err != nil {
		return fmt.Errorf("failed to record lesson completion: %w", err)
	}
	return nil
}

// IsLessonCompleted reports whether a completion record exists.
func (r *progressRepository) IsLessonCompleted(ctx context.Context, userID, lessonID uuid.UUID) (bool, error) {
	var exists bool
	err := r.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_lesson_progress WHERE user_id = $1 AND lesson_id = $2)`,
		userID, lessonID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lesson completion: %w", err)
	}
	return exists, nil
}

// CreateQuizAttempt appends one attempt to the history.
func (r *progressRepository) CreateQuizAttempt(ctx context.Context, attempt *models.QuizAttempt) error {
	query := `
		INSERT INTO user_quiz_attempts (user_id, course_id, score, total_questions, points_earned, completed_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id, completed_at, created_at`

	err := r.QueryRowContext(ctx, query,
		attempt.UserID, attempt.CourseID, attempt.Score,
		attempt.TotalQuestions, attempt.PointsEarned,
	).Scan(&attempt.ID, &attempt.CompletedAt, &attempt.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record quiz attempt: %w", err)
	}
	return nil
}

// ListQuizAttempts returns the most recent attempts, newest first.
func (r *progressRepository) ListQuizAttempts(ctx context.Context, userID uuid.UUID, limit int) ([]*models.QuizAttempt, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := `
		SELECT id, user_id, course_id, score, total_questions, points_earned, completed_at, created_at
		FROM user_quiz_attempts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*models.QuizAttempt
	for rows.Next() {
		var a models.QuizAttempt
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.CourseID, &a.Score,
			&a.TotalQuestions, &a.PointsEarned, &a.CompletedAt, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quiz attempt: %w", err)
		}
		attempts = append(attempts, &a)
	}
	return attempts, rows.Err()
}

// DeleteAuxiliaryRecords wipes lesson completions and quiz attempts as
// part of a full progress reset.
func (r *progressRepository) DeleteAuxiliaryRecords(ctx context.Context, userID uuid.UUID) error {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reset transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM user_lesson_progress WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete lesson completions: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM user_quiz_attempts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete quiz attempts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset transaction: %w", err)
	}

	r.GetLogger().Info("Auxiliary progress records wiped",
		zap.String("user_id", userID.String()),
	)
	return nil
}
