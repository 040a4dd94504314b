package repositories

import (
	"context"
	"fmt"

	"finlit/internal/database"
	"finlit/internal/models"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// sessionRepository implements SessionRepository over the sessions table.
type sessionRepository struct {
	*BaseRepository
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *database.Manager, logger *zap.Logger) SessionRepository {
	return &sessionRepository{BaseRepository: NewBaseRepository(db, logger)}
}

// Create inserts a session row.
func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (user_id, session_token, expires_at, is_active)
		VALUES ($1, $2, $3, true)
		RETURNING id, created_at`

	err := r.QueryRowContext(ctx, query, session.UserID, session.SessionToken, session.ExpiresAt).
		Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		r.GetLogger().Error("Failed to create session",
			zap.Error(err),
			zap.String("user_id", session.UserID.String()),
		)
		return fmt.Errorf("failed to create session: %w", err)
	}
	session.IsActive = true
	return nil
}

// GetByToken retrieves an active, unexpired session.
func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	query := `
		SELECT s.id, s.user_id, s.session_token, s.expires_at, s.created_at, s.is_active
		FROM sessions s
		INNER JOIN users u ON u.id = s.user_id
		WHERE s.session_token = $1
		  AND s.is_active = true
		  AND s.expires_at > now()
		  AND u.is_active = true`

	var session models.Session
	err := r.QueryRowContext(ctx, query, token).Scan(
		&session.ID, &session.UserID, &session.SessionToken,
		&session.ExpiresAt, &session.CreatedAt, &session.IsActive,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// Invalidate deactivates a single session.
func (r *sessionRepository) Invalidate(ctx context.Context, token string) error {
	_, err := r.ExecContext(ctx,
		`UPDATE sessions SET is_active = false WHERE session_token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to invalidate session: %w", err)
	}
	return nil
}

// InvalidateAllForUser deactivates every session the user holds.
func (r *sessionRepository) InvalidateAllForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.ExecContext(ctx,
		`UPDATE sessions SET is_active = false WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to invalidate user sessions: %w", err)
	}
	return nil
}

// DeleteExpired removes stale session rows and returns how many went.
func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < now() OR is_active = false`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	deleted, _ := result.RowsAffected()
	if deleted > 0 {
		r.GetLogger().Debug("Expired sessions removed", zap.Int64("count", deleted))
	}
	return deleted, nil
}
