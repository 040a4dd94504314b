// file: internal/repositories/collection.go
package repositories

import (
	"context"
	"fmt"
	"time"

	"finlit/internal/database"
	"finlit/internal/models"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Collection holds all repository instances for dependency injection.
type Collection struct {
	User     UserRepository
	Session  SessionRepository
	Progress ProgressRepository
	Course   CourseRepository
	Content  ContentRepository

	db     *database.Manager
	logger *zap.Logger
}

// NewCollection creates a new repository collection with all dependencies.
func NewCollection(db *database.Manager, logger *zap.Logger) (*Collection, error) {
	if db == nil {
		return nil, fmt.Errorf("database manager is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Collection{
		User:     NewUserRepository(db, logger),
		Session:  NewSessionRepository(db, logger),
		Progress: NewProgressRepository(db, logger),
		Course:   NewCourseRepository(db, logger),
		Content:  NewContentRepository(db, logger),
		db:       db,
		logger:   logger,
	}

	logger.Info("repository collection initialized")
	return c, nil
}

// GetDB returns the underlying database manager for custom operations.
func (c *Collection) GetDB() *database.Manager {
	return c.db
}

// ProvisionUser creates the account row and its ledger row atomically.
// Registration must never leave an account without a ledger: the read
// path assumes the row exists once registration has returned.
func (c *Collection) ProvisionUser(ctx context.Context, user *models.User, p *models.UserProgress) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (email, full_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, is_active, created_at, updated_at`,
		user.Email, user.FullName, user.PasswordHash,
	).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if p.Level == "" {
		p.Level = models.LevelBeginner
	}
	p.UserID = user.ID
	err = tx.QueryRowContext(ctx, `
		INSERT INTO user_progress (user_id, level, completed_units, badges, total_points, current_streak)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		p.UserID, p.Level,
		pq.Array(p.CompletedUnits), pq.Array(p.Badges),
		p.TotalPoints, p.CurrentStreak,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create progress: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit provisioning: %w", err)
	}

	c.logger.Info("user provisioned",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)
	return nil
}

// HealthCheck reports connectivity and pool state for readiness probes.
func (c *Collection) HealthCheck(ctx context.Context) map[string]any {
	start := time.Now()
	err := c.db.Health(ctx)
	health := map[string]any{
		"response_time": time.Since(start).String(),
		"healthy":       err == nil,
	}
	if err != nil {
		health["error"] = err.Error()
	}

	stats := c.db.Stats()
	health["pool"] = map[string]any{
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"wait_count":       stats.WaitCount,
	}
	return health
}

// CleanupExpiredData removes rows past their retention window. Run it
// periodically from the server's maintenance loop.
func (c *Collection) CleanupExpiredData(ctx context.Context) error {
	deleted, err := c.Session.DeleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}

	if deleted > 0 {
		c.logger.Info("expired sessions cleaned up", zap.Int64("deleted", deleted))
	}
	return nil
}

// Close releases the database connections behind the collection.
func (c *Collection) Close() error {
	c.logger.Info("closing repository collection")
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
