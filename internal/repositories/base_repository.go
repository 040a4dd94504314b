package repositories

import (
	"context"
	"database/sql"
	"errors"

	"finlit/internal/database"

	"go.uber.org/zap"
)

// BaseRepository provides the shared database plumbing for all repositories.
type BaseRepository struct {
	db     *database.Manager
	logger *zap.Logger
}

// NewBaseRepository creates a new base repository.
func NewBaseRepository(db *database.Manager, logger *zap.Logger) *BaseRepository {
	return &BaseRepository{db: db, logger: logger}
}

// ExecContext executes a statement through the instrumented manager.
func (r *BaseRepository) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.db.ExecContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (r *BaseRepository) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.db.QueryContext(ctx, query, args...)
}

// QueryRowContext executes a query that returns a single row.
func (r *BaseRepository) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return r.db.QueryRowContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (r *BaseRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

// GetLogger returns the repository logger.
func (r *BaseRepository) GetLogger() *zap.Logger {
	return r.logger
}

// IsNotFound reports whether err is the no-rows condition.
func (r *BaseRepository) IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
