// Package database manages the PostgreSQL connection pool, schema
// migrations, and query instrumentation shared by the repositories.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"finlit/internal/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Manager wraps the connection pool with slow-query logging.
type Manager struct {
	db     *sql.DB
	logger *zap.Logger
	config *config.DatabaseConfig
}

// NewManager opens the pool, waits for the database to answer pings with
// exponential backoff, and configures pooling limits.
func NewManager(cfg *config.DatabaseConfig, logger *zap.Logger) (*Manager, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	ping := func() error { return db.PingContext(ctx) }
	notify := func(err error, d time.Duration) {
		logger.Warn("Database not ready, retrying ping",
			zap.Error(err),
			zap.Duration("backoff", d),
		)
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(backoff.NewExponentialBackOff(), ctx), notify); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
		zap.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
	)

	return &Manager{db: db, logger: logger, config: cfg}, nil
}

// DB returns the underlying connection pool.
func (m *Manager) DB() *sql.DB {
	return m.db
}

// Migrate applies pending file migrations on a separate connection so the
// migrator's Close cannot tear down the main pool.
func (m *Manager) Migrate(migrationsPath string) error {
	migrationDB, err := sql.Open("postgres", m.config.URL)
	if err != nil {
		return fmt.Errorf("failed to create migration connection: %w", err)
	}
	defer migrationDB.Close()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer migrator.Close()

	currentVersion, dirty, err := migrator.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in dirty state at version %d", currentVersion)
	}

	if err := migrator.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	newVersion, _, err := migrator.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get new migration version: %w", err)
	}

	m.logger.Info("Migrations completed",
		zap.Uint("from_version", currentVersion),
		zap.Uint("to_version", newVersion),
	)
	return nil
}

// ExecContext executes a statement, logging slow or failing queries.
func (m *Manager) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := m.db.ExecContext(ctx, query, args...)
	m.observe(query, time.Since(start), err)
	return result, err
}

// QueryContext executes a query returning rows.
func (m *Manager) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := m.db.QueryContext(ctx, query, args...)
	m.observe(query, time.Since(start), err)
	return rows, err
}

// QueryRowContext executes a query returning a single row.
func (m *Manager) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := m.db.QueryRowContext(ctx, query, args...)
	m.observe(query, time.Since(start), nil)
	return row
}

// BeginTx starts a transaction.
func (m *Manager) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return m.db.BeginTx(ctx, opts)
}

// Health pings the database within the given context.
func (m *Manager) Health(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

// Stats exposes pool statistics.
func (m *Manager) Stats() sql.DBStats {
	return m.db.Stats()
}

// Close shuts down the pool.
func (m *Manager) Close() error {
	m.logger.Info("Closing database connections")
	return m.db.Close()
}

func (m *Manager) observe(query string, duration time.Duration, err error) {
	if err != nil && err != sql.ErrNoRows {
		m.logger.Error("Query execution failed",
			zap.String("query", truncateQuery(query)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}
	if m.config.SlowQueryThreshold > 0 && duration > m.config.SlowQueryThreshold {
		m.logger.Warn("Slow query detected",
			zap.String("query", truncateQuery(query)),
			zap.Duration("duration", duration),
		)
	}
}

func truncateQuery(query string) string {
	const max = 200
	if len(query) <= max {
		return query
	}
	return query[:max] + "..."
}
