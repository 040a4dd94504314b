// file: internal/repositories/user_repository.go
package repositories

import (
	"context"
	"fmt"

	"finlit/internal/database"
	"finlit/internal/models"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// userRepository implements UserRepository over the users table.
type userRepository struct {
	*BaseRepository
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *database.Manager, logger *zap.Logger) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository(db, logger)}
}

// Create inserts an account row and fills in the store-owned fields.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, full_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, is_active, created_at, updated_at`

	err := r.QueryRowContext(ctx, query, user.Email, user.FullName, user.PasswordHash).
		Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		r.GetLogger().Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.GetLogger().Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)
	return nil
}

// GetByID retrieves an active user by identifier.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, email, full_name, password_hash, is_active, created_at, updated_at
		FROM users
		WHERE id = $1 AND is_active = true`

	var user models.User
	err := r.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.FullName, &user.PasswordHash,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

// GetByEmail retrieves an active user by email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, full_name, password_hash, is_active, created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1) AND is_active = true`

	var user models.User
	err := r.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.FullName, &user.PasswordHash,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// UpdateProfile updates the mutable profile fields and returns the row.
func (r *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, fullName *string) (*models.User, error) {
	query := `
		UPDATE users
		SET full_name = COALESCE($2, full_name), updated_at = now()
		WHERE id = $1 AND is_active = true
		RETURNING id, email, full_name, password_hash, is_active, created_at, updated_at`

	var user models.User
	err := r.QueryRowContext(ctx, query, id, fullName).Scan(
		&user.ID, &user.Email, &user.FullName, &user.PasswordHash,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &user, nil
}

// EmailExists reports whether an account (active or not) holds the email.
func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}
