// file: internal/services/auth_service.go
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"finlit/internal/config"
	"finlit/internal/events"
	"finlit/internal/models"
	"finlit/internal/repositories"
	"finlit/internal/retry"
	"finlit/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// authService implements AuthService over DB-backed sessions. The bearer
// token handed to clients is a signed JWT carrying the session token; the
// session row is the revocation authority, the JWT just makes the token
// self-describing and tamper-evident.
type authService struct {
	repos      *repositories.Collection
	emails     EmailService
	bus        *events.Bus
	authConfig *config.AuthConfig
	retryCfg   retry.Config
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewAuthService creates the auth service.
func NewAuthService(
	repos *repositories.Collection,
	emails EmailService,
	bus *events.Bus,
	authConfig *config.AuthConfig,
	retryCfg *config.RetryConfig,
	logger *zap.Logger,
) AuthService {
	cfg := retry.DefaultConfig()
	if retryCfg != nil {
		cfg = retry.Config{MaxAttempts: retryCfg.MaxAttempts, Interval: retryCfg.Interval}
	}
	return &authService{
		repos:      repos,
		emails:     emails,
		bus:        bus,
		authConfig: authConfig,
		retryCfg:   cfg,
		validate:   validation.New(),
		logger:     logger,
	}
}

type sessionClaims struct {
	SessionToken string `json:"sid"`
	jwt.RegisteredClaims
}

// Register creates the account and its ledger row in one transaction, then
// opens a session so the caller is signed in immediately.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid registration request", err)
	}
	if len(req.Password) < s.authConfig.MinPasswordLength {
		return nil, &ServiceError{
			Type:       "VALIDATION_ERROR",
			Message:    fmt.Sprintf("password must be at least %d characters", s.authConfig.MinPasswordLength),
			Code:       CodeWeakPassword,
			StatusCode: http.StatusBadRequest,
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.repos.User.EmailExists(ctx, email)
	if err != nil {
		return nil, NewInternalError("failed to check registration")
	}
	if exists {
		return nil, NewConflictError("an account with this email already exists", CodeAlreadyRegistered)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.authConfig.BCryptCost)
	if err != nil {
		return nil, NewInternalError("failed to process password")
	}

	user := &models.User{
		Email:        email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
	}
	ledger := &models.UserProgress{
		Level:          models.LevelBeginner,
		CompletedUnits: []string{},
		Badges:         []string{},
	}
	if err := s.repos.ProvisionUser(ctx, user, ledger); err != nil {
		s.logger.Error("registration failed", zap.Error(err), zap.String("email", email))
		return nil, NewInternalError("failed to create account")
	}

	var name string
	if user.FullName != nil {
		name = *user.FullName
	}
	if err := s.emails.SendWelcomeEmail(ctx, user.Email, name); err != nil {
		// Welcome mail is best effort; the account exists either way.
		s.logger.Warn("welcome email failed", zap.Error(err), zap.String("email", user.Email))
	}
	s.bus.Publish(events.UserRegistered{UserID: user.ID, Email: user.Email})

	return s.openSession(ctx, user)
}

// Login verifies credentials and opens a session.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid login request", err)
	}

	user, err := s.repos.User.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewUnauthorizedError("invalid email or password", CodeInvalidCredentials)
		}
		return nil, NewInternalError("failed to look up account")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("failed login attempt", zap.String("email", user.Email))
		return nil, NewUnauthorizedError("invalid email or password", CodeInvalidCredentials)
	}

	return s.openSession(ctx, user)
}

// Logout invalidates the session behind the bearer token. Unknown or
// already-invalidated tokens are treated as success.
func (s *authService) Logout(ctx context.Context, token string) error {
	sessionToken, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	if err := s.repos.Session.Invalidate(ctx, sessionToken); err != nil {
		s.logger.Warn("failed to invalidate session", zap.Error(err))
		return NewInternalError("failed to log out")
	}
	return nil
}

// GetSession resolves the bearer token to its user, or UNAUTHORIZED.
func (s *authService) GetSession(ctx context.Context, token string) (*SessionInfo, error) {
	sessionToken, err := s.parseToken(token)
	if err != nil {
		return nil, NewUnauthorizedError("session is invalid or expired", "")
	}

	session, err := s.repos.Session.GetByToken(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewUnauthorizedError("session is invalid or expired", "")
		}
		return nil, NewInternalError("failed to load session")
	}
	if session.Expired() {
		return nil, NewUnauthorizedError("session is invalid or expired", "")
	}

	// A valid session pointing at a not-yet-visible account row is the
	// same fresh-row race the ledger read absorbs, so the profile read
	// rides the same bounded retry.
	user, err := retry.Do(ctx, s.retryCfg, s.logger, "fetch_account",
		func(ctx context.Context) (*models.User, error) {
			u, err := s.repos.User.GetByID(ctx, session.UserID)
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, retry.Transient(err)
			}
			return u, err
		})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewUnauthorizedError("session is invalid or expired", "")
		}
		return nil, NewInternalError("failed to load account")
	}

	return &SessionInfo{User: user, ExpiresAt: session.ExpiresAt}, nil
}

// UpdateProfile mutates the profile record of the authenticated user.
func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid profile update", err)
	}

	user, err := s.repos.User.UpdateProfile(ctx, userID, req.FullName)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundError("account not found")
		}
		return nil, NewInternalError("failed to update profile")
	}
	return user, nil
}

// openSession stores a session row and signs the bearer token for it.
func (s *authService) openSession(ctx context.Context, user *models.User) (*AuthResponse, error) {
	sessionToken, err := generateSessionToken()
	if err != nil {
		return nil, NewInternalError("failed to create session")
	}

	session := &models.Session{
		UserID:       user.ID,
		SessionToken: sessionToken,
		ExpiresAt:    time.Now().Add(s.authConfig.SessionTTL),
		IsActive:     true,
	}
	if err := s.repos.Session.Create(ctx, session); err != nil {
		s.logger.Error("failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, NewInternalError("failed to create session")
	}

	claims := sessionClaims{
		SessionToken: sessionToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.authConfig.JWTSecret))
	if err != nil {
		return nil, NewInternalError("failed to sign session token")
	}

	return &AuthResponse{
		User:        user,
		Token:       signed,
		SessionType: "Bearer",
		ExpiresAt:   session.ExpiresAt,
	}, nil
}

// parseToken verifies the JWT and extracts the embedded session token.
func (s *authService) parseToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.authConfig.JWTSecret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.SessionToken == "" {
		return "", fmt.Errorf("malformed session claims")
	}
	return claims.SessionToken, nil
}

func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
