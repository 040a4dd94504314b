// file: internal/services/auth_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"finlit/internal/config"
	"finlit/internal/models"
	"finlit/internal/repositories"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*models.User),
		byID:    make(map[uuid.UUID]*models.User),
	}
}

func (f *fakeUserRepo) add(u *models.User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.Must(uuid.NewV4())
	f.add(user)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, fullName *string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	u.FullName = fullName
	return u, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

type fakeSessionRepo struct {
	byToken map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byToken: make(map[string]*models.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *models.Session) error {
	session.ID = int64(len(f.byToken) + 1)
	session.CreatedAt = time.Now()
	f.byToken[session.SessionToken] = session
	return nil
}

func (f *fakeSessionRepo) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	s, ok := f.byToken[token]
	if !ok || !s.IsActive {
		return nil, repositories.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessionRepo) Invalidate(ctx context.Context, token string) error {
	if s, ok := f.byToken[token]; ok {
		s.IsActive = false
	}
	return nil
}

func (f *fakeSessionRepo) InvalidateAllForUser(ctx context.Context, userID uuid.UUID) error {
	for _, s := range f.byToken {
		if s.UserID == userID {
			s.IsActive = false
		}
	}
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:         "test-secret",
		JWTExpiry:         time.Hour,
		SessionTTL:        time.Hour,
		BCryptCost:        bcrypt.MinCost,
		MinPasswordLength: 8,
	}
}

func newTestAuthService(users *fakeUserRepo, sessions *fakeSessionRepo) AuthService {
	repos := &repositories.Collection{User: users, Session: sessions}
	return NewAuthService(repos, NewEmailService(zap.NewNop()), nil, testAuthConfig(), &config.RetryConfig{MaxAttempts: 2, Interval: time.Millisecond}, zap.NewNop())
}

func seedAccount(t *testing.T, users *fakeUserRepo, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		ID:           uuid.Must(uuid.NewV4()),
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	users.add(user)
	return user
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), newFakeSessionRepo())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "user@example.com",
		Password: "short",
	})
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeWeakPassword))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	seedAccount(t, users, "taken@example.com", "password123")
	svc := newTestAuthService(users, newFakeSessionRepo())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "Taken@Example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeAlreadyRegistered))
}

func TestLoginIssuesVerifiableSession(t *testing.T) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	user := seedAccount(t, users, "user@example.com", "password123")
	svc := newTestAuthService(users, sessions)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Bearer", resp.SessionType)

	info, err := svc.GetSession(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, info.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserRepo()
	seedAccount(t, users, "user@example.com", "password123")
	svc := newTestAuthService(users, newFakeSessionRepo())

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeInvalidCredentials))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), newFakeSessionRepo())

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeInvalidCredentials))
}

func TestLogoutInvalidatesSession(t *testing.T) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	seedAccount(t, users, "user@example.com", "password123")
	svc := newTestAuthService(users, sessions)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.Token))

	_, err = svc.GetSession(context.Background(), resp.Token)
	require.Error(t, err)
	assert.True(t, IsErrorType(err, "UNAUTHORIZED"))
}

func TestLogoutGarbageTokenIsNoop(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), newFakeSessionRepo())
	assert.NoError(t, svc.Logout(context.Background(), "not-a-jwt"))
}

func TestGetSessionGarbageToken(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), newFakeSessionRepo())

	_, err := svc.GetSession(context.Background(), "not-a-jwt")
	require.Error(t, err)
	assert.True(t, IsErrorType(err, "UNAUTHORIZED"))
}
