// file: internal/contextutils/context.go
package contextutils

import (
	"context"

	"finlit/internal/models"

	"github.com/gofrs/uuid"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	userKey      contextKey = "user"
)

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithRequestID adds the request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetUser retrieves the authenticated user from the context, if any.
func GetUser(ctx context.Context) *models.User {
	if u, ok := ctx.Value(userKey).(*models.User); ok {
		return u
	}
	return nil
}

// GetUserID retrieves the authenticated user's id, or uuid.Nil when the
// request carries no session.
func GetUserID(ctx context.Context) uuid.UUID {
	if u := GetUser(ctx); u != nil {
		return u.ID
	}
	return uuid.Nil
}

// WithUser adds the authenticated user to the context.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
