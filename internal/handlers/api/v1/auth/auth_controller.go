// file: internal/handlers/api/v1/auth/auth_controller.go
package auth

import (
	"encoding/json"
	"net/http"

	"finlit/internal/contextutils"
	"finlit/internal/middleware"
	"finlit/internal/response"
	"finlit/internal/services"

	"go.uber.org/zap"
)

// Controller handles the authentication endpoints.
type Controller struct {
	auth    services.AuthService
	logger  *zap.Logger
	builder *response.Builder
}

// NewController creates the auth controller.
func NewController(auth services.AuthService, logger *zap.Logger, builder *response.Builder) *Controller {
	return &Controller{auth: auth, logger: logger, builder: builder}
}

// Register handles POST /api/v1/auth/register.
func (c *Controller) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	resp, err := c.auth.Register(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.logger.Info("user registered",
		zap.String("request_id", contextutils.GetRequestID(r.Context())),
		zap.String("user_id", resp.User.ID.String()),
	)
	c.builder.WriteCreated(w, r, resp)
}

// Login handles POST /api/v1/auth/login.
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	resp, err := c.auth.Login(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, resp)
}

// Logout handles POST /api/v1/auth/logout.
func (c *Controller) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.auth.Logout(r.Context(), middleware.BearerToken(r)); err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, map[string]any{"message": "logged out"})
}

// GetSession handles GET /api/v1/auth/session.
func (c *Controller) GetSession(w http.ResponseWriter, r *http.Request) {
	info, err := c.auth.GetSession(r.Context(), middleware.BearerToken(r))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, info)
}

// UpdateProfile handles PATCH /api/v1/auth/profile. Requires auth.
func (c *Controller) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	user, err := c.auth.UpdateProfile(r.Context(), contextutils.GetUserID(r.Context()), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, user)
}
