// file: internal/middleware/auth.go
package middleware

import (
	"net/http"

	"finlit/internal/contextutils"
	"finlit/internal/response"
	"finlit/internal/services"
)

// RequireAuth resolves the bearer token to a user and aborts with 401
// when there is no valid session. Handlers behind it can rely on
// contextutils.GetUser returning a non-nil user.
func RequireAuth(auth services.AuthService, builder *response.Builder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				builder.WriteError(w, r, services.NewUnauthorizedError("authentication required", ""))
				return
			}

			info, err := auth.GetSession(r.Context(), token)
			if err != nil {
				builder.WriteError(w, r, err)
				return
			}

			ctx := contextutils.WithUser(r.Context(), info.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
