// file: internal/middleware/recovery.go
package middleware

import (
	"net/http"
	"runtime/debug"

	"finlit/internal/contextutils"
	"finlit/internal/response"
	"finlit/internal/services"

	"go.uber.org/zap"
)

// Recovery converts downstream panics into a 500 response. The stack goes
// to the log, never to the client.
func Recovery(builder *response.Builder, logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rec),
						zap.String("request_id", contextutils.GetRequestID(r.Context())),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.ByteString("stack", debug.Stack()),
					)
					builder.WriteError(w, r, services.NewInternalError("an internal error occurred"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
