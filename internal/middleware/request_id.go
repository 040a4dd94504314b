// file: internal/middleware/request_id.go
package middleware

import (
	"fmt"
	"net/http"
	"time"

	"finlit/internal/contextutils"

	"github.com/gofrs/uuid"
)

// HeaderXRequestID is the correlation header echoed on every response.
const HeaderXRequestID = "X-Request-ID"

// RequestID injects a correlation ID into the context and response
// headers, honoring one supplied by the caller for distributed tracing.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(HeaderXRequestID)
			if requestID == "" {
				if id, err := uuid.NewV4(); err == nil {
					requestID = id.String()
				} else {
					requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
				}
			}

			w.Header().Set(HeaderXRequestID, requestID)
			ctx := contextutils.WithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
