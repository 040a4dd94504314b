// file: internal/router/router.go
package router

import (
	"net/http"

	"finlit/internal/handlers/api/v1/auth"
	"finlit/internal/handlers/api/v1/calculators"
	"finlit/internal/handlers/api/v1/catalog"
	"finlit/internal/handlers/api/v1/content"
	"finlit/internal/handlers/api/v1/progress"
	"finlit/internal/middleware"
	"finlit/internal/response"
	"finlit/internal/services"

	"go.uber.org/zap"
)

// SetupRouter wires all HTTP routes and the middleware chain around them.
func SetupRouter(sc *services.ServiceCollection, builder *response.Builder, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	authController := auth.NewController(sc.AuthService, logger, builder)
	progressController := progress.NewController(sc.ProgressService, logger, builder)
	catalogController := catalog.NewController(sc.CatalogService, logger, builder)
	calculatorsController := calculators.NewController(sc.CalculatorService, logger, builder)
	contentController := content.NewController(sc.CatalogService, logger, builder)

	requireAuth := middleware.RequireAuth(sc.AuthService, builder)
	protected := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}

	// Health
	mux.HandleFunc("GET /health", healthHandler(sc, builder))

	// Identity
	mux.HandleFunc("POST /api/v1/auth/register", authController.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authController.Login)
	mux.HandleFunc("POST /api/v1/auth/logout", authController.Logout)
	mux.HandleFunc("GET /api/v1/auth/session", authController.GetSession)
	mux.Handle("PATCH /api/v1/auth/profile", protected(authController.UpdateProfile))

	// Progress ledger
	mux.Handle("GET /api/v1/progress", protected(progressController.Get))
	mux.Handle("PATCH /api/v1/progress", protected(progressController.Update))
	mux.Handle("POST /api/v1/progress/completions", protected(progressController.RecordCompletion))
	mux.Handle("POST /api/v1/progress/reset", protected(progressController.Reset))
	mux.Handle("GET /api/v1/progress/unlocks", protected(progressController.Unlocks))
	mux.Handle("GET /api/v1/progress/quiz-attempts", protected(progressController.QuizAttempts))
	mux.Handle("POST /api/v1/lessons/{id}/completions", protected(progressController.CompleteLesson))
	mux.Handle("GET /api/v1/lessons/{id}/completions", protected(progressController.LessonStatus))
	mux.Handle("POST /api/v1/courses/{id}/quiz-attempts", protected(progressController.SubmitQuizAttempt))

	// Catalog and content (public reads)
	mux.HandleFunc("GET /api/v1/courses", catalogController.ListCourses)
	mux.HandleFunc("GET /api/v1/courses/{id}", catalogController.GetCourse)
	mux.HandleFunc("GET /api/v1/courses/{id}/quiz", catalogController.GetQuiz)
	mux.HandleFunc("GET /api/v1/glossary", contentController.Glossary)
	mux.HandleFunc("GET /api/v1/news", contentController.News)

	// Calculators (stateless)
	mux.HandleFunc("POST /api/v1/calculators/budget", calculatorsController.Budget)
	mux.HandleFunc("POST /api/v1/calculators/compound-growth", calculatorsController.CompoundGrowth)
	mux.HandleFunc("POST /api/v1/calculators/loan-payment", calculatorsController.LoanPayment)

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(builder, logger),
		middleware.SecurityHeaders(),
		middleware.CORS(sc.Config.Server.AllowedOrigins),
	)
}

// healthHandler reports dependency health for readiness probes.
func healthHandler(sc *services.ServiceCollection, builder *response.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		builder.WriteSuccess(w, r, sc.HealthCheck(r.Context()))
	}
}
