// file: internal/handlers/api/v1/progress/progress_controller.go
package progress

import (
	"encoding/json"
	"net/http"
	"strconv"

	"finlit/internal/contextutils"
	"finlit/internal/response"
	"finlit/internal/services"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// Controller handles the progress ledger endpoints. Every route behind it
// is wrapped by the auth middleware, so the user is always on the context.
type Controller struct {
	progress services.ProgressService
	logger   *zap.Logger
	builder  *response.Builder
}

// NewController creates the progress controller.
func NewController(progress services.ProgressService, logger *zap.Logger, builder *response.Builder) *Controller {
	return &Controller{progress: progress, logger: logger, builder: builder}
}

// Get handles GET /api/v1/progress.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := c.progress.GetProgress(r.Context(), contextutils.GetUserID(r.Context()))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, resp)
}

// Update handles PATCH /api/v1/progress.
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	resp, err := c.progress.UpdateProgress(r.Context(), contextutils.GetUserID(r.Context()), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, resp)
}

// RecordCompletion handles POST /api/v1/progress/completions.
func (c *Controller) RecordCompletion(w http.ResponseWriter, r *http.Request) {
	var req services.RecordCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	userID := contextutils.GetUserID(r.Context())
	resp, err := c.progress.RecordCompletion(r.Context(), userID, &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.logger.Info("completion recorded",
		zap.String("user_id", userID.String()),
		zap.String("unit_id", req.UnitID),
		zap.Bool("applied", resp.Applied),
	)
	c.builder.WriteSuccess(w, r, resp)
}

// Reset handles POST /api/v1/progress/reset.
func (c *Controller) Reset(w http.ResponseWriter, r *http.Request) {
	resp, err := c.progress.ResetProgress(r.Context(), contextutils.GetUserID(r.Context()))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, resp)
}

// Unlocks handles GET /api/v1/progress/unlocks.
func (c *Controller) Unlocks(w http.ResponseWriter, r *http.Request) {
	state, err := c.progress.GetUnlocks(r.Context(), contextutils.GetUserID(r.Context()))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, state)
}

// CompleteLesson handles POST /api/v1/lessons/{id}/completions.
func (c *Controller) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid lesson id", err))
		return
	}

	resp, err := c.progress.CompleteLesson(r.Context(), contextutils.GetUserID(r.Context()), lessonID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, resp)
}

// LessonStatus handles GET /api/v1/lessons/{id}/completions.
func (c *Controller) LessonStatus(w http.ResponseWriter, r *http.Request) {
	lessonID, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid lesson id", err))
		return
	}

	done, err := c.progress.IsLessonCompleted(r.Context(), contextutils.GetUserID(r.Context()), lessonID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, map[string]any{"completed": done})
}

// SubmitQuizAttempt handles POST /api/v1/courses/{id}/quiz-attempts.
func (c *Controller) SubmitQuizAttempt(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid course id", err))
		return
	}

	var body struct {
		Selected []int `json:"selected"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	resp, err := c.progress.SubmitQuizAttempt(r.Context(), contextutils.GetUserID(r.Context()), &services.QuizAttemptRequest{
		CourseID: courseID,
		Selected: body.Selected,
	})
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, resp)
}

// QuizAttempts handles GET /api/v1/progress/quiz-attempts.
func (c *Controller) QuizAttempts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.builder.WriteError(w, r, services.NewValidationError("limit must be a positive integer", err))
			return
		}
		limit = parsed
	}

	attempts, err := c.progress.QuizAttemptHistory(r.Context(), contextutils.GetUserID(r.Context()), limit)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, attempts)
}
