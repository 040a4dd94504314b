// file: internal/handlers/api/v1/catalog/catalog_controller.go
package catalog

import (
	"net/http"

	"finlit/internal/models"
	"finlit/internal/response"
	"finlit/internal/services"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// Controller serves the published course catalog.
type Controller struct {
	catalog services.CatalogService
	logger  *zap.Logger
	builder *response.Builder
}

// NewController creates the catalog controller.
func NewController(catalog services.CatalogService, logger *zap.Logger, builder *response.Builder) *Controller {
	return &Controller{catalog: catalog, logger: logger, builder: builder}
}

// ListCourses handles GET /api/v1/courses?level=.
func (c *Controller) ListCourses(w http.ResponseWriter, r *http.Request) {
	var level *models.Level
	if raw := r.URL.Query().Get("level"); raw != "" {
		l := models.Level(raw)
		if !l.Valid() {
			c.builder.WriteError(w, r, services.NewValidationError("unknown course level", nil))
			return
		}
		level = &l
	}

	courses, err := c.catalog.ListCourses(r.Context(), level)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, courses)
}

// GetCourse handles GET /api/v1/courses/{id}: the course with modules,
// lessons and quiz questions attached.
func (c *Controller) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid course id", err))
		return
	}

	course, err := c.catalog.GetCourse(r.Context(), courseID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, course)
}

// GetQuiz handles GET /api/v1/courses/{id}/quiz: the questions and
// options without correct-answer flags.
func (c *Controller) GetQuiz(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid course id", err))
		return
	}

	questions, err := c.catalog.GetQuiz(r.Context(), courseID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, questions)
}
