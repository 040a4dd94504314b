// file: internal/handlers/api/v1/content/content_controller.go
package content

import (
	"net/http"
	"strconv"

	"finlit/internal/response"
	"finlit/internal/services"

	"go.uber.org/zap"
)

// Controller serves the supplemental read-only content: glossary and news.
type Controller struct {
	catalog services.CatalogService
	logger  *zap.Logger
	builder *response.Builder
}

// NewController creates the content controller.
func NewController(catalog services.CatalogService, logger *zap.Logger, builder *response.Builder) *Controller {
	return &Controller{catalog: catalog, logger: logger, builder: builder}
}

// Glossary handles GET /api/v1/glossary?category=.
func (c *Controller) Glossary(w http.ResponseWriter, r *http.Request) {
	var category *string
	if raw := r.URL.Query().Get("category"); raw != "" {
		category = &raw
	}

	terms, err := c.catalog.ListGlossaryTerms(r.Context(), category)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, terms)
}

// News handles GET /api/v1/news?limit=.
func (c *Controller) News(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.builder.WriteError(w, r, services.NewValidationError("limit must be a positive integer", err))
			return
		}
		limit = parsed
	}

	items, err := c.catalog.ListNewsItems(r.Context(), limit)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, items)
}
