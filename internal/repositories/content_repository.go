// file: internal/repositories/content_repository.go
package repositories

import (
	"context"
	"fmt"

	"finlit/internal/database"
	"finlit/internal/models"

	"go.uber.org/zap"
)

type contentRepository struct {
	*BaseRepository
}

// NewContentRepository creates a new content repository.
func NewContentRepository(db *database.Manager, logger *zap.Logger) ContentRepository {
	return &contentRepository{BaseRepository: NewBaseRepository(db, logger)}
}

// ListGlossaryTerms returns glossary entries alphabetically, optionally
// filtered by category.
func (r *contentRepository) ListGlossaryTerms(ctx context.Context, category *string) ([]*models.GlossaryTerm, error) {
	query := `SELECT id, term, definition, category, created_at FROM glossary_terms`
	args := []any{}
	if category != nil {
		query += ` WHERE category = $1`
		args = append(args, *category)
	}
	query += ` ORDER BY term`

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list glossary terms: %w", err)
	}
	defer rows.Close()

	var terms []*models.GlossaryTerm
	for rows.Next() {
		var t models.GlossaryTerm
		if err := rows.Scan(&t.ID, &t.Term, &t.Definition, &t.Category, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan glossary term: %w", err)
		}
		terms = append(terms, &t)
	}
	return terms, rows.Err()
}

// ListNewsItems returns the most recent feed entries.
func (r *contentRepository) ListNewsItems(ctx context.Context, limit int) ([]*models.NewsItem, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	query := `
		SELECT id, title, summary, source, url, published_at, created_at
		FROM news_items
		ORDER BY published_at DESC
		LIMIT $1`

	rows, err := r.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list news items: %w", err)
	}
	defer rows.Close()

	var items []*models.NewsItem
	for rows.Next() {
		var n models.NewsItem
		if err := rows.Scan(&n.ID, &n.Title, &n.Summary, &n.Source, &n.URL, &n.PublishedAt, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan news item: %w", err)
		}
		items = append(items, &n)
	}
	return items, rows.Err()
}
