// file: internal/services/catalog_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finlit/internal/cache"
	"finlit/internal/models"
	"finlit/internal/repositories"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// catalogService implements CatalogService with a read-through cache over
// the published tables. Catalog content only changes with a migration, so
// a stale window of a few minutes is acceptable.
type catalogService struct {
	repos  *repositories.Collection
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCatalogService creates the catalog service.
func NewCatalogService(repos *repositories.Collection, c cache.Cache, ttl time.Duration, logger *zap.Logger) CatalogService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &catalogService{repos: repos, cache: c, ttl: ttl, logger: logger}
}

// ListCourses returns the published courses, optionally filtered by tier.
func (s *catalogService) ListCourses(ctx context.Context, level *models.Level) ([]*models.Course, error) {
	key := "catalog:courses:all"
	if level != nil {
		if !level.Valid() {
			return nil, NewValidationError(fmt.Sprintf("unknown level %q", *level), nil)
		}
		key = "catalog:courses:" + string(*level)
	}

	var courses []*models.Course
	if hit, err := s.cache.Get(ctx, key, &courses); err == nil && hit {
		return courses, nil
	}

	courses, err := s.repos.Course.ListPublished(ctx, level)
	if err != nil {
		return nil, NewInternalError("failed to load courses")
	}
	if courses == nil {
		courses = []*models.Course{}
	}

	if err := s.cache.Set(ctx, key, courses, s.ttl); err != nil {
		s.logger.Warn("failed to cache course list", zap.Error(err))
	}
	return courses, nil
}

// GetCourse returns one course with its modules, lessons and quiz attached.
func (s *catalogService) GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	key := "catalog:course:" + id.String()

	var cached models.Course
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	course, err := s.repos.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundError("course not found")
		}
		return nil, NewInternalError("failed to load course")
	}

	modules, err := s.repos.Course.GetModules(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load course modules")
	}
	for _, m := range modules {
		lessons, err := s.repos.Course.GetLessons(ctx, m.ID)
		if err != nil {
			return nil, NewInternalError("failed to load course lessons")
		}
		m.Lessons = lessons
	}
	course.Modules = modules
	course.TotalModules = len(modules)

	questions, err := s.repos.Course.GetQuizQuestions(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load course quiz")
	}
	course.QuizQuestions = questions

	if err := s.cache.Set(ctx, key, course, s.ttl); err != nil {
		s.logger.Warn("failed to cache course", zap.Error(err))
	}
	return course, nil
}

// GetQuiz returns the quiz for a course, options included. Correct-answer
// flags never serialize in API payloads; scoring stays server side.
func (s *catalogService) GetQuiz(ctx context.Context, courseID uuid.UUID) ([]*models.QuizQuestion, error) {
	questions, err := s.repos.Course.GetQuizQuestions(ctx, courseID)
	if err != nil {
		return nil, NewInternalError("failed to load quiz")
	}
	if len(questions) == 0 {
		return nil, NewNotFoundError("course has no quiz")
	}
	return questions, nil
}

// ListGlossaryTerms returns the glossary, optionally filtered by category.
func (s *catalogService) ListGlossaryTerms(ctx context.Context, category *string) ([]*models.GlossaryTerm, error) {
	key := "content:glossary:all"
	if category != nil {
		key = "content:glossary:" + *category
	}

	var terms []*models.GlossaryTerm
	if hit, err := s.cache.Get(ctx, key, &terms); err == nil && hit {
		return terms, nil
	}

	terms, err := s.repos.Content.ListGlossaryTerms(ctx, category)
	if err != nil {
		return nil, NewInternalError("failed to load glossary")
	}
	if terms == nil {
		terms = []*models.GlossaryTerm{}
	}

	if err := s.cache.Set(ctx, key, terms, s.ttl); err != nil {
		s.logger.Warn("failed to cache glossary", zap.Error(err))
	}
	return terms, nil
}

// ListNewsItems returns the latest feed entries.
func (s *catalogService) ListNewsItems(ctx context.Context, limit int) ([]*models.NewsItem, error) {
	key := fmt.Sprintf("content:news:%d", limit)

	var items []*models.NewsItem
	if hit, err := s.cache.Get(ctx, key, &items); err == nil && hit {
		return items, nil
	}

	items, err := s.repos.Content.ListNewsItems(ctx, limit)
	if err != nil {
		return nil, NewInternalError("failed to load news")
	}
	if items == nil {
		items = []*models.NewsItem{}
	}

	if err := s.cache.Set(ctx, key, items, s.ttl); err != nil {
		s.logger.Warn("failed to cache news", zap.Error(err))
	}
	return items, nil
}
