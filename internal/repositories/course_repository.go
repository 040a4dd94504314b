// file: internal/repositories/course_repository.go
package repositories

import (
	"context"
	"fmt"

	"finlit/internal/database"
	"finlit/internal/models"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// courseRepository implements CourseRepository over the catalog tables.
// The catalog is read-only from the API's perspective; content arrives
// through migrations.
type courseRepository struct {
	*BaseRepository
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *database.Manager, logger *zap.Logger) CourseRepository {
	return &courseRepository{BaseRepository: NewBaseRepository(db, logger)}
}

const courseColumns = `
	c.id, c.slug, c.title, c.subtitle, c.description, c.level,
	c.icon, c.color_from, c.color_to, c.status, c.created_at, c.updated_at`

func scanCourse(scanner interface{ Scan(...any) error }) (*models.Course, error) {
	var c models.Course
	err := scanner.Scan(
		&c.ID, &c.Slug, &c.Title, &c.Subtitle, &c.Description, &c.Level,
		&c.Icon, &c.ColorFrom, &c.ColorTo, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListPublished returns published courses, optionally filtered by tier.
func (r *courseRepository) ListPublished(ctx context.Context, level *models.Level) ([]*models.Course, error) {
	query := `
		SELECT` + courseColumns + `,
		       (SELECT COUNT(*) FROM course_modules m WHERE m.course_id = c.id) AS total_modules
		FROM courses c
		WHERE c.status = 'published'`
	args := []any{}
	if level != nil {
		query += ` AND c.level = $1`
		args = append(args, *level)
	}
	query += ` ORDER BY c.created_at`

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(
			&c.ID, &c.Slug, &c.Title, &c.Subtitle, &c.Description, &c.Level,
			&c.Icon, &c.ColorFrom, &c.ColorTo, &c.Status, &c.CreatedAt, &c.UpdatedAt,
			&c.TotalModules,
		); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, &c)
	}
	return courses, rows.Err()
}

// GetByID retrieves a single published course.
func (r *courseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	query := `SELECT` + courseColumns + ` FROM courses c WHERE c.id = $1 AND c.status = 'published'`

	course, err := scanCourse(r.QueryRowContext(ctx, query, id))
	if err != nil {
		if r.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// GetModules returns a course's modules in catalog order.
func (r *courseRepository) GetModules(ctx context.Context, courseID uuid.UUID) ([]*models.CourseModule, error) {
	query := `
		SELECT id, course_id, title, description, order_index, duration_minutes, created_at, updated_at
		FROM course_modules
		WHERE course_id = $1
		ORDER BY order_index`

	rows, err := r.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	defer rows.Close()

	var modules []*models.CourseModule
	for rows.Next() {
		var m models.CourseModule
		if err := rows.Scan(
			&m.ID, &m.CourseID, &m.Title, &m.Description,
			&m.OrderIndex, &m.DurationMinutes, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}
		modules = append(modules, &m)
	}
	return modules, rows.Err()
}

// GetLessons returns a module's lessons in catalog order.
func (r *courseRepository) GetLessons(ctx context.Context, moduleID uuid.UUID) ([]*models.CourseLesson, error) {
	query := `
		SELECT id, module_id, title, content, order_index, duration_minutes, created_at, updated_at
		FROM course_lessons
		WHERE module_id = $1
		ORDER BY order_index`

	rows, err := r.QueryContext(ctx, query, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*models.CourseLesson
	for rows.Next() {
		var l models.CourseLesson
		if err := rows.Scan(
			&l.ID, &l.ModuleID, &l.Title, &l.Content,
			&l.OrderIndex, &l.DurationMinutes, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, &l)
	}
	return lessons, rows.Err()
}

// GetLessonByID retrieves one lesson.
func (r *courseRepository) GetLessonByID(ctx context.Context, lessonID uuid.UUID) (*models.CourseLesson, error) {
	query := `
		SELECT id, module_id, title, content, order_index, duration_minutes, created_at, updated_at
		FROM course_lessons
		WHERE id = $1`

	var l models.CourseLesson
	err := r.QueryRowContext(ctx, query, lessonID).Scan(
		&l.ID, &l.ModuleID, &l.Title, &l.Content,
		&l.OrderIndex, &l.DurationMinutes, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	return &l, nil
}

// GetQuizQuestions returns a course's quiz with options attached, both in
// catalog order.
func (r *courseRepository) GetQuizQuestions(ctx context.Context, courseID uuid.UUID) ([]*models.QuizQuestion, error) {
	query := `
		SELECT id, course_id, question, explanation, order_index, created_at, updated_at
		FROM course_quiz_questions
		WHERE course_id = $1
		ORDER BY order_index`

	rows, err := r.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz questions: %w", err)
	}
	defer rows.Close()

	var questions []*models.QuizQuestion
	byID := make(map[uuid.UUID]*models.QuizQuestion)
	for rows.Next() {
		var q models.QuizQuestion
		if err := rows.Scan(
			&q.ID, &q.CourseID, &q.Question, &q.Explanation,
			&q.OrderIndex, &q.CreatedAt, &q.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quiz question: %w", err)
		}
		questions = append(questions, &q)
		byID[q.ID] = &q
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	optQuery := `
		SELECT o.id, o.question_id, o.option_text, o.is_correct, o.order_index, o.created_at
		FROM course_quiz_options o
		INNER JOIN course_quiz_questions q ON q.id = o.question_id
		WHERE q.course_id = $1
		ORDER BY o.question_id, o.order_index`

	optRows, err := r.QueryContext(ctx, optQuery, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz options: %w", err)
	}
	defer optRows.Close()

	for optRows.Next() {
		var o models.QuizOption
		if err := optRows.Scan(
			&o.ID, &o.QuestionID, &o.OptionText, &o.IsCorrect, &o.OrderIndex, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quiz option: %w", err)
		}
		if q, ok := byID[o.QuestionID]; ok {
			q.Options = append(q.Options, &o)
		}
	}
	return questions, optRows.Err()
}

// UnitTiers maps every completable unit identifier (course and lesson
// ids) to the tier of the course it belongs to. The unlock gate reads
// this instead of sniffing identifier prefixes.
func (r *courseRepository) UnitTiers(ctx context.Context) (map[string]models.Level, error) {
	query := `
		SELECT c.id::text, c.level FROM courses c WHERE c.status = 'published'
		UNION ALL
		SELECT l.id::text, c.level
		FROM course_lessons l
		INNER JOIN course_modules m ON m.id = l.module_id
		INNER JOIN courses c ON c.id = m.course_id
		WHERE c.status = 'published'`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load unit tiers: %w", err)
	}
	defer rows.Close()

	tiers := make(map[string]models.Level)
	for rows.Next() {
		var id string
		var level models.Level
		if err := rows.Scan(&id, &level); err != nil {
			return nil, fmt.Errorf("failed to scan unit tier: %w", err)
		}
		tiers[id] = level
	}
	return tiers, rows.Err()
}
