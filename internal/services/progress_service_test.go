// file: internal/services/progress_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"finlit/internal/config"
	"finlit/internal/models"
	"finlit/internal/repositories"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeProgressRepo keeps ledger rows in memory and counts reads so the
// retry behavior is observable.
type fakeProgressRepo struct {
	rows        map[uuid.UUID]*models.UserProgress
	reads       int
	missUntil   int // reads before which GetByUserID reports not found
	lessonsDone map[string]bool
	attempts    []*models.QuizAttempt
	wiped       bool
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{
		rows:        make(map[uuid.UUID]*models.UserProgress),
		lessonsDone: make(map[string]bool),
	}
}

func (f *fakeProgressRepo) Create(ctx context.Context, p *models.UserProgress) error {
	f.rows[p.UserID] = p
	return nil
}

func (f *fakeProgressRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProgress, error) {
	f.reads++
	if f.reads <= f.missUntil {
		return nil, repositories.ErrNotFound
	}
	p, ok := f.rows[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *p
	clone.CompletedUnits = append([]string{}, p.CompletedUnits...)
	clone.Badges = append([]string{}, p.Badges...)
	return &clone, nil
}

func (f *fakeProgressRepo) Update(ctx context.Context, p *models.UserProgress) error {
	f.rows[p.UserID] = p
	return nil
}

func (f *fakeProgressRepo) UpsertLessonCompletion(ctx context.Context, userID, lessonID uuid.UUID) error {
	f.lessonsDone[userID.String()+"/"+lessonID.String()] = true
	return nil
}

func (f *fakeProgressRepo) IsLessonCompleted(ctx context.Context, userID, lessonID uuid.UUID) (bool, error) {
	return f.lessonsDone[userID.String()+"/"+lessonID.String()], nil
}

func (f *fakeProgressRepo) CreateQuizAttempt(ctx context.Context, attempt *models.QuizAttempt) error {
	f.attempts = append(f.attempts, attempt)
	return nil
}

func (f *fakeProgressRepo) ListQuizAttempts(ctx context.Context, userID uuid.UUID, limit int) ([]*models.QuizAttempt, error) {
	return f.attempts, nil
}

func (f *fakeProgressRepo) DeleteAuxiliaryRecords(ctx context.Context, userID uuid.UUID) error {
	f.wiped = true
	f.lessonsDone = make(map[string]bool)
	f.attempts = nil
	return nil
}

// fakeCourseRepo serves a fixed catalog.
type fakeCourseRepo struct {
	tiers     map[string]models.Level
	questions []*models.QuizQuestion
	lessons   map[uuid.UUID]*models.CourseLesson
}

func (f *fakeCourseRepo) ListPublished(ctx context.Context, level *models.Level) ([]*models.Course, error) {
	return nil, nil
}

func (f *fakeCourseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return nil, repositories.ErrNotFound
}

func (f *fakeCourseRepo) GetModules(ctx context.Context, courseID uuid.UUID) ([]*models.CourseModule, error) {
	return nil, nil
}

func (f *fakeCourseRepo) GetLessons(ctx context.Context, moduleID uuid.UUID) ([]*models.CourseLesson, error) {
	return nil, nil
}

func (f *fakeCourseRepo) GetLessonByID(ctx context.Context, lessonID uuid.UUID) (*models.CourseLesson, error) {
	if l, ok := f.lessons[lessonID]; ok {
		return l, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeCourseRepo) GetQuizQuestions(ctx context.Context, courseID uuid.UUID) ([]*models.QuizQuestion, error) {
	return f.questions, nil
}

func (f *fakeCourseRepo) UnitTiers(ctx context.Context) (map[string]models.Level, error) {
	if f.tiers == nil {
		return map[string]models.Level{}, nil
	}
	return f.tiers, nil
}

func newTestProgressService(progressRepo *fakeProgressRepo, courseRepo *fakeCourseRepo) ProgressService {
	repos := &repositories.Collection{
		Progress: progressRepo,
		Course:   courseRepo,
	}
	retryCfg := &config.RetryConfig{MaxAttempts: 3, Interval: time.Millisecond}
	return NewProgressService(repos, nil, retryCfg, zap.NewNop())
}

func seedLedger(repo *fakeProgressRepo) uuid.UUID {
	userID := uuid.Must(uuid.NewV4())
	repo.rows[userID] = &models.UserProgress{
		UserID:         userID,
		Level:          models.LevelBeginner,
		CompletedUnits: []string{},
		Badges:         []string{},
	}
	return userID
}

func TestRecordCompletionIsIdempotent(t *testing.T) {
	repo := newFakeProgressRepo()
	userID := seedLedger(repo)
	svc := newTestProgressService(repo, &fakeCourseRepo{})

	req := &RecordCompletionRequest{UnitID: "unit-1", Points: 50}

	first, err := svc.RecordCompletion(context.Background(), userID, req)
	require.NoError(t, err)
	assert.True(t, first.Applied)
	assert.Equal(t, 50, first.PointsEarned)
	assert.Equal(t, 50, first.Progress.TotalPoints)
	assert.Equal(t, 1, first.Progress.CurrentStreak)

	second, err := svc.RecordCompletion(context.Background(), userID, req)
	require.NoError(t, err)
	assert.False(t, second.Applied)
	assert.Equal(t, 0, second.PointsEarned)
	assert.Equal(t, 50, second.Progress.TotalPoints, "points must not double count")
	assert.Equal(t, 1, second.Progress.CurrentStreak, "streak must not re-increment")
}

func TestRecordCompletionReportsNewBadges(t *testing.T) {
	repo := newFakeProgressRepo()
	userID := seedLedger(repo)
	repo.rows[userID].TotalPoints = 990
	svc := newTestProgressService(repo, &fakeCourseRepo{})

	resp, err := svc.RecordCompletion(context.Background(), userID, &RecordCompletionRequest{
		UnitID: "unit-1", Points: 10,
	})
	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Contains(t, resp.NewBadges, models.BadgePointMaster)
	assert.Contains(t, resp.Progress.Badges, models.BadgePointMaster)
}

func TestGetProgressRetriesFreshRows(t *testing.T) {
	repo := newFakeProgressRepo()
	userID := seedLedger(repo)
	repo.missUntil = 2 // first two reads race the provisioning writer
	svc := newTestProgressService(repo, &fakeCourseRepo{})

	resp, err := svc.GetProgress(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, resp.Progress.UserID)
	assert.Equal(t, 3, repo.reads)
}

func TestGetProgressNotFoundAfterRetryBudget(t *testing.T) {
	repo := newFakeProgressRepo()
	svc := newTestProgressService(repo, &fakeCourseRepo{})

	_, err := svc.GetProgress(context.Background(), uuid.Must(uuid.NewV4()))
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
	assert.Equal(t, 3, repo.reads, "retry budget is three attempts")
}

func TestResetProgressWipesEverything(t *testing.T) {
	repo := newFakeProgressRepo()
	userID := seedLedger(repo)
	repo.rows[userID].CompletedUnits = []string{"a", "b", "c"}
	repo.rows[userID].Badges = []string{models.BadgeFirstFive}
	repo.rows[userID].TotalPoints = 1200
	repo.rows[userID].CurrentStreak = 9
	repo.rows[userID].Level = models.LevelAdvanced
	svc := newTestProgressService(repo, &fakeCourseRepo{})

	resp, err := svc.ResetProgress(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, resp.Progress.CompletedUnits)
	assert.Empty(t, resp.Progress.Badges)
	assert.Equal(t, 0, resp.Progress.TotalPoints)
	assert.Equal(t, 0, resp.Progress.CurrentStreak)
	assert.Equal(t, models.LevelBeginner, resp.Progress.Level)
	assert.True(t, repo.wiped, "auxiliary completion records must be deleted")
	assert.Equal(t, "beginner", resp.Rank)
}

func TestGetUnlocksUsesCatalogTiers(t *testing.T) {
	repo := newFakeProgressRepo()
	userID := seedLedger(repo)
	repo.rows[userID].CompletedUnits = []string{"b1", "b2", "b3", "stale-unit"}
	course := &fakeCourseRepo{tiers: map[string]models.Level{
		"b1": models.LevelBeginner,
		"b2": models.LevelBeginner,
		"b3": models.LevelBeginner,
	}}
	svc := newTestProgressService(repo, course)

	state, err := svc.GetUnlocks(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, state.Beginner)
	assert.True(t, state.Intermediate)
	assert.False(t, state.Advanced)
}

func TestCompleteLessonRecordsAndAwards(t *testing.T) {
	repo := newFakeProgressRepo()
	userID := seedLedger(repo)
	lessonID := uuid.Must(uuid.NewV4())
	course := &fakeCourseRepo{lessons: map[uuid.UUID]*models.CourseLesson{
		lessonID: {ID: lessonID, Title: "Budgeting 101"},
	}}
	svc := newTestProgressService(repo, course)

	resp, err := svc.CompleteLesson(context.Background(), userID, lessonID)
	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Equal(t, lessonPoints, resp.Progress.TotalPoints)

	done, err := svc.IsLessonCompleted(context.Background(), userID, lessonID)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestCompleteLessonUnknownLesson(t *testing.T) {
	repo := newFakeProgressRepo()
	userID := seedLedger(repo)
	svc := newTestProgressService(repo, &fakeCourseRepo{})

	_, err := svc.CompleteLesson(context.Background(), userID, uuid.Must(uuid.NewV4()))
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func quizFixture(courseID uuid.UUID, correct int) []*models.QuizQuestion {
	questions := make([]*models.QuizQuestion, 4)
	for i := range questions {
		q := &models.QuizQuestion{ID: uuid.Must(uuid.NewV4()), CourseID: courseID, Question: "q"}
		for j := 0; j < 3; j++ {
			q.Options = append(q.Options, &models.QuizOption{
				OptionText: "opt",
				IsCorrect:  j == correct,
				OrderIndex: j,
			})
		}
		questions[i] = q
	}
	return questions
}

func TestSubmitQuizAttemptScoresServerSide(t *testing.T) {
	repo := newFakeProgressRepo()
	userID := seedLedger(repo)
	courseID := uuid.Must(uuid.NewV4())
	course := &fakeCourseRepo{questions: quizFixture(courseID, 1)}
	svc := newTestProgressService(repo, course)

	resp, err := svc.SubmitQuizAttempt(context.Background(), userID, &QuizAttemptRequest{
		CourseID: courseID,
		Selected: []int{1, 1, 0, -1}, // two right, one wrong, one unanswered
	})
	require.NoError(t, err)
	assert.Equal(t, 50, resp.Score)
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 50, resp.PointsEarned)
	assert.True(t, resp.Applied)

	require.Len(t, repo.attempts, 1)
	assert.Equal(t, 50, repo.attempts[0].Score)
	assert.Equal(t, 50, repo.attempts[0].PointsEarned)
}

func TestQuizAttemptHistory(t *testing.T) {
	repo := newFakeProgressRepo()
	userID := seedLedger(repo)
	courseID := uuid.Must(uuid.NewV4())
	course := &fakeCourseRepo{questions: quizFixture(courseID, 1)}
	svc := newTestProgressService(repo, course)

	attempts, err := svc.QuizAttemptHistory(context.Background(), userID, 0)
	require.NoError(t, err)
	assert.Empty(t, attempts, "history starts empty, not nil")

	_, err = svc.SubmitQuizAttempt(context.Background(), userID, &QuizAttemptRequest{
		CourseID: courseID,
		Selected: []int{1, 1, 0, -1},
	})
	require.NoError(t, err)

	attempts, err = svc.QuizAttemptHistory(context.Background(), userID, 10)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, courseID, attempts[0].CourseID)
}

func TestSubmitQuizAttemptFloorsPoints(t *testing.T) {
	repo := newFakeProgressRepo()
	userID := seedLedger(repo)
	courseID := uuid.Must(uuid.NewV4())
	course := &fakeCourseRepo{questions: quizFixture(courseID, 0)}
	svc := newTestProgressService(repo, course)

	resp, err := svc.SubmitQuizAttempt(context.Background(), userID, &QuizAttemptRequest{
		CourseID: courseID,
		Selected: []int{2, 2, 2, 2}, // all wrong
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Score)
	assert.Equal(t, 10, resp.PointsEarned, "quiz award floors at 10")
}

func TestSubmitQuizAttemptAnswerCountMismatch(t *testing.T) {
	repo := newFakeProgressRepo()
	userID := seedLedger(repo)
	courseID := uuid.Must(uuid.NewV4())
	course := &fakeCourseRepo{questions: quizFixture(courseID, 0)}
	svc := newTestProgressService(repo, course)

	_, err := svc.SubmitQuizAttempt(context.Background(), userID, &QuizAttemptRequest{
		CourseID: courseID,
		Selected: []int{0},
	})
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeQuizMismatch))
}

func TestUpdateProgressRejectsLockedTier(t *testing.T) {
	repo := newFakeProgressRepo()
	userID := seedLedger(repo)
	svc := newTestProgressService(repo, &fakeCourseRepo{})

	level := models.LevelIntermediate
	_, err := svc.UpdateProgress(context.Background(), userID, &UpdateProgressRequest{Level: &level})
	require.Error(t, err)
	assert.True(t, HasCode(err, "TIER_LOCKED"))
}

func TestUpdateProgressMovesToUnlockedTier(t *testing.T) {
	repo := newFakeProgressRepo()
	userID := seedLedger(repo)
	repo.rows[userID].CompletedUnits = []string{"b1", "b2", "b3"}
	course := &fakeCourseRepo{tiers: map[string]models.Level{
		"b1": models.LevelBeginner,
		"b2": models.LevelBeginner,
		"b3": models.LevelBeginner,
	}}
	svc := newTestProgressService(repo, course)

	level := models.LevelIntermediate
	resp, err := svc.UpdateProgress(context.Background(), userID, &UpdateProgressRequest{Level: &level})
	require.NoError(t, err)
	assert.Equal(t, models.LevelIntermediate, resp.Progress.Level)
}
