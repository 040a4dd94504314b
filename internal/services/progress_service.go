// file: internal/services/progress_service.go
package services

import (
	"context"
	"errors"

	"finlit/internal/config"
	"finlit/internal/events"
	"finlit/internal/models"
	"finlit/internal/progress"
	"finlit/internal/quiz"
	"finlit/internal/repositories"
	"finlit/internal/retry"
	"finlit/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// lessonPoints is the fixed award for completing a non-quiz unit.
const lessonPoints = 10

// progressService implements ProgressService: it owns the persistence
// choreography around the pure ledger rules in internal/progress.
type progressService struct {
	repos    *repositories.Collection
	bus      *events.Bus
	retryCfg retry.Config
	validate *validator.Validate
	logger   *zap.Logger
}

// NewProgressService creates the progress service.
func NewProgressService(
	repos *repositories.Collection,
	bus *events.Bus,
	retryCfg *config.RetryConfig,
	logger *zap.Logger,
) ProgressService {
	cfg := retry.DefaultConfig()
	if retryCfg != nil {
		cfg = retry.Config{MaxAttempts: retryCfg.MaxAttempts, Interval: retryCfg.Interval}
	}
	return &progressService{
		repos:    repos,
		bus:      bus,
		retryCfg: cfg,
		validate: validation.New(),
		logger:   logger,
	}
}

// fetchLedger loads the ledger row under the bounded retry. A missing row
// right after registration is transient (the provisioning transaction may
// not be visible to this reader yet); a row still missing once the retry
// budget is spent surfaces as NOT_FOUND.
func (s *progressService) fetchLedger(ctx context.Context, userID uuid.UUID) (*models.UserProgress, error) {
	p, err := retry.Do(ctx, s.retryCfg, s.logger, "fetch_progress",
		func(ctx context.Context) (*models.UserProgress, error) {
			row, err := s.repos.Progress.GetByUserID(ctx, userID)
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, retry.Transient(err)
			}
			return row, err
		})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundError("progress not found")
		}
		return nil, NewInternalError("failed to load progress")
	}
	return p, nil
}

// GetProgress returns the ledger row with its derived display fields.
func (s *progressService) GetProgress(ctx context.Context, userID uuid.UUID) (*ProgressResponse, error) {
	p, err := s.fetchLedger(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildProgressResponse(p), nil
}

// UpdateProgress applies a partial update to the ledger. The tier pointer
// only moves to tiers the unlock gate has already opened.
func (s *progressService) UpdateProgress(ctx context.Context, userID uuid.UUID, req *UpdateProgressRequest) (*ProgressResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid progress update", err)
	}

	p, err := s.fetchLedger(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Level != nil && *req.Level != p.Level {
		tiers, err := s.repos.Course.UnitTiers(ctx)
		if err != nil {
			return nil, NewInternalError("failed to derive unlock state")
		}
		state := progress.Unlocks(p, tiers)
		switch *req.Level {
		case models.LevelIntermediate:
			if !state.Intermediate {
				return nil, NewBusinessError("intermediate tier is still locked", "TIER_LOCKED")
			}
		case models.LevelAdvanced:
			if !state.Advanced {
				return nil, NewBusinessError("advanced tier is still locked", "TIER_LOCKED")
			}
		}
		p.Level = *req.Level
		if err := s.repos.Progress.Update(ctx, p); err != nil {
			return nil, NewInternalError("failed to update progress")
		}
	}

	return buildProgressResponse(p), nil
}

// RecordCompletion applies a completion event. Repeat completions of the
// same unit are acknowledged without changing the ledger.
func (s *progressService) RecordCompletion(ctx context.Context, userID uuid.UUID, req *RecordCompletionRequest) (*CompletionResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid completion request", err)
	}

	p, err := s.fetchLedger(ctx, userID)
	if err != nil {
		return nil, err
	}

	before := len(p.Badges)
	rankBefore := progress.RankForPoints(p.TotalPoints)
	applied := progress.ApplyCompletion(p, req.UnitID, req.Points)
	if applied {
		if err := s.repos.Progress.Update(ctx, p); err != nil {
			s.logger.Error("failed to persist completion",
				zap.Error(err),
				zap.String("user_id", userID.String()),
				zap.String("unit_id", req.UnitID),
			)
			return nil, NewInternalError("failed to record completion")
		}
	}

	var newBadges []string
	if applied {
		newBadges = append(newBadges, p.Badges[before:]...)
		s.bus.Publish(events.CompletionRecorded{UserID: userID, UnitID: req.UnitID, Points: req.Points})
		for _, b := range newBadges {
			s.bus.Publish(events.BadgeEarned{UserID: userID, BadgeID: b})
		}
		if rankAfter := progress.RankForPoints(p.TotalPoints); rankAfter != rankBefore {
			s.bus.Publish(events.RankChanged{UserID: userID, From: rankBefore, To: rankAfter})
		}
	}

	tiers, err := s.repos.Course.UnitTiers(ctx)
	if err != nil {
		return nil, NewInternalError("failed to derive unlock state")
	}

	earned := 0
	if applied {
		earned = req.Points
	}
	return &CompletionResponse{
		Applied:      applied,
		PointsEarned: earned,
		NewBadges:    newBadges,
		Progress:     p,
		Unlocks:      progress.Unlocks(p, tiers),
	}, nil
}

// ResetProgress wipes the ledger and the auxiliary completion history.
func (s *progressService) ResetProgress(ctx context.Context, userID uuid.UUID) (*ProgressResponse, error) {
	p, err := s.fetchLedger(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress.Reset(p)
	if err := s.repos.Progress.Update(ctx, p); err != nil {
		return nil, NewInternalError("failed to reset progress")
	}
	if err := s.repos.Progress.DeleteAuxiliaryRecords(ctx, userID); err != nil {
		return nil, NewInternalError("failed to clear completion history")
	}

	s.logger.Info("progress reset", zap.String("user_id", userID.String()))
	return buildProgressResponse(p), nil
}

// GetUnlocks derives which catalog tiers the user has opened.
func (s *progressService) GetUnlocks(ctx context.Context, userID uuid.UUID) (*progress.UnlockState, error) {
	p, err := s.fetchLedger(ctx, userID)
	if err != nil {
		return nil, err
	}
	tiers, err := s.repos.Course.UnitTiers(ctx)
	if err != nil {
		return nil, NewInternalError("failed to derive unlock state")
	}
	state := progress.Unlocks(p, tiers)
	return &state, nil
}

// CompleteLesson records a lesson completion and feeds the ledger with the
// fixed non-quiz award.
func (s *progressService) CompleteLesson(ctx context.Context, userID, lessonID uuid.UUID) (*CompletionResponse, error) {
	if _, err := s.repos.Course.GetLessonByID(ctx, lessonID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundError("lesson not found")
		}
		return nil, NewInternalError("failed to load lesson")
	}

	if err := s.repos.Progress.UpsertLessonCompletion(ctx, userID, lessonID); err != nil {
		return nil, NewInternalError("failed to record lesson completion")
	}

	return s.RecordCompletion(ctx, userID, &RecordCompletionRequest{
		UnitID: lessonID.String(),
		Points: lessonPoints,
	})
}

// IsLessonCompleted reports whether the user has finished the lesson.
func (s *progressService) IsLessonCompleted(ctx context.Context, userID, lessonID uuid.UUID) (bool, error) {
	done, err := s.repos.Progress.IsLessonCompleted(ctx, userID, lessonID)
	if err != nil {
		return false, NewInternalError("failed to check lesson completion")
	}
	return done, nil
}

// SubmitQuizAttempt scores the submission server side, stores the attempt,
// and feeds the completion into the ledger using the course id as the unit.
func (s *progressService) SubmitQuizAttempt(ctx context.Context, userID uuid.UUID, req *QuizAttemptRequest) (*QuizAttemptResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid quiz attempt", err)
	}

	questions, err := s.repos.Course.GetQuizQuestions(ctx, req.CourseID)
	if err != nil {
		return nil, NewInternalError("failed to load quiz")
	}
	if len(questions) == 0 {
		return nil, NewNotFoundError("course has no quiz")
	}
	if len(req.Selected) != len(questions) {
		return nil, NewBusinessError("one answer per question is required", CodeQuizMismatch)
	}

	score := quiz.Score(questions, req.Selected)
	points := progress.PointsForScore(score)

	attempt := &models.QuizAttempt{
		UserID:         userID,
		CourseID:       req.CourseID,
		Score:          score,
		TotalQuestions: len(questions),
		PointsEarned:   points,
	}
	if err := s.repos.Progress.CreateQuizAttempt(ctx, attempt); err != nil {
		return nil, NewInternalError("failed to record quiz attempt")
	}

	completion, err := s.RecordCompletion(ctx, userID, &RecordCompletionRequest{
		UnitID: req.CourseID.String(),
		Points: points,
	})
	if err != nil {
		return nil, err
	}

	earned := 0
	if completion.Applied {
		earned = points
	}
	return &QuizAttemptResponse{
		Score:        score,
		Total:        len(questions),
		PointsEarned: earned,
		Applied:      completion.Applied,
		Progress:     completion.Progress,
	}, nil
}

// QuizAttemptHistory returns the caller's most recent attempts, newest
// first.
func (s *progressService) QuizAttemptHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*models.QuizAttempt, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	attempts, err := s.repos.Progress.ListQuizAttempts(ctx, userID, limit)
	if err != nil {
		return nil, NewInternalError("failed to load quiz attempts")
	}
	if attempts == nil {
		attempts = []*models.QuizAttempt{}
	}
	return attempts, nil
}

// buildProgressResponse attaches the derived display fields to a ledger row.
func buildProgressResponse(p *models.UserProgress) *ProgressResponse {
	resp := &ProgressResponse{
		Progress:     p,
		Rank:         progress.RankForPoints(p.TotalPoints),
		EarnedBadges: []models.Badge{},
		BadgeCatalog: models.BadgeCatalog,
	}
	if next, ok := progress.NextRankThreshold(p.TotalPoints); ok {
		resp.NextRankAt = &next
	}
	for _, id := range p.Badges {
		if badge, ok := models.BadgeByID(id); ok {
			resp.EarnedBadges = append(resp.EarnedBadges, badge)
		}
	}
	return resp
}
