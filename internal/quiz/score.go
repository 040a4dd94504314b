// Package quiz scores multiple-choice quizzes. Scoring is pure; recording
// attempts and awarding points happens in the progress service.
package quiz

import (
	"math"

	"finlit/internal/models"
)

// Unanswered marks a question the user skipped. Any selection that is not
// a valid option index for its question counts as wrong.
const Unanswered = -1

// Score returns the integer percentage of correctly answered questions,
// rounded half away from zero. selected aligns by position with questions;
// a short slice leaves trailing questions unanswered. An empty quiz scores 0.
func Score(questions []*models.QuizQuestion, selected []int) int {
	if len(questions) == 0 {
		return 0
	}

	correct := 0
	for i, q := range questions {
		if i >= len(selected) {
			continue
		}
		if isCorrect(q, selected[i]) {
			correct++
		}
	}

	return int(math.Round(100 * float64(correct) / float64(len(questions))))
}

func isCorrect(q *models.QuizQuestion, selection int) bool {
	if selection < 0 || selection >= len(q.Options) {
		return false
	}
	return q.Options[selection].IsCorrect
}

// CorrectIndex returns the position of the correct option, or Unanswered
// when the question has none (malformed catalog data).
func CorrectIndex(q *models.QuizQuestion) int {
	for i, opt := range q.Options {
		if opt.IsCorrect {
			return i
		}
	}
	return Unanswered
}
