package quiz

import (
	"testing"

	"finlit/internal/models"

	"github.com/stretchr/testify/assert"
)

// question builds a three-option question whose correct option sits at
// the given index.
func question(correctAt int) *models.QuizQuestion {
	q := &models.QuizQuestion{Question: "q"}
	for i := 0; i < 3; i++ {
		q.Options = append(q.Options, &models.QuizOption{
			OptionText: "option",
			IsCorrect:  i == correctAt,
			OrderIndex: i,
		})
	}
	return q
}

func TestScoreEmptyQuizIsZero(t *testing.T) {
	assert.Equal(t, 0, Score(nil, nil))
	assert.Equal(t, 0, Score([]*models.QuizQuestion{}, []int{}))
}

func TestScoreAllCorrect(t *testing.T) {
	questions := []*models.QuizQuestion{question(0), question(1), question(2)}
	assert.Equal(t, 100, Score(questions, []int{0, 1, 2}))
}

func TestScoreNoneCorrect(t *testing.T) {
	questions := []*models.QuizQuestion{question(0), question(1), question(2)}
	assert.Equal(t, 0, Score(questions, []int{1, 2, 0}))
}

func TestScoreRoundsToNearestPercent(t *testing.T) {
	// 1 of 3 correct = 33.33 -> 33; 2 of 3 = 66.67 -> 67.
	questions := []*models.QuizQuestion{question(0), question(0), question(0)}
	assert.Equal(t, 33, Score(questions, []int{0, 1, 1}))
	assert.Equal(t, 67, Score(questions, []int{0, 0, 1}))
}

func TestScoreUnansweredCountsWrong(t *testing.T) {
	questions := []*models.QuizQuestion{question(0), question(0)}

	// Explicit skip marker and short answer slices both count wrong.
	assert.Equal(t, 50, Score(questions, []int{0, Unanswered}))
	assert.Equal(t, 50, Score(questions, []int{0}))
	assert.Equal(t, 0, Score(questions, nil))
}

func TestScoreOutOfRangeSelectionCountsWrong(t *testing.T) {
	questions := []*models.QuizQuestion{question(2)}
	assert.Equal(t, 0, Score(questions, []int{3}))
	assert.Equal(t, 0, Score(questions, []int{-7}))
}

func TestCorrectIndex(t *testing.T) {
	assert.Equal(t, 1, CorrectIndex(question(1)))
	assert.Equal(t, Unanswered, CorrectIndex(&models.QuizQuestion{}))
}
