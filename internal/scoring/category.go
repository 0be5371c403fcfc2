package scoring

import (
	"fmt"
	"math"

	"pulseboard/internal/model"
)

// CategoryStatusFor buckets a 0-100 score. Out-of-range input falls into the
// nearest bucket; NaN is critical.
func CategoryStatusFor(score float64) model.CategoryStatus {
	switch {
	case math.IsNaN(score):
		return model.StatusCritical
	case score >= 80:
		return model.StatusExcellent
	case score >= 60:
		return model.StatusGood
	case score >= 40:
		return model.StatusAttention
	}
	return model.StatusCritical
}

// CalculateCategoryScore rolls up the Likert questions of one category.
// A category without Likert questions gets the NotApplicableScore sentinel.
// Unanswered questions are left out of the mean rather than counted as 0.
func CalculateCategoryScore(questions []model.SelectedQuestion, answersByQuestionID map[string][]model.Answer) (model.CategoryScore, error) {
	result := model.CategoryScore{
		Score:          model.NotApplicableScore,
		Status:         model.StatusGood,
		QuestionScores: make(map[string]model.LikertResult),
	}

	likert := 0
	sum, answered := 0, 0
	for _, q := range questions {
		if q.Type != model.QuestionTypeLikert {
			continue
		}
		likert++

		values, err := NumericAnswers(answersByQuestionID[q.ID])
		if err != nil {
			return model.CategoryScore{}, fmt.Errorf("question %s: %w", q.ID, err)
		}
		qs, err := CalculateLikertScore(values)
		if err != nil {
			return model.CategoryScore{}, fmt.Errorf("question %s: %w", q.ID, err)
		}
		result.QuestionScores[q.ID] = qs

		if qs.Count > 0 {
			sum += qs.Score
			answered++
		}
	}

	if likert == 0 {
		return result, nil
	}

	result.Score = 0
	if answered > 0 {
		result.Score = roundRatio(sum, answered)
	}
	result.Status = CategoryStatusFor(float64(result.Score))
	return result, nil
}

// NumericAnswers extracts the numeric values of answers. Unanswered entries
// are skipped; a text answer is an error.
func NumericAnswers(answers []model.Answer) ([]int, error) {
	values := make([]int, 0, len(answers))
	for _, a := range answers {
		if a.Answer.IsZero() {
			continue
		}
		n, ok := a.Answer.Numeric()
		if !ok {
			return nil, fmt.Errorf("%w: got text %q", ErrAnswerKind, a.Answer.Text)
		}
		values = append(values, n)
	}
	return values, nil
}
