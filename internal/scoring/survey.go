package scoring

import (
	"fmt"
	"time"

	"pulseboard/internal/model"
)

// GroupAnswers indexes the answers of all responses by question id.
// Answers to question ids outside the survey are dropped.
func GroupAnswers(survey *model.Survey, responses []*model.SurveyResponse) map[string][]model.Answer {
	known := make(map[string]struct{}, len(survey.Questions))
	for _, q := range survey.Questions {
		known[q.ID] = struct{}{}
	}

	grouped := make(map[string][]model.Answer, len(survey.Questions))
	for _, r := range responses {
		if r == nil {
			continue
		}
		for qid, a := range r.Answers {
			if _, ok := known[qid]; !ok {
				continue
			}
			grouped[qid] = append(grouped[qid], a)
		}
	}
	return grouped
}

// CategoriesInOrder groups survey questions by category, keeping the order in
// which categories first appear.
func CategoriesInOrder(questions []model.SelectedQuestion) ([]string, map[string][]model.SelectedQuestion) {
	var order []string
	byCategory := make(map[string][]model.SelectedQuestion)
	for _, q := range questions {
		if _, seen := byCategory[q.Category]; !seen {
			order = append(order, q.Category)
		}
		byCategory[q.Category] = append(byCategory[q.Category], q)
	}
	return order, byCategory
}

// AnalyzeSurvey computes the full rollup of a survey's responses
func AnalyzeSurvey(survey *model.Survey, responses []*model.SurveyResponse, totalEmployees int) (*model.SurveyAnalytics, error) {
	if survey == nil {
		return nil, fmt.Errorf("survey is required")
	}

	answers := GroupAnswers(survey, responses)
	result, err := rollup(survey, answers)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, r := range responses {
		if r != nil {
			total++
		}
	}
	rate, err := CalculateResponseRate(totalEmployees, total)
	if err != nil {
		return nil, err
	}

	result.SurveyID = survey.ID
	result.ResponseRate = rate
	result.TotalResponses = total
	result.ComputedAt = time.Now()
	return result, nil
}

// rollup runs every per-question and per-category calculation over grouped answers
func rollup(survey *model.Survey, answers map[string][]model.Answer) (*model.SurveyAnalytics, error) {
	result := &model.SurveyAnalytics{
		NPS:           make(map[string]model.NPSResult),
		Categories:    []model.NamedCategory{},
		OptionCounts:  make(map[string]map[string]int),
		OpenTextCount: make(map[string]int),
	}

	for _, q := range survey.Questions {
		switch q.Type {
		case model.QuestionTypeNPS:
			values, err := NumericAnswers(answers[q.ID])
			if err != nil {
				return nil, fmt.Errorf("question %s: %w", q.ID, err)
			}
			nps, err := CalculateNPS(values)
			if err != nil {
				return nil, fmt.Errorf("question %s: %w", q.ID, err)
			}
			result.NPS[q.ID] = nps
			if result.ENPS == nil {
				enps := nps
				result.ENPS = &enps
			}

		case model.QuestionTypeMultipleChoice:
			counts := make(map[string]int)
			for _, a := range answers[q.ID] {
				if a.Answer.IsZero() {
					continue
				}
				counts[a.Answer.String()]++
			}
			result.OptionCounts[q.ID] = counts

		case model.QuestionTypeOpenText:
			n := 0
			for _, a := range answers[q.ID] {
				if a.Answer.String() != "" {
					n++
				}
			}
			result.OpenTextCount[q.ID] = n
		}
	}

	order, byCategory := CategoriesInOrder(survey.Questions)
	for _, name := range order {
		cs, err := CalculateCategoryScore(byCategory[name], answers)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}
		result.Categories = append(result.Categories, model.NamedCategory{Category: name, CategoryScore: cs})
	}

	return result, nil
}
