package scoring

import (
	"fmt"
	"math"

	"pulseboard/internal/model"
)

// flatEpsilon absorbs float noise when comparing one-decimal rates
const flatEpsilon = 1e-9

// CompareTrend compares a survey's analytics with the previous period.
// Categories are compared only when both periods have answers for them.
func CompareTrend(current, previous *model.SurveyAnalytics) (*model.Trend, error) {
	if current == nil || previous == nil {
		return nil, fmt.Errorf("both periods are required")
	}

	trend := &model.Trend{
		SurveyID:         current.SurveyID,
		PreviousSurveyID: previous.SurveyID,
		ResponseRate:     delta(current.ResponseRate.Rate, previous.ResponseRate.Rate),
		Categories:       []model.CategoryDelta{},
	}

	if current.ENPS != nil && previous.ENPS != nil && current.ENPS.Total > 0 && previous.ENPS.Total > 0 {
		d := delta(float64(current.ENPS.Score), float64(previous.ENPS.Score))
		trend.ENPS = &d
	}

	for _, c := range current.Categories {
		if !c.Applicable() || !c.Answered() {
			continue
		}
		p, ok := previous.Category(c.Category)
		if !ok || !p.Applicable() || !p.Answered() {
			continue
		}
		trend.Categories = append(trend.Categories, model.CategoryDelta{
			Category: c.Category,
			Delta:    delta(float64(c.Score), float64(p.Score)),
		})
	}

	return trend, nil
}

func delta(current, previous float64) model.Delta {
	d := model.Delta{
		Current:  current,
		Previous: previous,
		Change:   round1(current - previous),
	}
	switch {
	case math.Abs(d.Change) < flatEpsilon:
		d.Direction = model.DirectionFlat
	case d.Change > 0:
		d.Direction = model.DirectionUp
	default:
		d.Direction = model.DirectionDown
	}
	return d
}
