package scoring

import (
	"fmt"
	"sort"

	"pulseboard/internal/model"
)

// UnspecifiedSegment groups responses that did not report the field
const UnspecifiedSegment = "unspecified"

// AnalyzeSegments splits responses by one demographic field and rolls up each
// group. Groups smaller than minGroupSize are suppressed: only their size is
// reported so individual answers cannot be inferred.
func AnalyzeSegments(survey *model.Survey, responses []*model.SurveyResponse, field string, minGroupSize int) ([]model.SegmentResult, error) {
	if survey == nil {
		return nil, fmt.Errorf("survey is required")
	}
	if field == "" {
		return nil, fmt.Errorf("segment field is required")
	}

	groups := make(map[string][]*model.SurveyResponse)
	for _, r := range responses {
		if r == nil {
			continue
		}
		value := r.Segment(field)
		if value == "" {
			value = UnspecifiedSegment
		}
		groups[value] = append(groups[value], r)
	}

	values := make([]string, 0, len(groups))
	for v := range groups {
		values = append(values, v)
	}
	sort.Strings(values)

	results := make([]model.SegmentResult, 0, len(values))
	for _, v := range values {
		group := groups[v]
		seg := model.SegmentResult{
			Field:     field,
			Value:     v,
			Responses: len(group),
		}
		if len(group) < minGroupSize {
			seg.Suppressed = true
			results = append(results, seg)
			continue
		}

		r, err := rollup(survey, GroupAnswers(survey, group))
		if err != nil {
			return nil, fmt.Errorf("segment %s=%s: %w", field, v, err)
		}
		seg.ENPS = r.ENPS
		seg.Categories = r.Categories
		results = append(results, seg)
	}
	return results, nil
}
