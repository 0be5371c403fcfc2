package scoring

import (
	"sort"

	"pulseboard/internal/model"
)

// TopIssues lists answered categories below the "good" boundary, worst
// first. limit <= 0 returns all of them.
func TopIssues(categories []model.NamedCategory, limit int) []model.Issue {
	issues := []model.Issue{}
	for _, c := range categories {
		if !c.Applicable() || !c.Answered() {
			continue
		}
		status := CategoryStatusFor(float64(c.Score))
		if status.Rank() >= model.StatusGood.Rank() {
			continue
		}
		issues = append(issues, model.Issue{Category: c.Category, Score: c.Score, Status: status})
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Score != issues[j].Score {
			return issues[i].Score < issues[j].Score
		}
		return issues[i].Category < issues[j].Category
	})

	if limit > 0 && len(issues) > limit {
		issues = issues[:limit]
	}
	return issues
}
