package scoring

import (
	"testing"

	"pulseboard/internal/model"
)

func category(name string, score int, answered bool) model.NamedCategory {
	qs := map[string]model.LikertResult{}
	if answered {
		qs[name+"-q"] = model.LikertResult{Score: score, Count: 1}
	}
	return model.NamedCategory{
		Category:      name,
		CategoryScore: model.CategoryScore{Score: score, Status: CategoryStatusFor(float64(score)), QuestionScores: qs},
	}
}

func TestTopIssues(t *testing.T) {
	categories := []model.NamedCategory{
		category("Recognition", 55, true),
		category("Workload", 30, true),
		category("Growth", 60, true),
		category("Pay", 30, true),
		category("Feedback", model.NotApplicableScore, false),
		category("Tools", 0, false),
	}

	got := TopIssues(categories, 0)
	want := []model.Issue{
		{Category: "Pay", Score: 30, Status: model.StatusCritical},
		{Category: "Workload", Score: 30, Status: model.StatusCritical},
		{Category: "Recognition", Score: 55, Status: model.StatusAttention},
	}
	if len(got) != len(want) {
		t.Fatalf("issues = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("issue %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if limited := TopIssues(categories, 1); len(limited) != 1 || limited[0].Category != "Pay" {
		t.Fatalf("limited = %+v", limited)
	}
}

func TestTopIssuesNone(t *testing.T) {
	got := TopIssues([]model.NamedCategory{category("Growth", 90, true)}, 5)
	if got == nil || len(got) != 0 {
		t.Fatalf("issues = %#v, want empty non-nil", got)
	}
}
