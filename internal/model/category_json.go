package model

import "encoding/json"

// categoryScoreJSON is the wire form of CategoryScore. The not-applicable
// sentinel travels as "score": null with "applicable": false so no client
// ever renders -1 as a percentage.
type categoryScoreJSON struct {
	Score          *int                    `json:"score"`
	Applicable     bool                    `json:"applicable"`
	Status         CategoryStatus          `json:"status,omitempty"`
	QuestionScores map[string]LikertResult `json:"questionScores"`
}

func (c CategoryScore) wire() categoryScoreJSON {
	w := categoryScoreJSON{QuestionScores: c.QuestionScores}
	if w.QuestionScores == nil {
		w.QuestionScores = map[string]LikertResult{}
	}
	if c.Applicable() {
		score := c.Score
		w.Score = &score
		w.Applicable = true
		w.Status = c.Status
	}
	return w
}

func (w categoryScoreJSON) score() CategoryScore {
	if w.Score == nil {
		return CategoryScore{Score: NotApplicableScore, Status: StatusGood, QuestionScores: map[string]LikertResult{}}
	}
	return CategoryScore{Score: *w.Score, Status: w.Status, QuestionScores: w.QuestionScores}
}

func (c CategoryScore) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.wire())
}

func (c *CategoryScore) UnmarshalJSON(data []byte) error {
	var w categoryScoreJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*c = w.score()
	return nil
}

type namedCategoryJSON struct {
	Category string `json:"category"`
	categoryScoreJSON
}

// NamedCategory needs its own codec: the promoted CategoryScore methods would drop the label.
func (n NamedCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(namedCategoryJSON{Category: n.Category, categoryScoreJSON: n.CategoryScore.wire()})
}

func (n *NamedCategory) UnmarshalJSON(data []byte) error {
	var w namedCategoryJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	n.Category = w.Category
	n.CategoryScore = w.categoryScoreJSON.score()
	return nil
}
