package model

import (
	"strconv"
	"time"
)

// NPSResult is the Net Promoter Score of a set of 0-10 ratings
type NPSResult struct {
	Score      int `json:"score" bson:"score"` // -100..100
	Promoters  int `json:"promoters" bson:"promoters"`
	Passives   int `json:"passives" bson:"passives"`
	Detractors int `json:"detractors" bson:"detractors"`
	Total      int `json:"total" bson:"total"`
}

// LikertResult is the favorability of a set of 1-5 ratings
type LikertResult struct {
	Score        int         `json:"score" bson:"score"`               // 0..100 favorability
	Average      float64     `json:"average" bson:"average"`           // 1.0..5.0, 0 when empty
	Distribution map[int]int `json:"distribution" bson:"distribution"` // value -> count, sparse
	Count        int         `json:"count" bson:"count"`
}

// CategoryStatus is the qualitative bucket of a category score
type CategoryStatus string

const (
	StatusExcellent CategoryStatus = "excellent"
	StatusGood      CategoryStatus = "good"
	StatusAttention CategoryStatus = "attention"
	StatusCritical  CategoryStatus = "critical"
)

// Rank orders statuses from critical (0) to excellent (3)
func (s CategoryStatus) Rank() int {
	switch s {
	case StatusExcellent:
		return 3
	case StatusGood:
		return 2
	case StatusAttention:
		return 1
	}
	return 0
}

// NotApplicableScore marks a category without Likert questions
const NotApplicableScore = -1

// CategoryScore is the rollup of all Likert questions sharing a category
type CategoryScore struct {
	Score          int                     `json:"score" bson:"score"` // 0..100, or NotApplicableScore
	Status         CategoryStatus          `json:"status" bson:"status"`
	QuestionScores map[string]LikertResult `json:"questionScores" bson:"questionScores"` // questionID -> result
}

// Applicable is false for the sentinel score of a category with no Likert questions
func (c CategoryScore) Applicable() bool {
	return c.Score != NotApplicableScore
}

// Answered reports whether at least one Likert question in the category got an answer
func (c CategoryScore) Answered() bool {
	for _, q := range c.QuestionScores {
		if q.Count > 0 {
			return true
		}
	}
	return false
}

// Percent renders the score for display. The sentinel is never shown as a number.
func (c CategoryScore) Percent() string {
	if !c.Applicable() {
		return "n/a"
	}
	return strconv.Itoa(c.Score) + "%"
}

// ResponseRate is participation against the roster
type ResponseRate struct {
	Rate      float64 `json:"rate" bson:"rate"` // percent, one decimal
	Responded int     `json:"responded" bson:"responded"`
	Pending   int     `json:"pending" bson:"pending"` // may be negative when the roster is undercounted
}

// NamedCategory is a category score with its label, in survey order
type NamedCategory struct {
	Category      string `json:"category" bson:"category"`
	CategoryScore `bson:",inline"`
}

// SurveyAnalytics is the full rollup of one survey
type SurveyAnalytics struct {
	SurveyID       string                    `json:"surveyId" bson:"surveyId"`
	ENPS           *NPSResult                `json:"enps,omitempty" bson:"enps,omitempty"` // First NPS question, nil without one
	NPS            map[string]NPSResult      `json:"nps" bson:"nps"`                       // questionID -> result
	Categories     []NamedCategory           `json:"categories" bson:"categories"`
	OptionCounts   map[string]map[string]int `json:"optionCounts" bson:"optionCounts"`   // questionID -> option -> count
	OpenTextCount  map[string]int            `json:"openTextCount" bson:"openTextCount"` // questionID -> non-empty answers
	ResponseRate   ResponseRate              `json:"responseRate" bson:"responseRate"`
	TotalResponses int                       `json:"totalResponses" bson:"totalResponses"`
	ComputedAt     time.Time                 `json:"computedAt" bson:"computedAt"`
}

// Category returns the named category score, or false when absent
func (a *SurveyAnalytics) Category(name string) (CategoryScore, bool) {
	for _, c := range a.Categories {
		if c.Category == name {
			return c.CategoryScore, true
		}
	}
	return CategoryScore{}, false
}

// SegmentResult is the rollup of the responses sharing one demographic value
type SegmentResult struct {
	Field      string          `json:"field"`
	Value      string          `json:"value"`
	Responses  int             `json:"responses"`
	Suppressed bool            `json:"suppressed"` // Below the anonymity threshold, scores withheld
	ENPS       *NPSResult      `json:"enps,omitempty"`
	Categories []NamedCategory `json:"categories,omitempty"`
}

// SegmentCount is the number of responses reporting one segment value
type SegmentCount struct {
	Value     string `json:"value"`
	Responses int    `json:"responses"`
}

// Participation is the live response count of a survey, split by one field
type Participation struct {
	SurveyID  string         `json:"surveyId"`
	Field     string         `json:"field"`
	Responded int64          `json:"responded"`
	Segments  []SegmentCount `json:"segments"`
}

// Issue is a category scoring below the "good" boundary
type Issue struct {
	Category string         `json:"category"`
	Score    int            `json:"score"`
	Status   CategoryStatus `json:"status"`
}

// Direction of a period-over-period change
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// Delta is the change of one metric between two periods
type Delta struct {
	Current   float64   `json:"current"`
	Previous  float64   `json:"previous"`
	Change    float64   `json:"change"`
	Direction Direction `json:"direction"`
}

// CategoryDelta is a Delta for a named category
type CategoryDelta struct {
	Category string `json:"category"`
	Delta
}

// Trend compares a survey with its previous period
type Trend struct {
	SurveyID         string          `json:"surveyId"`
	PreviousSurveyID string          `json:"previousSurveyId"`
	ENPS             *Delta          `json:"enps,omitempty"` // nil unless both periods have an NPS question
	ResponseRate     Delta           `json:"responseRate"`
	Categories       []CategoryDelta `json:"categories"`
}

// AnalyticsSnapshot is the analytics frozen when a survey closes
type AnalyticsSnapshot struct {
	SurveyID  string          `json:"surveyId" bson:"surveyId"`
	ClientID  string          `json:"clientId" bson:"clientId"`
	Title     string          `json:"title" bson:"title"`
	Analytics SurveyAnalytics `json:"analytics" bson:"analytics"`
	Issues    []Issue         `json:"issues" bson:"issues"`
	ClosedAt  time.Time       `json:"closedAt" bson:"closedAt"`
}
