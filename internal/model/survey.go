package model

import "time"

type SurveyStatus string

const (
	SurveyDraft  SurveyStatus = "draft"
	SurveyActive SurveyStatus = "active"
	SurveyClosed SurveyStatus = "closed"
)

// Survey is one pulse survey run for a client
type Survey struct {
	ID               string             `json:"id" bson:"_id,omitempty"`
	ClientID         string             `json:"clientId" bson:"clientId"`
	Title            string             `json:"title" bson:"title"`
	Description      string             `json:"description,omitempty" bson:"description,omitempty"`
	Status           SurveyStatus       `json:"status" bson:"status"`
	Questions        []SelectedQuestion `json:"questions" bson:"questions"`
	SegmentFields    []string           `json:"segmentFields,omitempty" bson:"segmentFields,omitempty"`       // Demographic fields respondents may report
	TotalEmployees   int                `json:"totalEmployees" bson:"totalEmployees"`                         // Roster size, 0 when unknown
	PreviousSurveyID string             `json:"previousSurveyId,omitempty" bson:"previousSurveyId,omitempty"` // Prior period for trend analysis
	OpenedAt         *time.Time         `json:"openedAt,omitempty" bson:"openedAt,omitempty"`
	ClosedAt         *time.Time         `json:"closedAt,omitempty" bson:"closedAt,omitempty"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Question returns the survey question with the given id, or nil
func (s *Survey) Question(id string) *SelectedQuestion {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

// HasSegmentField reports whether respondents may report the demographic field
func (s *Survey) HasSegmentField(field string) bool {
	for _, f := range s.SegmentFields {
		if f == field {
			return true
		}
	}
	return false
}
