package model

import "time"

// Answer is one respondent's reply to one question
type Answer struct {
	QuestionText string      `json:"questionText" bson:"questionText"` // Carried for reporting only
	Answer       AnswerValue `json:"answer" bson:"answer"`
}

// SurveyResponse is one respondent's full submission. Never mutated after creation.
type SurveyResponse struct {
	ID           string            `json:"id" bson:"_id,omitempty"`
	SurveyID     string            `json:"surveyId" bson:"surveyId"`
	RespondentID string            `json:"respondentId" bson:"respondentId"`
	Answers      map[string]Answer `json:"answers" bson:"answers"`                       // questionID -> answer
	Segments     map[string]string `json:"segments,omitempty" bson:"segments,omitempty"` // department, tenure, location...
	SubmittedAt  time.Time         `json:"submittedAt" bson:"submittedAt"`
}

// Segment returns the response's value for a demographic field
func (r *SurveyResponse) Segment(field string) string {
	if r.Segments == nil {
		return ""
	}
	return r.Segments[field]
}
