package model

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are JWT claims for consultant/admin authentication
type AdminClaims struct {
	AdminID string `json:"adminId"`
	jwt.RegisteredClaims
}

// RespondentClaims are JWT claims for survey-scoped respondent tokens
type RespondentClaims struct {
	SurveyID     string `json:"surveyId"`
	RespondentID string `json:"respondentId"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for admin login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token   string `json:"token"`
	AdminID string `json:"adminId"`
}

// JoinResponse is returned when a respondent opens a survey
type JoinResponse struct {
	RespondentID string             `json:"respondentId"`
	Token        string             `json:"token"`
	SurveyID     string             `json:"surveyId"`
	Title        string             `json:"title"`
	Questions    []SelectedQuestion `json:"questions"`
}
