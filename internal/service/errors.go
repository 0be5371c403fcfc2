package service

import (
	"errors"
	"fmt"
)

var (
	ErrSurveyNotFound     = errors.New("survey not found")
	ErrSurveyNotActive    = errors.New("survey is not accepting responses")
	ErrSurveyNotEditable  = errors.New("only draft surveys can be changed")
	ErrNoPreviousSurvey   = errors.New("survey has no previous period")
	ErrAlreadyResponded   = errors.New("respondent already submitted a response")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrSnapshotNotFound   = errors.New("analytics snapshot not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// ValidationError reports which field of a request was rejected
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
