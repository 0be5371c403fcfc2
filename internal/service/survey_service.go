package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"pulseboard/internal/model"
	"pulseboard/internal/repository"
)

// SurveyService handles survey CRUD and the draft -> active -> closed lifecycle
type SurveyService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
	reportSvc    *ReportService
	analyticsSvc *AnalyticsService
	broadcaster  Broadcaster
}

// NewSurveyService creates a new survey service
func NewSurveyService(
	surveyRepo repository.SurveyRepo,
	responseRepo repository.ResponseRepo,
	reportSvc *ReportService,
	analyticsSvc *AnalyticsService,
) *SurveyService {
	return &SurveyService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		reportSvc:    reportSvc,
		analyticsSvc: analyticsSvc,
	}
}

// SetBroadcaster sets the broadcaster for dashboard events
func (s *SurveyService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Create validates and stores a new draft survey
func (s *SurveyService) Create(ctx context.Context, survey *model.Survey) (string, error) {
	if err := ValidateSurvey(survey); err != nil {
		return "", err
	}
	if survey.PreviousSurveyID != "" {
		if _, err := s.mustGet(ctx, survey.PreviousSurveyID); err != nil {
			return "", fmt.Errorf("previous survey: %w", err)
		}
	}
	survey.Status = model.SurveyDraft
	survey.OpenedAt = nil
	survey.ClosedAt = nil
	return s.surveyRepo.Create(ctx, survey)
}

// GetByID retrieves a survey by ID
func (s *SurveyService) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	return s.mustGet(ctx, id)
}

// GetByClientID retrieves all surveys of a client
func (s *SurveyService) GetByClientID(ctx context.Context, clientID string) ([]*model.Survey, error) {
	return s.surveyRepo.GetByClientID(ctx, clientID)
}

// Update replaces the editable fields of a draft survey
func (s *SurveyService) Update(ctx context.Context, survey *model.Survey) error {
	existing, err := s.mustGet(ctx, survey.ID)
	if err != nil {
		return err
	}
	if existing.Status != model.SurveyDraft {
		return ErrSurveyNotEditable
	}
	if err := ValidateSurvey(survey); err != nil {
		return err
	}
	if survey.PreviousSurveyID == survey.ID {
		return invalid("previousSurveyId", "survey cannot follow itself")
	}

	survey.Status = existing.Status
	survey.CreatedAt = existing.CreatedAt
	return s.surveyRepo.Update(ctx, survey)
}

// Delete removes a survey that is not collecting responses, with its responses
func (s *SurveyService) Delete(ctx context.Context, id string) error {
	survey, err := s.mustGet(ctx, id)
	if err != nil {
		return err
	}
	if survey.Status == model.SurveyActive {
		return ErrSurveyNotEditable
	}

	if err := s.responseRepo.DeleteBySurveyID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete responses: %w", err)
	}
	if err := s.analyticsSvc.Forget(ctx, survey); err != nil {
		log.Printf("[Survey Service] Failed to clear cached state of %s: %v", id, err)
	}
	return s.surveyRepo.Delete(ctx, id)
}

// Open starts collecting responses
func (s *SurveyService) Open(ctx context.Context, id string) (*model.Survey, error) {
	survey, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey.Status != model.SurveyDraft {
		return nil, ErrSurveyNotEditable
	}
	if len(survey.Questions) == 0 {
		return nil, invalid("questions", "at least one question is required")
	}

	now := time.Now()
	survey.Status = model.SurveyActive
	survey.OpenedAt = &now
	if err := s.surveyRepo.Update(ctx, survey); err != nil {
		return nil, err
	}

	log.Printf("[Survey Service] Survey %s opened with %d questions", id, len(survey.Questions))
	return survey, nil
}

// Close stops collecting responses and freezes the analytics snapshot
func (s *SurveyService) Close(ctx context.Context, id string) (*model.AnalyticsSnapshot, error) {
	survey, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey.Status != model.SurveyActive {
		return nil, ErrSurveyNotActive
	}

	// Stop accepting responses before freezing them
	now := time.Now()
	survey.Status = model.SurveyClosed
	survey.ClosedAt = &now
	if err := s.surveyRepo.Update(ctx, survey); err != nil {
		return nil, err
	}

	snapshot, err := s.reportSvc.CreateSnapshot(ctx, survey)
	if err != nil {
		// Reopen so the close can be retried
		survey.Status = model.SurveyActive
		survey.ClosedAt = nil
		if rerr := s.surveyRepo.Update(ctx, survey); rerr != nil {
			log.Printf("[Survey Service] Failed to reopen %s after snapshot error: %v", id, rerr)
		}
		return nil, fmt.Errorf("failed to create snapshot: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToDashboards(id, EventSurveyClosed, snapshot)
		s.broadcaster.DisconnectSurvey(id)
	}

	log.Printf("[Survey Service] Survey %s closed: %d responses", id, snapshot.Analytics.TotalResponses)
	return snapshot, nil
}

func (s *SurveyService) mustGet(ctx context.Context, id string) (*model.Survey, error) {
	survey, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}
	return survey, nil
}

// ValidateSurvey checks the survey definition the scoring engine relies on
func ValidateSurvey(survey *model.Survey) error {
	if survey.Title == "" {
		return invalid("title", "is required")
	}
	if survey.TotalEmployees < 0 {
		return invalid("totalEmployees", "must not be negative")
	}

	seen := make(map[string]bool, len(survey.Questions))
	for i, q := range survey.Questions {
		field := fmt.Sprintf("questions[%d]", i)
		if q.ID == "" {
			return invalid(field, "id is required")
		}
		if err := ValidateQuestion(field, q.Type, q.Category, q.Options); err != nil {
			return err
		}
		if seen[q.ID] {
			return invalid(field, "duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
	}

	fields := make(map[string]bool, len(survey.SegmentFields))
	for _, f := range survey.SegmentFields {
		if f == "" || fields[f] {
			return invalid("segmentFields", "fields must be unique and non-empty")
		}
		fields[f] = true
	}
	return nil
}

// ValidateQuestion checks the type, category and options of one question
func ValidateQuestion(field string, t model.QuestionType, category string, options []string) error {
	if !t.Valid() {
		return invalid(field, "unknown question type %q", t)
	}
	if category == "" {
		return invalid(field, "category is required")
	}
	if t == model.QuestionTypeMultipleChoice && len(options) == 0 {
		return invalid(field, "multiple-choice question needs options")
	}
	return nil
}
