package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"pulseboard/internal/cache"
	"pulseboard/internal/model"
	"pulseboard/internal/repository"
	"pulseboard/internal/scoring"
)

// SubmitRequest is one respondent's submission
type SubmitRequest struct {
	Answers  map[string]model.AnswerValue `json:"answers"`
	Segments map[string]string            `json:"segments,omitempty"`
}

// ResponseService handles respondent joins and response submission
type ResponseService struct {
	surveyRepo      repository.SurveyRepo
	responseRepo    repository.ResponseRepo
	respondentCache cache.RespondentCache
	participation   cache.ParticipationCache
	analyticsSvc    *AnalyticsService
	authSvc         *AuthService
	broadcaster     Broadcaster
}

// NewResponseService creates a new response service
func NewResponseService(
	surveyRepo repository.SurveyRepo,
	responseRepo repository.ResponseRepo,
	respondentCache cache.RespondentCache,
	participation cache.ParticipationCache,
	analyticsSvc *AnalyticsService,
	authSvc *AuthService,
) *ResponseService {
	return &ResponseService{
		surveyRepo:      surveyRepo,
		responseRepo:    responseRepo,
		respondentCache: respondentCache,
		participation:   participation,
		analyticsSvc:    analyticsSvc,
		authSvc:         authSvc,
	}
}

// SetBroadcaster sets the broadcaster for dashboard events
func (s *ResponseService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Join issues an anonymous respondent identity for an active survey
func (s *ResponseService) Join(ctx context.Context, surveyID string) (*model.JoinResponse, error) {
	survey, err := s.activeSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	respondentID := "resp_" + uuid.New().String()
	token, err := s.authSvc.GenerateRespondentToken(surveyID, respondentID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.JoinResponse{
		RespondentID: respondentID,
		Token:        token,
		SurveyID:     survey.ID,
		Title:        survey.Title,
		Questions:    survey.Questions,
	}, nil
}

// Questions returns the questions of an active survey
func (s *ResponseService) Questions(ctx context.Context, surveyID string) ([]model.SelectedQuestion, error) {
	survey, err := s.activeSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return survey.Questions, nil
}

// Submit validates and stores a respondent's response. Each respondent
// submits at most once per survey.
func (s *ResponseService) Submit(ctx context.Context, surveyID, respondentID string, req *SubmitRequest) (*model.SurveyResponse, error) {
	survey, err := s.activeSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	answers, err := ValidateAnswers(survey, req.Answers)
	if err != nil {
		return nil, err
	}
	segments, err := ValidateSegments(survey, req.Segments)
	if err != nil {
		return nil, err
	}

	added, err := s.respondentCache.MarkResponded(ctx, surveyID, respondentID)
	if err != nil {
		// Redis is down: fall back to the stored responses, the unique index catches the rest
		log.Printf("[Response Service] Respondent cache unavailable for %s: %v", surveyID, err)
		exists, xerr := s.responseRepo.Exists(ctx, surveyID, respondentID)
		if xerr != nil {
			return nil, fmt.Errorf("dedupe check failed: %w", xerr)
		}
		added = !exists
	}
	if !added {
		return nil, ErrAlreadyResponded
	}

	response := &model.SurveyResponse{
		SurveyID:     surveyID,
		RespondentID: respondentID,
		Answers:      answers,
		Segments:     segments,
		SubmittedAt:  time.Now(),
	}
	if err := s.responseRepo.Create(ctx, response); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyResponded
		}
		if uerr := s.respondentCache.Unmark(ctx, surveyID, respondentID); uerr != nil {
			log.Printf("[Response Service] Failed to release respondent %s: %v", respondentID, uerr)
		}
		return nil, fmt.Errorf("failed to store response: %w", err)
	}

	// A close that landed while this response was being stored wins
	if current, err := s.surveyRepo.GetByID(ctx, surveyID); err == nil && current != nil && current.Status != model.SurveyActive {
		s.rollback(ctx, surveyID, respondentID)
		return nil, ErrSurveyNotActive
	}

	for _, field := range survey.SegmentFields {
		value := segments[field]
		if value == "" {
			value = scoring.UnspecifiedSegment
		}
		if err := s.participation.Increment(ctx, surveyID, field, value); err != nil {
			log.Printf("[Response Service] Participation update failed for %s/%s: %v", surveyID, field, err)
		}
	}

	if err := s.analyticsSvc.Invalidate(ctx, surveyID); err != nil {
		log.Printf("[Response Service] Cache invalidation failed for %s: %v", surveyID, err)
	}

	if s.broadcaster != nil {
		go s.pushAnalytics(survey)
	}

	return response, nil
}

// rollback removes a response that was stored after its survey closed
func (s *ResponseService) rollback(ctx context.Context, surveyID, respondentID string) {
	if err := s.responseRepo.Delete(ctx, surveyID, respondentID); err != nil {
		log.Printf("[Response Service] Failed to drop late response of %s: %v", respondentID, err)
	}
	if err := s.respondentCache.Unmark(ctx, surveyID, respondentID); err != nil {
		log.Printf("[Response Service] Failed to release respondent %s: %v", respondentID, err)
	}
	log.Printf("[Response Service] Rejected late response of %s to closed survey %s", respondentID, surveyID)
}

// pushAnalytics recomputes the rollup and sends it to open dashboards
func (s *ResponseService) pushAnalytics(survey *model.Survey) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	analytics, err := s.analyticsSvc.Refresh(ctx, survey)
	if err != nil {
		log.Printf("[Response Service] Analytics refresh failed for %s: %v", survey.ID, err)
		return
	}
	s.broadcaster.BroadcastToDashboards(survey.ID, EventAnalyticsUpdate, analytics)
}

func (s *ResponseService) activeSurvey(ctx context.Context, surveyID string) (*model.Survey, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}
	if survey.Status != model.SurveyActive {
		return nil, ErrSurveyNotActive
	}
	return survey, nil
}

// ValidateAnswers checks each answer against its question and fills in the
// question text. Unanswered mandatory questions are rejected.
func ValidateAnswers(survey *model.Survey, submitted map[string]model.AnswerValue) (map[string]model.Answer, error) {
	answers := make(map[string]model.Answer, len(submitted))
	for qid, value := range submitted {
		q := survey.Question(qid)
		if q == nil {
			return nil, invalid("answers."+qid, "unknown question")
		}
		if value.IsZero() {
			continue
		}
		if err := validateAnswer(q, value); err != nil {
			return nil, invalid("answers."+qid, "%v", err)
		}
		answers[qid] = model.Answer{QuestionText: q.Text, Answer: value}
	}

	for _, q := range survey.Questions {
		if !q.IsMandatory {
			continue
		}
		a, ok := answers[q.ID]
		if !ok || (q.Type == model.QuestionTypeOpenText && a.Answer.Text == "") {
			return nil, invalid("answers."+q.ID, "answer is required")
		}
	}
	return answers, nil
}

func validateAnswer(q *model.SelectedQuestion, value model.AnswerValue) error {
	switch q.Type {
	case model.QuestionTypeNPS:
		return numberIn(value, scoring.NPSMin, scoring.NPSMax)
	case model.QuestionTypeLikert:
		return numberIn(value, scoring.LikertMin, scoring.LikertMax)
	case model.QuestionTypeMultipleChoice:
		if !q.HasOption(value.String()) {
			return fmt.Errorf("%q is not one of the options", value.String())
		}
	case model.QuestionTypeOpenText:
		if value.Kind != model.AnswerText {
			return fmt.Errorf("expected text")
		}
	}
	return nil
}

func numberIn(value model.AnswerValue, lo, hi int) error {
	n, ok := value.Numeric()
	if !ok {
		return fmt.Errorf("expected a number from %d to %d", lo, hi)
	}
	if n < lo || n > hi {
		return fmt.Errorf("%d is outside %d..%d", n, lo, hi)
	}
	return nil
}

// ValidateSegments keeps the demographic fields the survey collects.
// Values for undeclared fields are rejected.
func ValidateSegments(survey *model.Survey, submitted map[string]string) (map[string]string, error) {
	if len(submitted) == 0 {
		return nil, nil
	}
	segments := make(map[string]string, len(submitted))
	for field, value := range submitted {
		if !survey.HasSegmentField(field) {
			return nil, invalid("segments."+field, "survey does not collect this field")
		}
		if value != "" {
			segments[field] = value
		}
	}
	return segments, nil
}
