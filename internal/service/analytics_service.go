package service

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"pulseboard/internal/cache"
	"pulseboard/internal/model"
	"pulseboard/internal/repository"
	"pulseboard/internal/scoring"
)

// AnalyticsService computes survey rollups, cache-aside over Redis
type AnalyticsService struct {
	surveyRepo      repository.SurveyRepo
	responseRepo    repository.ResponseRepo
	analyticsCache  cache.AnalyticsCache
	respondentCache cache.RespondentCache
	participation   cache.ParticipationCache
	minSegmentSize  int
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	surveyRepo repository.SurveyRepo,
	responseRepo repository.ResponseRepo,
	analyticsCache cache.AnalyticsCache,
	respondentCache cache.RespondentCache,
	participation cache.ParticipationCache,
	minSegmentSize int,
) *AnalyticsService {
	return &AnalyticsService{
		surveyRepo:      surveyRepo,
		responseRepo:    responseRepo,
		analyticsCache:  analyticsCache,
		respondentCache: respondentCache,
		participation:   participation,
		minSegmentSize:  minSegmentSize,
	}
}

// Survey returns the rollup of a survey, from cache when fresh
func (s *AnalyticsService) Survey(ctx context.Context, surveyID string) (*model.SurveyAnalytics, error) {
	cached, err := s.analyticsCache.GetSurvey(ctx, surveyID)
	if err != nil {
		log.Printf("[Analytics Service] Cache read failed for %s: %v", surveyID, err)
	} else if cached != nil {
		return cached, nil
	}

	survey, err := s.loadSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return s.compute(ctx, survey)
}

// Refresh drops the cached rollup and recomputes it
func (s *AnalyticsService) Refresh(ctx context.Context, survey *model.Survey) (*model.SurveyAnalytics, error) {
	if err := s.analyticsCache.Invalidate(ctx, survey.ID); err != nil {
		log.Printf("[Analytics Service] Cache invalidation failed for %s: %v", survey.ID, err)
	}
	return s.compute(ctx, survey)
}

// Invalidate drops every cached rollup of a survey
func (s *AnalyticsService) Invalidate(ctx context.Context, surveyID string) error {
	return s.analyticsCache.Invalidate(ctx, surveyID)
}

// Forget drops all Redis state kept for a survey
func (s *AnalyticsService) Forget(ctx context.Context, survey *model.Survey) error {
	if err := s.analyticsCache.Invalidate(ctx, survey.ID); err != nil {
		return err
	}
	if err := s.respondentCache.Clear(ctx, survey.ID); err != nil {
		return err
	}
	return s.participation.Clear(ctx, survey.ID, survey.SegmentFields...)
}

// Segments breaks the rollup down by one declared demographic field
func (s *AnalyticsService) Segments(ctx context.Context, surveyID, field string) ([]model.SegmentResult, error) {
	survey, err := s.loadSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if !survey.HasSegmentField(field) {
		return nil, invalid("field", "survey does not collect %q", field)
	}

	cached, err := s.analyticsCache.GetSegments(ctx, surveyID, field)
	if err != nil {
		log.Printf("[Analytics Service] Segment cache read failed for %s/%s: %v", surveyID, field, err)
	} else if cached != nil {
		return cached, nil
	}

	responses, err := s.responseRepo.GetBySurveyID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}
	segments, err := scoring.AnalyzeSegments(survey, responses, field, s.minSegmentSize)
	if err != nil {
		return nil, err
	}

	if err := s.analyticsCache.SetSegments(ctx, surveyID, field, segments); err != nil {
		log.Printf("[Analytics Service] Segment cache write failed for %s/%s: %v", surveyID, field, err)
	}
	return segments, nil
}

// TopIssues lists the weakest categories of a survey
func (s *AnalyticsService) TopIssues(ctx context.Context, surveyID string, limit int) ([]model.Issue, error) {
	analytics, err := s.Survey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return scoring.TopIssues(analytics.Categories, limit), nil
}

// Trend compares a survey with its previous period. Both rollups load concurrently.
func (s *AnalyticsService) Trend(ctx context.Context, surveyID string) (*model.Trend, error) {
	survey, err := s.loadSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey.PreviousSurveyID == "" {
		return nil, ErrNoPreviousSurvey
	}

	var current, previous *model.SurveyAnalytics
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.Survey(gctx, survey.ID)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.Survey(gctx, survey.PreviousSurveyID)
		if err != nil {
			return fmt.Errorf("previous survey: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return scoring.CompareTrend(current, previous)
}

// Participation returns live response counts split by one declared field
func (s *AnalyticsService) Participation(ctx context.Context, surveyID, field string) (*model.Participation, error) {
	survey, err := s.loadSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if field != "" && !survey.HasSegmentField(field) {
		return nil, invalid("field", "survey does not collect %q", field)
	}

	responded, err := s.respondentCache.Count(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	result := &model.Participation{
		SurveyID:  surveyID,
		Field:     field,
		Responded: responded,
		Segments:  []model.SegmentCount{},
	}
	if field == "" {
		return result, nil
	}

	segments, err := s.participation.Get(ctx, surveyID, field)
	if err != nil {
		return nil, err
	}
	result.Segments = segments
	return result, nil
}

func (s *AnalyticsService) compute(ctx context.Context, survey *model.Survey) (*model.SurveyAnalytics, error) {
	responses, err := s.responseRepo.GetBySurveyID(ctx, survey.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	analytics, err := scoring.AnalyzeSurvey(survey, responses, survey.TotalEmployees)
	if err != nil {
		return nil, err
	}

	if err := s.analyticsCache.SetSurvey(ctx, analytics); err != nil {
		log.Printf("[Analytics Service] Cache write failed for %s: %v", survey.ID, err)
	}
	return analytics, nil
}

func (s *AnalyticsService) loadSurvey(ctx context.Context, surveyID string) (*model.Survey, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}
	return survey, nil
}
