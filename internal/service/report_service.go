package service

import (
	"context"
	"time"

	"pulseboard/internal/model"
	"pulseboard/internal/repository"
	"pulseboard/internal/scoring"
)

// ReportService freezes and serves the analytics of closed surveys
type ReportService struct {
	reportRepo   repository.ReportRepo
	analyticsSvc *AnalyticsService
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepo, analyticsSvc *AnalyticsService) *ReportService {
	return &ReportService{
		reportRepo:   reportRepo,
		analyticsSvc: analyticsSvc,
	}
}

// CreateSnapshot recomputes the survey's rollup and stores it as the final report
func (s *ReportService) CreateSnapshot(ctx context.Context, survey *model.Survey) (*model.AnalyticsSnapshot, error) {
	analytics, err := s.analyticsSvc.Refresh(ctx, survey)
	if err != nil {
		return nil, err
	}

	closedAt := time.Now()
	if survey.ClosedAt != nil {
		closedAt = *survey.ClosedAt
	}

	snapshot := &model.AnalyticsSnapshot{
		SurveyID:  survey.ID,
		ClientID:  survey.ClientID,
		Title:     survey.Title,
		Analytics: *analytics,
		Issues:    scoring.TopIssues(analytics.Categories, 0),
		ClosedAt:  closedAt,
	}

	if err := s.reportRepo.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// GetSnapshot retrieves the frozen report of a closed survey
func (s *ReportService) GetSnapshot(ctx context.Context, surveyID string) (*model.AnalyticsSnapshot, error) {
	snapshot, err := s.reportRepo.GetSnapshot(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, ErrSnapshotNotFound
	}
	return snapshot, nil
}

// ListSnapshots retrieves a client's reports, most recent first
func (s *ReportService) ListSnapshots(ctx context.Context, clientID string) ([]*model.AnalyticsSnapshot, error) {
	if clientID == "" {
		return nil, invalid("clientId", "is required")
	}
	return s.reportRepo.GetSnapshotsByClientID(ctx, clientID)
}
