package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pulseboard/internal/model"
)

// AnalyticsCache holds computed survey rollups until the next response invalidates them
type AnalyticsCache interface {
	GetSurvey(ctx context.Context, surveyID string) (*model.SurveyAnalytics, error)
	SetSurvey(ctx context.Context, analytics *model.SurveyAnalytics) error

	// Segment breakdowns live in one hash per survey, one field per demographic
	GetSegments(ctx context.Context, surveyID, field string) ([]model.SegmentResult, error)
	SetSegments(ctx context.Context, surveyID, field string, segments []model.SegmentResult) error

	Invalidate(ctx context.Context, surveyID string) error
}

type analyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalyticsCache creates a new analytics cache
func NewAnalyticsCache(client *redis.Client, ttl time.Duration) AnalyticsCache {
	return &analyticsCache{
		client: client,
		ttl:    ttl,
	}
}

// Key helpers
func (c *analyticsCache) surveyKey(surveyID string) string {
	return fmt.Sprintf("survey:%s:analytics", surveyID)
}

func (c *analyticsCache) segmentsKey(surveyID string) string {
	return fmt.Sprintf("survey:%s:segments", surveyID)
}

func (c *analyticsCache) GetSurvey(ctx context.Context, surveyID string) (*model.SurveyAnalytics, error) {
	data, err := c.client.Get(ctx, c.surveyKey(surveyID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var analytics model.SurveyAnalytics
	if err := json.Unmarshal([]byte(data), &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}

func (c *analyticsCache) SetSurvey(ctx context.Context, analytics *model.SurveyAnalytics) error {
	data, err := json.Marshal(analytics)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.surveyKey(analytics.SurveyID), data, c.ttl).Err()
}

func (c *analyticsCache) GetSegments(ctx context.Context, surveyID, field string) ([]model.SegmentResult, error) {
	data, err := c.client.HGet(ctx, c.segmentsKey(surveyID), field).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var segments []model.SegmentResult
	if err := json.Unmarshal([]byte(data), &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

func (c *analyticsCache) SetSegments(ctx context.Context, surveyID, field string, segments []model.SegmentResult) error {
	data, err := json.Marshal(segments)
	if err != nil {
		return err
	}
	key := c.segmentsKey(surveyID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, field, data)
	pipe.Expire(ctx, key, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *analyticsCache) Invalidate(ctx context.Context, surveyID string) error {
	return c.client.Del(ctx, c.surveyKey(surveyID), c.segmentsKey(surveyID)).Err()
}
