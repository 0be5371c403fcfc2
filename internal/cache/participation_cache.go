package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"pulseboard/internal/model"
)

// ParticipationCache counts responses per segment value in a Redis ZSET,
// one set per survey and demographic field
type ParticipationCache interface {
	Increment(ctx context.Context, surveyID, field, value string) error
	Get(ctx context.Context, surveyID, field string) ([]model.SegmentCount, error)
	Clear(ctx context.Context, surveyID string, fields ...string) error
}

type participationCache struct {
	client *redis.Client
}

// NewParticipationCache creates a new participation cache
func NewParticipationCache(client *redis.Client) ParticipationCache {
	return &participationCache{
		client: client,
	}
}

func (c *participationCache) key(surveyID, field string) string {
	return fmt.Sprintf("survey:%s:participation:%s", surveyID, field)
}

func (c *participationCache) Increment(ctx context.Context, surveyID, field, value string) error {
	return c.client.ZIncrBy(ctx, c.key(surveyID, field), 1, value).Err()
}

// Get returns segment values ordered by response count, largest first
func (c *participationCache) Get(ctx context.Context, surveyID, field string) ([]model.SegmentCount, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(surveyID, field), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.SegmentCount, len(results))
	for i, z := range results {
		entries[i] = model.SegmentCount{
			Value:     z.Member.(string),
			Responses: int(z.Score),
		}
	}
	return entries, nil
}

func (c *participationCache) Clear(ctx context.Context, surveyID string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = c.key(surveyID, f)
	}
	return c.client.Del(ctx, keys...).Err()
}
