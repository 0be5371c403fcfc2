package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RespondentCache tracks who already responded to a survey.
// The set gives one-response-per-respondent without a Mongo round trip.
type RespondentCache interface {
	// MarkResponded returns false if the respondent was already in the set
	MarkResponded(ctx context.Context, surveyID, respondentID string) (bool, error)
	Unmark(ctx context.Context, surveyID, respondentID string) error
	Count(ctx context.Context, surveyID string) (int64, error)
	Clear(ctx context.Context, surveyID string) error
}

type respondentCache struct {
	client *redis.Client
}

// NewRespondentCache creates a new respondent cache
func NewRespondentCache(client *redis.Client) RespondentCache {
	return &respondentCache{
		client: client,
	}
}

func (c *respondentCache) key(surveyID string) string {
	return fmt.Sprintf("survey:%s:respondents", surveyID)
}

func (c *respondentCache) MarkResponded(ctx context.Context, surveyID, respondentID string) (bool, error) {
	added, err := c.client.SAdd(ctx, c.key(surveyID), respondentID).Result()
	if err != nil {
		return false, err
	}
	return added == 1, nil
}

func (c *respondentCache) Unmark(ctx context.Context, surveyID, respondentID string) error {
	return c.client.SRem(ctx, c.key(surveyID), respondentID).Err()
}

func (c *respondentCache) Count(ctx context.Context, surveyID string) (int64, error) {
	return c.client.SCard(ctx, c.key(surveyID)).Result()
}

func (c *respondentCache) Clear(ctx context.Context, surveyID string) error {
	return c.client.Del(ctx, c.key(surveyID)).Err()
}
