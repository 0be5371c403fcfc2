package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulseboard/internal/model"
)

// ResponseRepo handles MongoDB operations for survey responses.
// Responses are insert-only; Delete only withdraws one rejected after a close.
type ResponseRepo interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, response *model.SurveyResponse) error
	GetBySurveyID(ctx context.Context, surveyID string) ([]*model.SurveyResponse, error)
	CountBySurveyID(ctx context.Context, surveyID string) (int64, error)
	Exists(ctx context.Context, surveyID, respondentID string) (bool, error)
	Delete(ctx context.Context, surveyID, respondentID string) error
	DeleteBySurveyID(ctx context.Context, surveyID string) error
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

// EnsureIndexes creates the one-response-per-respondent unique index
func (r *responseRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "surveyId", Value: 1}, {Key: "respondentId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("survey_respondent_unique"),
	})
	return err
}

func (r *responseRepo) Create(ctx context.Context, response *model.SurveyResponse) error {
	if response.ID == "" {
		response.ID = primitive.NewObjectID().Hex()
	}
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, response)
	return err
}

func (r *responseRepo) GetBySurveyID(ctx context.Context, surveyID string) ([]*model.SurveyResponse, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"surveyId": surveyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	responses := []*model.SurveyResponse{}
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) CountBySurveyID(ctx context.Context, surveyID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"surveyId": surveyID})
}

func (r *responseRepo) Exists(ctx context.Context, surveyID, respondentID string) (bool, error) {
	n, err := r.collection.CountDocuments(ctx,
		bson.M{"surveyId": surveyID, "respondentId": respondentID},
		options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *responseRepo) Delete(ctx context.Context, surveyID, respondentID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"surveyId": surveyID, "respondentId": respondentID})
	return err
}

func (r *responseRepo) DeleteBySurveyID(ctx context.Context, surveyID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"surveyId": surveyID})
	return err
}
