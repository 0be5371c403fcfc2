package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulseboard/internal/model"
)

// ReportRepo handles MongoDB operations for frozen analytics snapshots
type ReportRepo interface {
	SaveSnapshot(ctx context.Context, snapshot *model.AnalyticsSnapshot) error
	GetSnapshot(ctx context.Context, surveyID string) (*model.AnalyticsSnapshot, error)
	GetSnapshotsByClientID(ctx context.Context, clientID string) ([]*model.AnalyticsSnapshot, error)
}

type reportRepo struct {
	snapshots *mongo.Collection
}

// NewReportRepo creates a new report repository
func NewReportRepo(db *mongo.Database) ReportRepo {
	return &reportRepo{
		snapshots: db.Collection("analytics_snapshots"),
	}
}

func (r *reportRepo) SaveSnapshot(ctx context.Context, snapshot *model.AnalyticsSnapshot) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.snapshots.ReplaceOne(ctx, bson.M{"surveyId": snapshot.SurveyID}, snapshot, opts)
	return err
}

func (r *reportRepo) GetSnapshot(ctx context.Context, surveyID string) (*model.AnalyticsSnapshot, error) {
	var snapshot model.AnalyticsSnapshot
	err := r.snapshots.FindOne(ctx, bson.M{"surveyId": surveyID}).Decode(&snapshot)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// GetSnapshotsByClientID lists a client's snapshots, most recently closed first
func (r *reportRepo) GetSnapshotsByClientID(ctx context.Context, clientID string) ([]*model.AnalyticsSnapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "closedAt", Value: -1}})
	cursor, err := r.snapshots.Find(ctx, bson.M{"clientId": clientID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	snapshots := []*model.AnalyticsSnapshot{}
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}
