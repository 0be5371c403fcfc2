package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulseboard/internal/model"
)

// QuestionRepo handles the reusable question bank
type QuestionRepo interface {
	Create(ctx context.Context, question *model.QuestionTemplate) error
	GetByID(ctx context.Context, id string) (*model.QuestionTemplate, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.QuestionTemplate, error)
	Update(ctx context.Context, question *model.QuestionTemplate) error
	Delete(ctx context.Context, id string) error

	// List filters by category and type; empty values match everything
	List(ctx context.Context, category string, questionType model.QuestionType) ([]*model.QuestionTemplate, error)
	Categories(ctx context.Context) ([]string, error)
}

type questionRepo struct {
	collection *mongo.Collection
}

func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("question_bank"),
	}
}

func (r *questionRepo) Create(ctx context.Context, question *model.QuestionTemplate) error {
	if question.ID == "" {
		question.ID = primitive.NewObjectID().Hex()
	}

	_, err := r.collection.InsertOne(ctx, question)
	return err
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.QuestionTemplate, error) {
	var question model.QuestionTemplate
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.QuestionTemplate, error) {
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *questionRepo) Update(ctx context.Context, question *model.QuestionTemplate) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": question.ID}, question)
	return err
}

func (r *questionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *questionRepo) List(ctx context.Context, category string, questionType model.QuestionType) ([]*model.QuestionTemplate, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	if questionType != "" {
		filter["type"] = questionType
	}
	return r.find(ctx, filter)
}

func (r *questionRepo) Categories(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

func (r *questionRepo) find(ctx context.Context, filter bson.M) ([]*model.QuestionTemplate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "text", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	questions := []*model.QuestionTemplate{}
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
