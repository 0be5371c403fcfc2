package service

import (
	"context"

	"pulseboard/internal/model"
	"pulseboard/internal/repository"
)

// QuestionBankService manages reusable question templates
type QuestionBankService struct {
	questionRepo repository.QuestionRepo
}

// NewQuestionBankService creates a new question bank service
func NewQuestionBankService(questionRepo repository.QuestionRepo) *QuestionBankService {
	return &QuestionBankService{
		questionRepo: questionRepo,
	}
}

func (s *QuestionBankService) Create(ctx context.Context, q *model.QuestionTemplate) error {
	if q.Text == "" {
		return invalid("text", "is required")
	}
	if err := ValidateQuestion("question", q.Type, q.Category, q.Options); err != nil {
		return err
	}
	return s.questionRepo.Create(ctx, q)
}

func (s *QuestionBankService) Get(ctx context.Context, id string) (*model.QuestionTemplate, error) {
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuestionNotFound
	}
	return q, nil
}

func (s *QuestionBankService) Update(ctx context.Context, q *model.QuestionTemplate) error {
	if _, err := s.Get(ctx, q.ID); err != nil {
		return err
	}
	if q.Text == "" {
		return invalid("text", "is required")
	}
	if err := ValidateQuestion("question", q.Type, q.Category, q.Options); err != nil {
		return err
	}
	return s.questionRepo.Update(ctx, q)
}

func (s *QuestionBankService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.questionRepo.Delete(ctx, id)
}

// List filters the bank by category and type; empty filters match all
func (s *QuestionBankService) List(ctx context.Context, category string, t model.QuestionType) ([]*model.QuestionTemplate, error) {
	if t != "" && !t.Valid() {
		return nil, invalid("type", "unknown question type %q", t)
	}
	return s.questionRepo.List(ctx, category, t)
}

func (s *QuestionBankService) Categories(ctx context.Context) ([]string, error) {
	return s.questionRepo.Categories(ctx)
}

// Select copies bank templates into survey questions, keeping the given order.
// Question ids are the template ids.
func (s *QuestionBankService) Select(ctx context.Context, ids []string) ([]model.SelectedQuestion, error) {
	templates, err := s.questionRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.QuestionTemplate, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	selected := make([]model.SelectedQuestion, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			return nil, ErrQuestionNotFound
		}
		selected = append(selected, t.Select(id))
	}
	return selected, nil
}
