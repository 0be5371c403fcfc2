package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pulseboard/internal/model"
	"pulseboard/internal/service"
)

// seedFile is the on-disk layout of a seed file
type seedFile struct {
	QuestionBank []seedQuestion `yaml:"questionBank"`
	Surveys      []seedSurvey   `yaml:"surveys"`
}

type seedQuestion struct {
	ID        string   `yaml:"id"` // Survey questions only
	Text      string   `yaml:"text"`
	Type      string   `yaml:"type"`
	Category  string   `yaml:"category"`
	Options   []string `yaml:"options"`
	Mandatory bool     `yaml:"mandatory"`
}

type seedSurvey struct {
	Key            string         `yaml:"key"`      // Local name, referenced by "previous"
	Previous       string         `yaml:"previous"` // Key of an earlier survey in the same file
	ClientID       string         `yaml:"clientId"`
	Title          string         `yaml:"title"`
	Description    string         `yaml:"description"`
	TotalEmployees int            `yaml:"totalEmployees"`
	SegmentFields  []string       `yaml:"segmentFields"`
	Questions      []seedQuestion `yaml:"questions"`
}

func loadSeedFile(path string) (*seedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return parseSeed(data)
}

func parseSeed(data []byte) (*seedFile, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if err := seed.validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

func (s *seedFile) validate() error {
	for i, q := range s.QuestionBank {
		t := q.template()
		if t.Text == "" {
			return fmt.Errorf("questionBank[%d]: text is required", i)
		}
		if err := service.ValidateQuestion(fmt.Sprintf("questionBank[%d]", i), t.Type, t.Category, t.Options); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(s.Surveys))
	for i, sv := range s.Surveys {
		if sv.Key == "" {
			return fmt.Errorf("surveys[%d]: key is required", i)
		}
		if seen[sv.Key] {
			return fmt.Errorf("surveys[%d]: duplicate key %q", i, sv.Key)
		}
		if sv.Previous != "" && !seen[sv.Previous] {
			return fmt.Errorf("surveys[%d]: previous %q must be an earlier survey", i, sv.Previous)
		}
		seen[sv.Key] = true

		if err := service.ValidateSurvey(sv.survey(nil)); err != nil {
			return fmt.Errorf("surveys[%d] (%s): %w", i, sv.Key, err)
		}
	}
	return nil
}

func (q seedQuestion) template() *model.QuestionTemplate {
	return &model.QuestionTemplate{
		Text:      q.Text,
		Type:      model.QuestionType(q.Type),
		Category:  q.Category,
		Options:   q.Options,
		Mandatory: q.Mandatory,
	}
}

// survey builds a draft survey, resolving "previous" against already stored ids
func (s seedSurvey) survey(ids map[string]string) *model.Survey {
	survey := &model.Survey{
		ClientID:         s.ClientID,
		Title:            s.Title,
		Description:      s.Description,
		Status:           model.SurveyDraft,
		TotalEmployees:   s.TotalEmployees,
		SegmentFields:    s.SegmentFields,
		PreviousSurveyID: ids[s.Previous],
	}
	for _, q := range s.Questions {
		survey.Questions = append(survey.Questions, q.template().Select(q.ID))
	}
	return survey
}
