package model

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeNPS            QuestionType = "nps"             // 0-10 recommendation scale
	QuestionTypeLikert         QuestionType = "likert"          // 1-5 agreement scale
	QuestionTypeMultipleChoice QuestionType = "multiple-choice" // one of Options
	QuestionTypeOpenText       QuestionType = "open-text"       // free text
)

// Valid reports whether t is one of the known question types
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeNPS, QuestionTypeLikert, QuestionTypeMultipleChoice, QuestionTypeOpenText:
		return true
	}
	return false
}

// Numeric reports whether answers to this type must be numbers
func (t QuestionType) Numeric() bool {
	return t == QuestionTypeNPS || t == QuestionTypeLikert
}

// SelectedQuestion is a question as attached to a specific survey instance
type SelectedQuestion struct {
	ID          string       `json:"id" bson:"id"`
	Text        string       `json:"text" bson:"text"`
	Type        QuestionType `json:"type" bson:"type"`
	Category    string       `json:"category" bson:"category"` // Aggregation key, never empty
	Options     []string     `json:"options,omitempty" bson:"options,omitempty"`
	IsMandatory bool         `json:"isMandatory" bson:"isMandatory"`
}

// HasOption reports whether value is one of the question's options
func (q *SelectedQuestion) HasOption(value string) bool {
	for _, o := range q.Options {
		if o == value {
			return true
		}
	}
	return false
}

// QuestionTemplate is a reusable question in the question bank
type QuestionTemplate struct {
	ID        string       `json:"id" bson:"_id,omitempty"`
	ClientID  string       `json:"clientId,omitempty" bson:"clientId,omitempty"` // Empty for the shared bank
	Text      string       `json:"text" bson:"text"`
	Type      QuestionType `json:"type" bson:"type"`
	Category  string       `json:"category" bson:"category"`
	Options   []string     `json:"options,omitempty" bson:"options,omitempty"`
	Mandatory bool         `json:"mandatory" bson:"mandatory"`
}

// Select turns a template into a survey question with the given id
func (t *QuestionTemplate) Select(id string) SelectedQuestion {
	return SelectedQuestion{
		ID:          id,
		Text:        t.Text,
		Type:        t.Type,
		Category:    t.Category,
		Options:     append([]string(nil), t.Options...),
		IsMandatory: t.Mandatory,
	}
}
