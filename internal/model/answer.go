package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// AnswerKind tags which branch of AnswerValue is set
type AnswerKind string

const (
	AnswerNone    AnswerKind = ""
	AnswerNumeric AnswerKind = "numeric" // nps, likert, numeric-style multiple-choice
	AnswerText    AnswerKind = "text"    // open-text, categorical multiple-choice
)

var ErrInvalidAnswer = errors.New("answer must be an integer or a string")

// AnswerValue is the string|number answer union. On the wire it is either
// a JSON/BSON number or a string.
type AnswerValue struct {
	Kind   AnswerKind
	Number int
	Text   string
}

// NumberAnswer builds a numeric answer
func NumberAnswer(n int) AnswerValue {
	return AnswerValue{Kind: AnswerNumeric, Number: n}
}

// TextAnswer builds a text answer
func TextAnswer(s string) AnswerValue {
	return AnswerValue{Kind: AnswerText, Text: s}
}

// Numeric returns the number and true when the answer is numeric
func (v AnswerValue) Numeric() (int, bool) {
	if v.Kind != AnswerNumeric {
		return 0, false
	}
	return v.Number, true
}

// IsZero reports whether no answer was given
func (v AnswerValue) IsZero() bool {
	return v.Kind == AnswerNone
}

// String returns the answer in its text form; numbers are formatted in base 10
func (v AnswerValue) String() string {
	switch v.Kind {
	case AnswerNumeric:
		return strconv.Itoa(v.Number)
	case AnswerText:
		return v.Text
	}
	return ""
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case AnswerNumeric:
		return []byte(strconv.Itoa(v.Number)), nil
	case AnswerText:
		return json.Marshal(v.Text)
	}
	return []byte("null"), nil
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = AnswerValue{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextAnswer(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return ErrInvalidAnswer
	}
	n, err := wholeNumber(f)
	if err != nil {
		return err
	}
	*v = NumberAnswer(n)
	return nil
}

func (v AnswerValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch v.Kind {
	case AnswerNumeric:
		return bsontype.Int32, bsoncore.AppendInt32(nil, int32(v.Number)), nil
	case AnswerText:
		return bsontype.String, bsoncore.AppendString(nil, v.Text), nil
	}
	return bsontype.Null, nil, nil
}

func (v *AnswerValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	val := bsoncore.Value{Type: t, Data: data}
	switch t {
	case bsontype.Null:
		*v = AnswerValue{}
	case bsontype.String:
		s, ok := val.StringValueOK()
		if !ok {
			return ErrInvalidAnswer
		}
		*v = TextAnswer(s)
	case bsontype.Int32:
		n, ok := val.Int32OK()
		if !ok {
			return ErrInvalidAnswer
		}
		*v = NumberAnswer(int(n))
	case bsontype.Int64:
		n, ok := val.Int64OK()
		if !ok {
			return ErrInvalidAnswer
		}
		*v = NumberAnswer(int(n))
	case bsontype.Double:
		f, ok := val.DoubleOK()
		if !ok {
			return ErrInvalidAnswer
		}
		n, err := wholeNumber(f)
		if err != nil {
			return err
		}
		*v = NumberAnswer(n)
	default:
		return fmt.Errorf("%w: got bson %s", ErrInvalidAnswer, t)
	}
	return nil
}

func wholeNumber(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidAnswer, f)
	}
	return int(f), nil
}
