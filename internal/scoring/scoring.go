// Package scoring turns pulse-survey responses into NPS, Likert favorability,
// category rollups and response-rate statistics. Every function is pure and
// safe to call concurrently.
package scoring

import (
	"errors"
	"math"
)

var (
	// ErrOutOfRange is returned for ratings outside their scale
	ErrOutOfRange = errors.New("value out of range")
	// ErrAnswerKind is returned when a numeric question carries a text answer
	ErrAnswerKind = errors.New("answer has the wrong kind for its question")
)

const (
	NPSMin    = 0
	NPSMax    = 10
	LikertMin = 1
	LikertMax = 5
)

// roundRatio rounds num/den half toward positive infinity in exact integer
// arithmetic: 12.5 -> 13, -12.5 -> -12. den must be positive.
func roundRatio(num, den int) int {
	return floorDiv(2*num+den, 2*den)
}

// floorDiv is integer division rounding toward negative infinity
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// round1 rounds to one decimal place with the same tie-break as roundRatio.
// Only used on differences of values already rounded to one decimal.
func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
