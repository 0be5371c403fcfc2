package scoring

import (
	"fmt"

	"pulseboard/internal/model"
)

// Promoter and detractor thresholds are fixed
const (
	promoterMin  = 9
	detractorMax = 6
)

// CalculateNPS classifies 0-10 ratings and returns the Net Promoter Score
func CalculateNPS(scores []int) (model.NPSResult, error) {
	var result model.NPSResult
	for _, s := range scores {
		if s < NPSMin || s > NPSMax {
			return model.NPSResult{}, fmt.Errorf("nps score %d: %w (want %d-%d)", s, ErrOutOfRange, NPSMin, NPSMax)
		}
		switch {
		case s >= promoterMin:
			result.Promoters++
		case s <= detractorMax:
			result.Detractors++
		default:
			result.Passives++
		}
	}

	result.Total = len(scores)
	if result.Total == 0 {
		return result, nil
	}

	result.Score = roundRatio(100*(result.Promoters-result.Detractors), result.Total)
	return result, nil
}
