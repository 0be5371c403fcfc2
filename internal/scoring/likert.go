package scoring

import (
	"fmt"

	"pulseboard/internal/model"
)

// CalculateLikertScore rescales the average of 1-5 ratings onto 0-100
func CalculateLikertScore(scores []int) (model.LikertResult, error) {
	result := model.LikertResult{Distribution: make(map[int]int)}
	if len(scores) == 0 {
		return result, nil
	}

	sum := 0
	for _, s := range scores {
		if s < LikertMin || s > LikertMax {
			return model.LikertResult{}, fmt.Errorf("likert score %d: %w (want %d-%d)", s, ErrOutOfRange, LikertMin, LikertMax)
		}
		sum += s
		result.Distribution[s]++
	}

	result.Count = len(scores)
	result.Average = float64(sum) / float64(result.Count)
	// (average-1)/4*100 == 100*(sum-count) / (4*count)
	result.Score = roundRatio(100*(sum-result.Count), 4*result.Count)
	return result, nil
}
