package scoring

import (
	"math/rand"

	"pulseboard/internal/model"
)

func numeric(values ...int) []model.Answer {
	out := make([]model.Answer, len(values))
	for i, v := range values {
		out[i] = model.Answer{QuestionText: "q", Answer: model.NumberAnswer(v)}
	}
	return out
}

func likertQ(id, category string) model.SelectedQuestion {
	return model.SelectedQuestion{ID: id, Text: id, Type: model.QuestionTypeLikert, Category: category}
}

func shuffled(values []int, seed int64) []int {
	out := append([]int(nil), values...)
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func randomScores(r *rand.Rand, n, min, max int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = min + r.Intn(max-min+1)
	}
	return out
}

// repeat returns n copies of each value, in order: repeat(9, 5, 0, 2) is five 9s then two 0s
func repeat(pairs ...int) []int {
	var out []int
	for i := 0; i+1 < len(pairs); i += 2 {
		for j := 0; j < pairs[i+1]; j++ {
			out = append(out, pairs[i])
		}
	}
	return out
}
