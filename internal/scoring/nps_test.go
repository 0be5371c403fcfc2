package scoring

import (
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"pulseboard/internal/model"
)

func TestCalculateNPS(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   model.NPSResult
	}{
		{"empty", nil, model.NPSResult{}},
		{"boundaries", []int{6, 7, 8, 9}, model.NPSResult{Score: 0, Promoters: 1, Passives: 2, Detractors: 1, Total: 4}},
		{"all promoters", []int{9, 10, 9, 10}, model.NPSResult{Score: 100, Promoters: 4, Total: 4}},
		{"all detractors", []int{0, 1, 2}, model.NPSResult{Score: -100, Detractors: 3, Total: 3}},
		{"all passives", []int{7, 8}, model.NPSResult{Score: 0, Passives: 2, Total: 2}},
		{"half rounds up", []int{9, 9, 9, 0, 0, 7, 7, 7}, model.NPSResult{Score: 13, Promoters: 3, Passives: 3, Detractors: 2, Total: 8}},
		{"negative half rounds toward zero", []int{9, 9, 0, 0, 0, 7, 7, 7}, model.NPSResult{Score: -12, Promoters: 2, Passives: 3, Detractors: 3, Total: 8}},
		{"thirds", []int{10, 5, 8}, model.NPSResult{Score: 0, Promoters: 1, Passives: 1, Detractors: 1, Total: 3}},
		{"two of three promoters", []int{10, 9, 8}, model.NPSResult{Score: 67, Promoters: 2, Passives: 1, Total: 3}},
		{"half on a team of 24", repeat(9, 5, 0, 2, 7, 17), model.NPSResult{Score: 13, Promoters: 5, Passives: 17, Detractors: 2, Total: 24}},
		{"negative half on a team of 24", repeat(9, 5, 0, 8, 7, 11), model.NPSResult{Score: -12, Promoters: 5, Passives: 11, Detractors: 8, Total: 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateNPS(tt.scores)
			if err != nil {
				t.Fatalf("CalculateNPS(%v): %v", tt.scores, err)
			}
			if got != tt.want {
				t.Fatalf("CalculateNPS(%v) = %+v, want %+v", tt.scores, got, tt.want)
			}
		})
	}
}

func TestCalculateNPSRejectsOutOfRange(t *testing.T) {
	for _, scores := range [][]int{{11}, {-1}, {9, 15}} {
		if _, err := CalculateNPS(scores); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("CalculateNPS(%v) error = %v, want ErrOutOfRange", scores, err)
		}
	}
}

func TestCalculateNPSPermutationInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		scores := randomScores(r, 1+r.Intn(40), NPSMin, NPSMax)
		want, err := CalculateNPS(scores)
		if err != nil {
			t.Fatal(err)
		}
		got, err := CalculateNPS(shuffled(scores, int64(i)))
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("shuffled %v = %+v, want %+v", scores, got, want)
		}
		if got.Promoters+got.Passives+got.Detractors != got.Total {
			t.Fatalf("buckets %+v do not add up to total", got)
		}
		if got.Score < -100 || got.Score > 100 {
			t.Fatalf("score %d out of range", got.Score)
		}
	}
}

func TestCalculateNPSDoesNotMutateInput(t *testing.T) {
	scores := []int{10, 3, 8}
	if _, err := CalculateNPS(scores); err != nil {
		t.Fatal(err)
	}
	if scores[0] != 10 || scores[1] != 3 || scores[2] != 8 {
		t.Fatalf("input mutated: %v", scores)
	}
}

// halfUp is floor(num/den + 1/2) computed on exact rationals
func halfUp(num, den int64) int {
	x := new(big.Rat).SetFrac64(num, den)
	x.Add(x, big.NewRat(1, 2))
	q := new(big.Int).Div(x.Num(), x.Denom()) // Euclidean, so floor for a positive denominator
	return int(q.Int64())
}

func TestCalculateNPSRoundsExactly(t *testing.T) {
	for total := 1; total <= 60; total++ {
		for p := 0; p <= total; p++ {
			for d := 0; p+d <= total; d++ {
				got, err := CalculateNPS(repeat(10, p, 0, d, 8, total-p-d))
				if err != nil {
					t.Fatal(err)
				}
				if want := halfUp(int64(100*(p-d)), int64(total)); got.Score != want {
					t.Fatalf("p=%d d=%d total=%d: score = %d, want %d", p, d, total, got.Score, want)
				}
			}
		}
	}
}
