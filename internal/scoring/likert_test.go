package scoring

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func TestCalculateLikertScoreEmpty(t *testing.T) {
	got, err := CalculateLikertScore(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Score != 0 || got.Average != 0 || got.Count != 0 || len(got.Distribution) != 0 {
		t.Fatalf("empty = %+v, want zero state", got)
	}
}

func TestCalculateLikertScore(t *testing.T) {
	tests := []struct {
		scores      []int
		wantAverage float64
		wantScore   int
	}{
		{[]int{1, 1, 1}, 1, 0},
		{[]int{5, 5, 5}, 5, 100},
		{[]int{3, 3}, 3, 50},
		{[]int{4}, 4, 75},
		{[]int{2, 3}, 2.5, 38}, // 37.5 rounds up
		{[]int{1, 2}, 1.5, 13}, // 12.5 rounds up
		{[]int{4, 4, 5}, 13.0 / 3, 83},
		{repeat(2, 9, 1, 1), 1.9, 23}, // 22.5 rounds up
	}

	for _, tt := range tests {
		got, err := CalculateLikertScore(tt.scores)
		if err != nil {
			t.Fatalf("CalculateLikertScore(%v): %v", tt.scores, err)
		}
		if got.Average != tt.wantAverage {
			t.Errorf("CalculateLikertScore(%v).Average = %v, want %v", tt.scores, got.Average, tt.wantAverage)
		}
		if got.Score != tt.wantScore {
			t.Errorf("CalculateLikertScore(%v).Score = %d, want %d", tt.scores, got.Score, tt.wantScore)
		}
		if got.Count != len(tt.scores) {
			t.Errorf("CalculateLikertScore(%v).Count = %d, want %d", tt.scores, got.Count, len(tt.scores))
		}
	}
}

func TestCalculateLikertDistributionIsSparse(t *testing.T) {
	got, err := CalculateLikertScore([]int{1, 5, 1})
	if err != nil {
		t.Fatal(err)
	}
	want := map[int]int{1: 2, 5: 1}
	if !reflect.DeepEqual(got.Distribution, want) {
		t.Fatalf("distribution = %v, want %v", got.Distribution, want)
	}
	if _, ok := got.Distribution[3]; ok {
		t.Fatal("unseen value 3 must be absent, not zero-filled")
	}
}

func TestCalculateLikertDistributionSumsToCount(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		scores := randomScores(r, 1+r.Intn(30), LikertMin, LikertMax)
		got, err := CalculateLikertScore(scores)
		if err != nil {
			t.Fatal(err)
		}
		sum := 0
		for _, n := range got.Distribution {
			sum += n
		}
		if sum != got.Count {
			t.Fatalf("distribution %v sums to %d, count %d", got.Distribution, sum, got.Count)
		}
		if got.Score < 0 || got.Score > 100 {
			t.Fatalf("score %d out of range", got.Score)
		}

		again, err := CalculateLikertScore(shuffled(scores, int64(i)))
		if err != nil {
			t.Fatal(err)
		}
		if again.Score != got.Score || again.Count != got.Count || !reflect.DeepEqual(again.Distribution, got.Distribution) {
			t.Fatalf("shuffled result %+v differs from %+v", again, got)
		}
	}
}

func TestCalculateLikertScoreRejectsOutOfRange(t *testing.T) {
	for _, scores := range [][]int{{0}, {6}, {3, 3, 7}} {
		if _, err := CalculateLikertScore(scores); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("CalculateLikertScore(%v) error = %v, want ErrOutOfRange", scores, err)
		}
	}
}

func TestCalculateLikertScoreRoundsExactly(t *testing.T) {
	for count := 1; count <= 40; count++ {
		for sum := count; sum <= 5*count; sum++ {
			// spread sum over count ratings in 1..5
			scores := make([]int, count)
			rest := sum - count
			for i := range scores {
				extra := rest
				if extra > 4 {
					extra = 4
				}
				scores[i] = 1 + extra
				rest -= extra
			}

			got, err := CalculateLikertScore(scores)
			if err != nil {
				t.Fatal(err)
			}
			if want := halfUp(int64(100*(sum-count)), int64(4*count)); got.Score != want {
				t.Fatalf("sum=%d count=%d: score = %d, want %d", sum, count, got.Score, want)
			}
		}
	}
}
