package services

import "testing"

func TestAggregateRatings(t *testing.T) {
	tests := []struct {
		name       string
		ratings    []int
		wantRating float64
		wantCount  int
	}{
		{"no ratings", nil, 0, 0},
		{"single five", []int{5}, 5.0, 1},
		{"mixed ratings round to one decimal", []int{5, 4, 4}, 4.3, 3},
		{"rounds half up", []int{4, 5}, 4.5, 2},
		{"all ones", []int{1, 1, 1, 1}, 1.0, 4},
		{"repeating third rounds down", []int{5, 4, 4, 4, 4, 4}, 4.2, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating, count := AggregateRatings(tt.ratings)
			if rating != tt.wantRating || count != tt.wantCount {
				t.Fatalf("AggregateRatings(%v) = (%v, %d), want (%v, %d)", tt.ratings, rating, count, tt.wantRating, tt.wantCount)
			}
		})
	}
}

func TestAggregateRatingsIdempotent(t *testing.T) {
	ratings := []int{3, 4, 5, 5, 2}

	firstRating, firstCount := AggregateRatings(ratings)
	secondRating, secondCount := AggregateRatings(ratings)

	if firstRating != secondRating || firstCount != secondCount {
		t.Fatalf("recomputation diverged: (%v, %d) vs (%v, %d)", firstRating, firstCount, secondRating, secondCount)
	}
}
