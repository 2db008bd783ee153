package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateRatings(t *testing.T) {
	stats := AggregateRatings([]int{5, 4, 5, 3})

	assert.Equal(t, 4, stats.TotalRatings)
	assert.Equal(t, 4.25, stats.AverageRating)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 1, 4: 1, 5: 2}, stats.RatingDistribution)
}

func TestAggregateRatings_Empty(t *testing.T) {
	stats := AggregateRatings(nil)

	assert.Equal(t, 0, stats.TotalRatings)
	assert.Equal(t, 0.0, stats.AverageRating)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, stats.RatingDistribution)
}

func TestAggregateRatings_IgnoresOutOfBoundsValues(t *testing.T) {
	stats := AggregateRatings([]int{5, 0, -2, 6, 100, 1})

	assert.Equal(t, 2, stats.TotalRatings)
	assert.Equal(t, 3.0, stats.AverageRating)
	assert.Equal(t, 1, stats.RatingDistribution[1])
	assert.Equal(t, 1, stats.RatingDistribution[5])
}

func TestAggregateRatings_RoundsToTwoDecimals(t *testing.T) {
	// 1+2+2 = 5 over 3 ratings = 1.666...
	stats := AggregateRatings([]int{1, 2, 2})

	assert.Equal(t, 1.67, stats.AverageRating)
}

func TestValidateStar(t *testing.T) {
	for star := 1; star <= 5; star++ {
		assert.NoError(t, validateStar(star), "star %d", star)
	}

	for _, star := range []int{0, -1, 6, 42} {
		err := validateStar(star)
		require.Error(t, err, "star %d", star)
		assert.Contains(t, err.Error(), "rating_star must be between 1 and 5")
	}
}
