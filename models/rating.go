package models

// Rating star bounds, inclusive.
const (
	RatingStarMin = 1
	RatingStarMax = 5
)

// RatingInput is the write payload for ratings.
type RatingInput struct {
	Name       *string `json:"name"`
	Review     *string `json:"review"`
	EventID    *string `json:"event_id"`
	RatingStar *int    `json:"rating_star"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (in *RatingInput) IsEmpty() bool {
	return in.Name == nil && in.Review == nil && in.EventID == nil && in.RatingStar == nil
}

// RatingStats is the per-event aggregate: count, 2-decimal average and a
// zero-filled 1..5 bucket distribution.
type RatingStats struct {
	TotalRatings       int         `json:"total_ratings"`
	AverageRating      float64     `json:"average_rating"`
	RatingDistribution map[int]int `json:"rating_distribution"`
}
