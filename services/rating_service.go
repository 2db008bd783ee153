package services

import (
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"bazaar-system/models"
)

// RatingService validates ratings and aggregates them per event.
type RatingService struct {
	app core.App
}

func NewRatingService(app core.App) *RatingService {
	return &RatingService{app: app}
}

// ValidateCreate checks the creation payload: reviewer name, event reference
// and a star value within bounds, with the event resolvable in the store.
func (s *RatingService) ValidateCreate(in *models.RatingInput) error {
	var missing []string
	requireString(&missing, "name", in.Name)
	requireString(&missing, "event_id", in.EventID)
	if in.RatingStar == nil {
		missing = append(missing, "rating_star")
	}
	if len(missing) > 0 {
		return &ValidationError{Message: "missing required field(s)", Fields: missing}
	}

	if err := validateStar(*in.RatingStar); err != nil {
		return err
	}

	if _, err := s.app.FindRecordById("events", *in.EventID); err != nil {
		return &NotFoundError{Entity: "event", ID: *in.EventID}
	}
	return nil
}

// ValidateUpdate applies the same field-level rules to whichever fields the
// patch supplies.
func (s *RatingService) ValidateUpdate(in *models.RatingInput) error {
	if in.IsEmpty() {
		return newValidationError("no fields supplied for update")
	}
	if in.Name != nil && *in.Name == "" {
		return newValidationError("name must not be empty")
	}
	if in.RatingStar != nil {
		if err := validateStar(*in.RatingStar); err != nil {
			return err
		}
	}
	if in.EventID != nil {
		if _, err := s.app.FindRecordById("events", *in.EventID); err != nil {
			return &NotFoundError{Entity: "event", ID: *in.EventID}
		}
	}
	return nil
}

func validateStar(star int) error {
	if star < models.RatingStarMin || star > models.RatingStarMax {
		return newValidationError("rating_star must be between %d and %d",
			models.RatingStarMin, models.RatingStarMax)
	}
	return nil
}

// AggregateRatings computes the aggregate for a set of star values: count,
// 2-decimal average (0 when empty) and a zero-filled bucket distribution.
// Star values outside the bounds are ignored.
func AggregateRatings(stars []int) models.RatingStats {
	stats := models.RatingStats{
		RatingDistribution: map[int]int{},
	}
	for star := models.RatingStarMin; star <= models.RatingStarMax; star++ {
		stats.RatingDistribution[star] = 0
	}

	sum := decimal.Zero
	for _, star := range stars {
		if star < models.RatingStarMin || star > models.RatingStarMax {
			continue
		}
		stats.TotalRatings++
		stats.RatingDistribution[star]++
		sum = sum.Add(decimal.NewFromInt(int64(star)))
	}

	if stats.TotalRatings > 0 {
		avg := sum.Div(decimal.NewFromInt(int64(stats.TotalRatings))).Round(2)
		stats.AverageRating = avg.InexactFloat64()
	}

	return stats
}

// StatsForEvent aggregates all stored ratings for one event.
func (s *RatingService) StatsForEvent(eventID string) (models.RatingStats, error) {
	ratings, err := s.app.FindAllRecords("ratings", dbx.HashExp{"event_id": eventID})
	if err != nil {
		return models.RatingStats{}, fmt.Errorf("load ratings: %w", err)
	}

	stars := make([]int, 0, len(ratings))
	for _, r := range ratings {
		stars = append(stars, r.GetInt("rating_star"))
	}
	return AggregateRatings(stars), nil
}

// DeleteAllForEvent removes every rating attached to an event and reports
// how many were removed.
func (s *RatingService) DeleteAllForEvent(eventID string) (int, error) {
	ratings, err := s.app.FindAllRecords("ratings", dbx.HashExp{"event_id": eventID})
	if err != nil {
		return 0, fmt.Errorf("load ratings: %w", err)
	}

	deleted := 0
	err = s.app.RunInTransaction(func(txApp core.App) error {
		for _, r := range ratings {
			if err := txApp.Delete(r); err != nil {
				return fmt.Errorf("delete rating %s: %w", r.Id, err)
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
