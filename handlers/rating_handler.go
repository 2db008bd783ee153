package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bazaar-system/config"
	"bazaar-system/models"
	"bazaar-system/services"
)

type RatingHandler struct {
	app     *pocketbase.PocketBase
	cfg     *config.Config
	ratings *services.RatingService
}

func NewRatingHandler(app *pocketbase.PocketBase, cfg *config.Config, ratings *services.RatingService) *RatingHandler {
	return &RatingHandler{
		app:     app,
		cfg:     cfg,
		ratings: ratings,
	}
}

// Create - public rating submission
func (h *RatingHandler) Create(e *core.RequestEvent) error {
	in := &models.RatingInput{}
	if err := e.BindBody(in); err != nil {
		return respondBindErr(e, "ratings", err)
	}

	if err := h.ratings.ValidateCreate(in); err != nil {
		return respondErr(e, "ratings", err)
	}

	collection, err := h.app.FindCollectionByNameOrId("ratings")
	if err != nil {
		return respondErr(e, "ratings", fmt.Errorf("find ratings collection: %w", err))
	}

	record := core.NewRecord(collection)
	record.Set("name", *in.Name)
	record.Set("event_id", *in.EventID)
	record.Set("rating_star", *in.RatingStar)
	if in.Review != nil {
		record.Set("review", *in.Review)
	}

	if err := h.app.Save(record); err != nil {
		return respondErr(e, "ratings", fmt.Errorf("save rating: %w", err))
	}

	return e.JSON(http.StatusCreated, models.Success(presentRating(record)))
}

// ListByEvent - ratings of one event plus the aggregate
func (h *RatingHandler) ListByEvent(e *core.RequestEvent) error {
	eventID := e.Request.PathValue("eventId")
	limit, offset := parsePagination(e, h.cfg)

	records, err := h.app.FindRecordsByFilter(
		"ratings",
		"event_id = {:event}",
		"-created",
		limit,
		offset,
		map[string]any{"event": eventID},
	)
	if err != nil {
		return respondErr(e, "ratings", fmt.Errorf("list ratings: %w", err))
	}

	items := make([]map[string]any, 0, len(records))
	for _, record := range records {
		items = append(items, presentRating(record))
	}

	stats, err := h.ratings.StatsForEvent(eventID)
	if err != nil {
		return respondErr(e, "ratings", err)
	}

	return e.JSON(http.StatusOK, models.Success(map[string]any{
		"items": items,
		"stats": stats,
	}))
}

// Stats - aggregate only
func (h *RatingHandler) Stats(e *core.RequestEvent) error {
	stats, err := h.ratings.StatsForEvent(e.Request.PathValue("eventId"))
	if err != nil {
		return respondErr(e, "ratings", err)
	}
	return e.JSON(http.StatusOK, models.Success(stats))
}

// Update - admin correction of a rating, partial
func (h *RatingHandler) Update(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("ratings", e.Request.PathValue("id"))
	if err != nil {
		return respondErr(e, "ratings", &services.NotFoundError{Entity: "rating", ID: e.Request.PathValue("id")})
	}

	in := &models.RatingInput{}
	if err := e.BindBody(in); err != nil {
		return respondBindErr(e, "ratings", err)
	}

	if err := h.ratings.ValidateUpdate(in); err != nil {
		return respondErr(e, "ratings", err)
	}

	if in.Name != nil {
		record.Set("name", *in.Name)
	}
	if in.Review != nil {
		record.Set("review", *in.Review)
	}
	if in.EventID != nil {
		record.Set("event_id", *in.EventID)
	}
	if in.RatingStar != nil {
		record.Set("rating_star", *in.RatingStar)
	}

	if err := h.app.Save(record); err != nil {
		return respondErr(e, "ratings", fmt.Errorf("update rating: %w", err))
	}

	return e.JSON(http.StatusOK, models.Success(presentRating(record)))
}

// Delete - remove a single rating
func (h *RatingHandler) Delete(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("ratings", e.Request.PathValue("id"))
	if err != nil {
		return respondErr(e, "ratings", &services.NotFoundError{Entity: "rating", ID: e.Request.PathValue("id")})
	}

	if err := h.app.Delete(record); err != nil {
		return respondErr(e, "ratings", fmt.Errorf("delete rating: %w", err))
	}

	return e.JSON(http.StatusOK, models.SuccessMessage("rating deleted", map[string]any{
		"removed": 1,
	}))
}

// DeleteAllForEvent - remove every rating of an event, reporting the count
func (h *RatingHandler) DeleteAllForEvent(e *core.RequestEvent) error {
	removed, err := h.ratings.DeleteAllForEvent(e.Request.PathValue("eventId"))
	if err != nil {
		return respondErr(e, "ratings", err)
	}

	return e.JSON(http.StatusOK, models.SuccessMessage("ratings deleted", map[string]any{
		"removed": removed,
	}))
}

func presentRating(record *core.Record) map[string]any {
	return map[string]any{
		"id":          record.Id,
		"name":        record.GetString("name"),
		"review":      record.GetString("review"),
		"event_id":    record.GetString("event_id"),
		"rating_star": record.GetInt("rating_star"),
		"created":     record.GetDateTime("created"),
	}
}
