package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bazaar-system/config"
	"bazaar-system/models"
	"bazaar-system/services"
)

// BannerHandler serves promotional banners. Attaching a banner to an event
// is the one two-step store workflow in the system and carries the
// best-effort compensating delete.
type BannerHandler struct {
	app    *pocketbase.PocketBase
	cfg    *config.Config
	events *services.EventService
}

func NewBannerHandler(app *pocketbase.PocketBase, cfg *config.Config, events *services.EventService) *BannerHandler {
	return &BannerHandler{
		app:    app,
		cfg:    cfg,
		events: events,
	}
}

// AttachToEvent - upload a banner and link it to an event. The banner record
// is written first; if linking fails the orphaned banner is removed
// best-effort and a cleanup failure is only logged.
func (h *BannerHandler) AttachToEvent(e *core.RequestEvent) error {
	event, err := h.events.FindEvent(e.Request.PathValue("eventId"))
	if err != nil {
		return respondErr(e, "banners", err)
	}

	files, err := e.FindUploadedFiles("image")
	if err != nil || len(files) == 0 {
		return respondErr(e, "banners", &services.ValidationError{Message: "image file is required"})
	}

	title := strings.TrimSpace(e.Request.FormValue("title"))
	if title == "" {
		title = event.GetString("name")
	}

	collection, err := h.app.FindCollectionByNameOrId("banners")
	if err != nil {
		return respondErr(e, "banners", fmt.Errorf("find banners collection: %w", err))
	}

	banner := core.NewRecord(collection)
	banner.Set("title", title)
	banner.Set("event_id", event.Id)
	banner.Set("image", files[0])

	cleanup, err := h.events.LinkPromoBanner(event, banner)
	if err != nil {
		if cleanup != nil {
			if cleanupErr := cleanup(); cleanupErr != nil {
				log.Printf("Failed to clean up orphaned banner %s: %v", banner.Id, cleanupErr)
			}
		}
		return respondErr(e, "banners", err)
	}

	return e.JSON(http.StatusCreated, models.Success(presentBanner(banner)))
}

// List - all banners
func (h *BannerHandler) List(e *core.RequestEvent) error {
	records, err := h.app.FindRecordsByFilter("banners", "", "-created", 0, 0)
	if err != nil {
		return respondErr(e, "banners", fmt.Errorf("list banners: %w", err))
	}

	items := make([]map[string]any, 0, len(records))
	for _, record := range records {
		items = append(items, presentBanner(record))
	}

	return e.JSON(http.StatusOK, models.Success(items))
}

// Delete - remove a banner
func (h *BannerHandler) Delete(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("banners", e.Request.PathValue("id"))
	if err != nil {
		return respondErr(e, "banners", &services.NotFoundError{Entity: "banner", ID: e.Request.PathValue("id")})
	}

	if err := h.app.Delete(record); err != nil {
		return respondErr(e, "banners", fmt.Errorf("delete banner: %w", err))
	}

	return e.JSON(http.StatusOK, models.SuccessMessage("banner deleted", nil))
}

func presentBanner(record *core.Record) map[string]any {
	return map[string]any{
		"id":       record.Id,
		"title":    record.GetString("title"),
		"event_id": record.GetString("event_id"),
		"image":    fileURL(record, "image"),
		"created":  record.GetDateTime("created"),
	}
}
