package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bazaar-system/config"
	"bazaar-system/models"
	"bazaar-system/services"
)

type EventHandler struct {
	app     *pocketbase.PocketBase
	cfg     *config.Config
	events  *services.EventService
	ratings *services.RatingService
	deps    *services.DependencyService
}

func NewEventHandler(app *pocketbase.PocketBase, cfg *config.Config, events *services.EventService, ratings *services.RatingService, deps *services.DependencyService) *EventHandler {
	return &EventHandler{
		app:     app,
		cfg:     cfg,
		events:  events,
		ratings: ratings,
		deps:    deps,
	}
}

// Create - multipart event creation with optional banner and permit uploads
func (h *EventHandler) Create(e *core.RequestEvent) error {
	in, err := eventInputFromForm(e)
	if err != nil {
		return respondErr(e, "events", err)
	}
	if in.BoothSlot == nil {
		slot := h.cfg.DefaultBoothSlot
		in.BoothSlot = &slot
	}

	start, end, err := h.events.ValidateCreate(in)
	if err != nil {
		return respondErr(e, "events", err)
	}

	collection, err := h.app.FindCollectionByNameOrId("events")
	if err != nil {
		return respondErr(e, "events", fmt.Errorf("find events collection: %w", err))
	}

	record := core.NewRecord(collection)
	record.Set("name", *in.Name)
	record.Set("price", *in.Price)
	record.Set("description", *in.Description)
	record.Set("category", *in.Category)
	record.Set("category_id", *in.CategoryID)
	record.Set("location", *in.Location)
	record.Set("contact", *in.Contact)
	record.Set("start_date", start)
	record.Set("end_date", end)
	record.Set("booth_slot", *in.BoothSlot)
	if in.AreaID != nil {
		record.Set("area_id", *in.AreaID)
	}
	if in.VendorID != nil {
		record.Set("vendor_id", *in.VendorID)
	}

	if files, err := e.FindUploadedFiles("banner"); err == nil && len(files) > 0 {
		record.Set("banner", files[0])
	}
	if files, err := e.FindUploadedFiles("permit"); err == nil && len(files) > 0 {
		record.Set("permit", files[0])
	}

	if err := h.app.Save(record); err != nil {
		return respondErr(e, "events", fmt.Errorf("save event: %w", err))
	}

	return e.JSON(http.StatusCreated, models.Success(h.presentEvent(record, false)))
}

// List - paginated event listing with category/area/vendor/status filters
func (h *EventHandler) List(e *core.RequestEvent) error {
	q := e.Request.URL.Query()
	limit, offset := parsePagination(e, h.cfg)

	var parts []string
	params := dbx.Params{}
	exprs := []dbx.Expression{}
	for field, param := range map[string]string{
		"category_id": "category",
		"area_id":     "area",
		"vendor_id":   "vendor",
	} {
		if v := q.Get(param); v != "" {
			parts = append(parts, fmt.Sprintf("%s = {:%s}", field, param))
			params[param] = v
			exprs = append(exprs, dbx.HashExp{field: v})
		}
	}

	filter := strings.Join(parts, " && ")

	// Status is derived from the date pair, so a status query cannot be
	// pushed into the store: fetch the full match set, filter, then cut
	// the page so total reflects the filtered count.
	if statusFilter := q.Get("status"); statusFilter != "" {
		records, err := h.app.FindRecordsByFilter("events", filter, "-start_date", 0, 0, params)
		if err != nil {
			return respondErr(e, "events", fmt.Errorf("list events: %w", err))
		}

		matched := make([]*core.Record, 0, len(records))
		for _, record := range records {
			if h.events.Lifecycle(record).Status == statusFilter {
				matched = append(matched, record)
			}
		}

		items := []map[string]any{}
		for _, record := range pageRecords(matched, limit, offset) {
			items = append(items, h.presentEvent(record, false))
		}

		return e.JSON(http.StatusOK, models.Success(map[string]any{
			"items": items,
			"total": len(matched),
		}))
	}

	records, err := h.app.FindRecordsByFilter("events", filter, "-start_date", limit, offset, params)
	if err != nil {
		return respondErr(e, "events", fmt.Errorf("list events: %w", err))
	}

	total, err := h.app.CountRecords("events", exprs...)
	if err != nil {
		return respondErr(e, "events", fmt.Errorf("count events: %w", err))
	}

	items := []map[string]any{}
	for _, record := range records {
		items = append(items, h.presentEvent(record, false))
	}

	return e.JSON(http.StatusOK, models.Success(map[string]any{
		"items": items,
		"total": total,
	}))
}

// pageRecords cuts one page out of an already filtered record set.
func pageRecords(records []*core.Record, limit, offset int) []*core.Record {
	if offset >= len(records) {
		return nil
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}

// Get - single event with derived lifecycle, rating stats and booth availability
func (h *EventHandler) Get(e *core.RequestEvent) error {
	record, err := h.events.FindEvent(e.Request.PathValue("id"))
	if err != nil {
		return respondErr(e, "events", err)
	}

	data := h.presentEvent(record, true)

	stats, err := h.ratings.StatsForEvent(record.Id)
	if err != nil {
		return respondErr(e, "events", err)
	}
	data["rating_stats"] = stats

	return e.JSON(http.StatusOK, models.Success(data))
}

// Update - partial update, each field independently optional
func (h *EventHandler) Update(e *core.RequestEvent) error {
	record, err := h.events.FindEvent(e.Request.PathValue("id"))
	if err != nil {
		return respondErr(e, "events", err)
	}

	in := &models.EventInput{}
	if err := e.BindBody(in); err != nil {
		return respondBindErr(e, "events", err)
	}

	start, end, err := h.events.ValidateUpdate(record, in)
	if err != nil {
		return respondErr(e, "events", err)
	}

	if in.Name != nil {
		record.Set("name", *in.Name)
	}
	if in.Price != nil {
		record.Set("price", *in.Price)
	}
	if in.Description != nil {
		record.Set("description", *in.Description)
	}
	if in.Category != nil {
		record.Set("category", *in.Category)
	}
	if in.CategoryID != nil {
		record.Set("category_id", *in.CategoryID)
	}
	if in.Location != nil {
		record.Set("location", *in.Location)
	}
	if in.Contact != nil {
		record.Set("contact", *in.Contact)
	}
	if in.StartDate != nil {
		record.Set("start_date", start)
	}
	if in.EndDate != nil {
		record.Set("end_date", end)
	}
	if in.BoothSlot != nil {
		record.Set("booth_slot", *in.BoothSlot)
	}
	if in.AreaID != nil {
		record.Set("area_id", *in.AreaID)
	}
	if in.VendorID != nil {
		record.Set("vendor_id", *in.VendorID)
	}

	if err := h.app.Save(record); err != nil {
		return respondErr(e, "events", fmt.Errorf("update event: %w", err))
	}

	return e.JSON(http.StatusOK, models.Success(h.presentEvent(record, false)))
}

// Delete - guarded delete; force=true overrides the dependent check
func (h *EventHandler) Delete(e *core.RequestEvent) error {
	force := services.ParseForceFlag(e.Request.URL.Query().Get("force"))

	report, err := h.deps.GuardedDelete("events", e.Request.PathValue("id"), force)
	if err != nil {
		return respondErr(e, "events", err)
	}

	return e.JSON(http.StatusOK, models.SuccessMessage("event deleted", report))
}

func (h *EventHandler) presentEvent(record *core.Record, withAvailability bool) map[string]any {
	lc := h.events.Lifecycle(record)

	data := map[string]any{
		"id":           record.Id,
		"name":         record.GetString("name"),
		"price":        record.GetInt("price"),
		"description":  record.GetString("description"),
		"category":     record.GetString("category"),
		"category_id":  record.GetString("category_id"),
		"location":     record.GetString("location"),
		"contact":      record.GetString("contact"),
		"start_date":   record.GetDateTime("start_date"),
		"end_date":     record.GetDateTime("end_date"),
		"booth_slot":   record.GetInt("booth_slot"),
		"area_id":      record.GetString("area_id"),
		"vendor_id":    record.GetString("vendor_id"),
		"banner":       fileURL(record, "banner"),
		"permit":       fileURL(record, "permit"),
		"promo_banner": record.GetString("promo_banner"),
		"created":      record.GetDateTime("created"),

		"status":               lc.Status,
		"duration_days":        lc.DurationDays,
		"days_until_start":     lc.DaysUntilStart,
		"days_until_end":       lc.DaysUntilEnd,
		"is_registration_open": lc.IsRegistrationOpen,
	}

	if withAvailability {
		approved, err := h.app.CountRecords("booths", dbx.HashExp{
			"event_id": record.Id,
			"status":   models.BoothStatusApproved,
		})
		if err == nil {
			slotsLeft := record.GetInt("booth_slot") - int(approved)
			if slotsLeft < 0 {
				slotsLeft = 0
			}
			data["booths_approved"] = approved
			data["booth_slots_left"] = slotsLeft
		}
	}

	return data
}

// eventInputFromForm reads the multipart creation form. Absent fields stay
// nil so the validator can name them; a numeric field that does not parse is
// an error, not a missing field.
func eventInputFromForm(e *core.RequestEvent) (*models.EventInput, error) {
	in := &models.EventInput{}

	var bad []string
	setString := func(dst **string, key string) {
		if v := e.Request.FormValue(key); v != "" {
			*dst = &v
		}
	}
	setInt := func(dst **int, key string) {
		v := e.Request.FormValue(key)
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			bad = append(bad, fmt.Sprintf("%s must be an integer", key))
			return
		}
		*dst = &n
	}

	setString(&in.Name, "name")
	setString(&in.Description, "description")
	setString(&in.Category, "category")
	setString(&in.CategoryID, "category_id")
	setString(&in.Location, "location")
	setString(&in.Contact, "contact")
	setString(&in.StartDate, "start_date")
	setString(&in.EndDate, "end_date")
	setString(&in.AreaID, "area_id")
	setString(&in.VendorID, "vendor_id")
	setInt(&in.Price, "price")
	setInt(&in.BoothSlot, "booth_slot")

	if len(bad) > 0 {
		return nil, &services.ValidationError{Message: "invalid field value(s)", Fields: bad}
	}
	return in, nil
}
