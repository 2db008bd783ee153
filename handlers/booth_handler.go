package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bazaar-system/config"
	"bazaar-system/models"
	"bazaar-system/services"
	"bazaar-system/utils"
)

type BoothHandler struct {
	app    *pocketbase.PocketBase
	cfg    *config.Config
	booths *services.BoothService
}

func NewBoothHandler(app *pocketbase.PocketBase, cfg *config.Config, booths *services.BoothService) *BoothHandler {
	return &BoothHandler{
		app:    app,
		cfg:    cfg,
		booths: booths,
	}
}

// Apply - public booth application; returns a reference code for follow-up
func (h *BoothHandler) Apply(e *core.RequestEvent) error {
	in := &models.BoothInput{}
	if err := e.BindBody(in); err != nil {
		return respondBindErr(e, "booths", err)
	}

	if _, err := h.booths.ValidateApplication(in); err != nil {
		return respondErr(e, "booths", err)
	}

	refCode, err := utils.GenerateRefCode(4)
	if err != nil {
		return respondErr(e, "booths", fmt.Errorf("generate ref code: %w", err))
	}

	collection, err := h.app.FindCollectionByNameOrId("booths")
	if err != nil {
		return respondErr(e, "booths", fmt.Errorf("find booths collection: %w", err))
	}

	record := core.NewRecord(collection)
	record.Set("name", *in.Name)
	record.Set("phone", *in.Phone)
	record.Set("description", *in.Description)
	record.Set("event_id", *in.EventID)
	record.Set("status", models.BoothStatusPending)
	record.Set("ref_code", refCode)

	if err := h.app.Save(record); err != nil {
		return respondErr(e, "booths", fmt.Errorf("save booth application: %w", err))
	}

	return e.JSON(http.StatusCreated, models.SuccessMessage(
		"application submitted, keep the reference code to check the decision",
		presentBooth(record),
	))
}

// GetByRef - applicant-side status check by reference code
func (h *BoothHandler) GetByRef(e *core.RequestEvent) error {
	record, err := h.booths.FindByRefCode(e.Request.PathValue("code"))
	if err != nil {
		return respondErr(e, "booths", err)
	}
	return e.JSON(http.StatusOK, models.Success(presentBooth(record)))
}

// ListByEvent - admin listing of all applications for an event
func (h *BoothHandler) ListByEvent(e *core.RequestEvent) error {
	eventID := e.Request.PathValue("eventId")
	limit, offset := parsePagination(e, h.cfg)

	records, err := h.app.FindRecordsByFilter(
		"booths",
		"event_id = {:event}",
		"-created",
		limit,
		offset,
		map[string]any{"event": eventID},
	)
	if err != nil {
		return respondErr(e, "booths", fmt.Errorf("list booth applications: %w", err))
	}

	items := make([]map[string]any, 0, len(records))
	for _, record := range records {
		items = append(items, presentBooth(record))
	}

	return e.JSON(http.StatusOK, models.Success(items))
}

// ApplicantUpdate - edit an application while it is still PENDING; the
// caller proves ownership with the reference code
func (h *BoothHandler) ApplicantUpdate(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("booths", e.Request.PathValue("id"))
	if err != nil {
		return respondErr(e, "booths", &services.NotFoundError{Entity: "booth application", ID: e.Request.PathValue("id")})
	}

	ref := e.Request.URL.Query().Get("ref")
	if ref == "" || record.GetString("ref_code") != ref {
		return e.JSON(http.StatusForbidden, models.Fail("reference code does not match this application", ""))
	}

	in := &models.BoothInput{}
	if err := e.BindBody(in); err != nil {
		return respondBindErr(e, "booths", err)
	}

	if err := h.booths.ValidateApplicantUpdate(record, in); err != nil {
		return respondErr(e, "booths", err)
	}

	if in.Name != nil {
		record.Set("name", *in.Name)
	}
	if in.Phone != nil {
		record.Set("phone", *in.Phone)
	}
	if in.Description != nil {
		record.Set("description", *in.Description)
	}

	if err := h.app.Save(record); err != nil {
		return respondErr(e, "booths", fmt.Errorf("update booth application: %w", err))
	}

	return e.JSON(http.StatusOK, models.Success(presentBooth(record)))
}

// SetStatus - admin decision on a single application
func (h *BoothHandler) SetStatus(e *core.RequestEvent) error {
	var req struct {
		Status    string `json:"status"`
		AdminNote string `json:"admin_note"`
	}
	if err := e.BindBody(&req); err != nil {
		return respondBindErr(e, "booths", err)
	}

	record, err := h.booths.SetStatus(e.Request.PathValue("id"), req.Status, req.AdminNote)
	if err != nil {
		return respondErr(e, "booths", err)
	}

	return e.JSON(http.StatusOK, models.Success(presentBooth(record)))
}

// BulkSetStatus - admin decision applied to a batch, all-or-nothing
func (h *BoothHandler) BulkSetStatus(e *core.RequestEvent) error {
	in := &models.BoothStatusInput{}
	if err := e.BindBody(in); err != nil {
		return respondBindErr(e, "booths", err)
	}

	updated, err := h.booths.BulkSetStatus(in)
	if err != nil {
		return respondErr(e, "booths", err)
	}

	return e.JSON(http.StatusOK, models.SuccessMessage("batch updated", map[string]any{
		"updated": updated,
	}))
}

// Delete - admin removal of an application
func (h *BoothHandler) Delete(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("booths", e.Request.PathValue("id"))
	if err != nil {
		return respondErr(e, "booths", &services.NotFoundError{Entity: "booth application", ID: e.Request.PathValue("id")})
	}

	if err := h.app.Delete(record); err != nil {
		return respondErr(e, "booths", fmt.Errorf("delete booth application: %w", err))
	}

	return e.JSON(http.StatusOK, models.SuccessMessage("application deleted", nil))
}

func presentBooth(record *core.Record) map[string]any {
	return map[string]any{
		"id":          record.Id,
		"name":        record.GetString("name"),
		"phone":       record.GetString("phone"),
		"description": record.GetString("description"),
		"event_id":    record.GetString("event_id"),
		"status":      record.GetString("status"),
		"admin_note":  record.GetString("admin_note"),
		"ref_code":    record.GetString("ref_code"),
		"created":     record.GetDateTime("created"),
	}
}
