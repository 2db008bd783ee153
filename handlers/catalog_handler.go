package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bazaar-system/config"
	"bazaar-system/models"
	"bazaar-system/services"
)

// CatalogHandler serves one named-record collection (areas or event
// categories): CRUD with case-insensitive name uniqueness, all-or-nothing
// bulk creation and the guarded delete.
type CatalogHandler struct {
	app        *pocketbase.PocketBase
	cfg        *config.Config
	catalog    *services.CatalogService
	deps       *services.DependencyService
	collection string
}

func NewCatalogHandler(app *pocketbase.PocketBase, cfg *config.Config, catalog *services.CatalogService, deps *services.DependencyService, collection string) *CatalogHandler {
	return &CatalogHandler{
		app:        app,
		cfg:        cfg,
		catalog:    catalog,
		deps:       deps,
		collection: collection,
	}
}

// Create - single named record with optional image upload
func (h *CatalogHandler) Create(e *core.RequestEvent) error {
	name := strings.TrimSpace(e.Request.FormValue("name"))

	if err := h.catalog.EnsureUniqueName(h.collection, name, ""); err != nil {
		return respondErr(e, h.collection, err)
	}

	collection, err := h.app.FindCollectionByNameOrId(h.collection)
	if err != nil {
		return respondErr(e, h.collection, fmt.Errorf("find collection: %w", err))
	}

	record := core.NewRecord(collection)
	record.Set("name", name)
	if files, err := e.FindUploadedFiles("image"); err == nil && len(files) > 0 {
		record.Set("image", files[0])
	}

	if err := h.app.Save(record); err != nil {
		return respondErr(e, h.collection, fmt.Errorf("save record: %w", err))
	}

	return e.JSON(http.StatusCreated, models.Success(presentNamed(record)))
}

// BulkCreate - batch creation, rejected entirely when any item is invalid
func (h *CatalogHandler) BulkCreate(e *core.RequestEvent) error {
	in := &models.BulkNamedInput{}
	if err := e.BindBody(in); err != nil {
		return respondBindErr(e, h.collection, err)
	}

	created, err := h.catalog.BulkCreate(h.collection, in.Items)
	if err != nil {
		return respondErr(e, h.collection, err)
	}

	items := make([]map[string]any, 0, len(created))
	for _, record := range created {
		items = append(items, presentNamed(record))
	}

	return e.JSON(http.StatusCreated, models.SuccessMessage("batch created", map[string]any{
		"count": len(items),
		"items": items,
	}))
}

// List - full listing, name-sorted
func (h *CatalogHandler) List(e *core.RequestEvent) error {
	records, err := h.app.FindRecordsByFilter(h.collection, "", "name", 0, 0)
	if err != nil {
		return respondErr(e, h.collection, fmt.Errorf("list records: %w", err))
	}

	items := make([]map[string]any, 0, len(records))
	for _, record := range records {
		items = append(items, presentNamed(record))
	}

	return e.JSON(http.StatusOK, models.Success(items))
}

// Update - rename and/or replace the image
func (h *CatalogHandler) Update(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById(h.collection, e.Request.PathValue("id"))
	if err != nil {
		return respondErr(e, h.collection, &services.NotFoundError{Entity: h.collection, ID: e.Request.PathValue("id")})
	}

	name := strings.TrimSpace(e.Request.FormValue("name"))
	files, filesErr := e.FindUploadedFiles("image")
	hasImage := filesErr == nil && len(files) > 0

	if name == "" && !hasImage {
		return respondErr(e, h.collection, &services.ValidationError{Message: "no fields supplied for update"})
	}

	if name != "" {
		if err := h.catalog.EnsureUniqueName(h.collection, name, record.Id); err != nil {
			return respondErr(e, h.collection, err)
		}
		record.Set("name", name)
	}
	if hasImage {
		record.Set("image", files[0])
	}

	if err := h.app.Save(record); err != nil {
		return respondErr(e, h.collection, fmt.Errorf("update record: %w", err))
	}

	return e.JSON(http.StatusOK, models.Success(presentNamed(record)))
}

// Delete - guarded delete with force flag
func (h *CatalogHandler) Delete(e *core.RequestEvent) error {
	force := services.ParseForceFlag(e.Request.URL.Query().Get("force"))

	report, err := h.deps.GuardedDelete(h.collection, e.Request.PathValue("id"), force)
	if err != nil {
		return respondErr(e, h.collection, err)
	}

	return e.JSON(http.StatusOK, models.SuccessMessage("record deleted", report))
}

func presentNamed(record *core.Record) map[string]any {
	return map[string]any{
		"id":      record.Id,
		"name":    record.GetString("name"),
		"image":   fileURL(record, "image"),
		"created": record.GetDateTime("created"),
	}
}
