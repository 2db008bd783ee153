package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bazaar-system/config"
	"bazaar-system/models"
	"bazaar-system/security"
	"bazaar-system/services"
)

type VendorHandler struct {
	app     *pocketbase.PocketBase
	cfg     *config.Config
	vendors *services.VendorService
	deps    *services.DependencyService
}

func NewVendorHandler(app *pocketbase.PocketBase, cfg *config.Config, vendors *services.VendorService, deps *services.DependencyService) *VendorHandler {
	return &VendorHandler{
		app:     app,
		cfg:     cfg,
		vendors: vendors,
		deps:    deps,
	}
}

// Register - create the vendor profile for the authenticated user
func (h *VendorHandler) Register(e *core.RequestEvent) error {
	in := vendorInputFromForm(e)

	instagram, err := h.vendors.ValidateRegister(e.Auth.Id, in)
	if err != nil {
		return respondErr(e, "vendors", err)
	}

	collection, err := h.app.FindCollectionByNameOrId("vendors")
	if err != nil {
		return respondErr(e, "vendors", fmt.Errorf("find vendors collection: %w", err))
	}

	record := core.NewRecord(collection)
	record.Set("user_id", e.Auth.Id)
	record.Set("name", *in.Name)
	record.Set("phone", *in.Phone)
	if in.Description != nil {
		record.Set("description", *in.Description)
	}
	if in.Location != nil {
		record.Set("location", *in.Location)
	}
	if in.Email != nil {
		record.Set("email", *in.Email)
	}
	if instagram != "" {
		record.Set("instagram", instagram)
	}
	if files, err := e.FindUploadedFiles("banner"); err == nil && len(files) > 0 {
		record.Set("banner", files[0])
	}

	if err := h.app.Save(record); err != nil {
		return respondErr(e, "vendors", fmt.Errorf("save vendor: %w", err))
	}

	return e.JSON(http.StatusCreated, models.Success(presentVendor(record)))
}

// List - paginated vendor directory
func (h *VendorHandler) List(e *core.RequestEvent) error {
	limit, offset := parsePagination(e, h.cfg)

	records, err := h.app.FindRecordsByFilter("vendors", "", "-created", limit, offset)
	if err != nil {
		return respondErr(e, "vendors", fmt.Errorf("list vendors: %w", err))
	}

	items := make([]map[string]any, 0, len(records))
	for _, record := range records {
		items = append(items, presentVendor(record))
	}

	return e.JSON(http.StatusOK, models.Success(items))
}

// Get - single vendor profile
func (h *VendorHandler) Get(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("vendors", e.Request.PathValue("id"))
	if err != nil {
		return respondErr(e, "vendors", &services.NotFoundError{Entity: "vendor", ID: e.Request.PathValue("id")})
	}
	return e.JSON(http.StatusOK, models.Success(presentVendor(record)))
}

// Update - partial update by the owning user or an admin
func (h *VendorHandler) Update(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("vendors", e.Request.PathValue("id"))
	if err != nil {
		return respondErr(e, "vendors", &services.NotFoundError{Entity: "vendor", ID: e.Request.PathValue("id")})
	}

	role := e.Auth.GetString("role")
	if record.GetString("user_id") != e.Auth.Id && !security.RoleAllowed(role, security.RoleAdmin) {
		return e.JSON(http.StatusForbidden, models.Fail("only the owning user or an admin can edit this vendor", ""))
	}

	in := &models.VendorInput{}
	if err := e.BindBody(in); err != nil {
		return respondBindErr(e, "vendors", err)
	}

	instagram, err := h.vendors.ValidateUpdate(in)
	if err != nil {
		return respondErr(e, "vendors", err)
	}

	if in.Name != nil {
		record.Set("name", *in.Name)
	}
	if in.Description != nil {
		record.Set("description", *in.Description)
	}
	if in.Phone != nil {
		record.Set("phone", *in.Phone)
	}
	if in.Location != nil {
		record.Set("location", *in.Location)
	}
	if in.Email != nil {
		record.Set("email", *in.Email)
	}
	if in.Instagram != nil {
		record.Set("instagram", instagram)
	}

	if err := h.app.Save(record); err != nil {
		return respondErr(e, "vendors", fmt.Errorf("update vendor: %w", err))
	}

	return e.JSON(http.StatusOK, models.Success(presentVendor(record)))
}

// Delete - guarded delete; vendors with events need force=true
func (h *VendorHandler) Delete(e *core.RequestEvent) error {
	force := services.ParseForceFlag(e.Request.URL.Query().Get("force"))

	report, err := h.deps.GuardedDelete("vendors", e.Request.PathValue("id"), force)
	if err != nil {
		return respondErr(e, "vendors", err)
	}

	return e.JSON(http.StatusOK, models.SuccessMessage("vendor deleted", report))
}

func presentVendor(record *core.Record) map[string]any {
	return map[string]any{
		"id":          record.Id,
		"user_id":     record.GetString("user_id"),
		"name":        record.GetString("name"),
		"description": record.GetString("description"),
		"phone":       record.GetString("phone"),
		"instagram":   record.GetString("instagram"),
		"location":    record.GetString("location"),
		"email":       record.GetString("email"),
		"banner":      fileURL(record, "banner"),
		"created":     record.GetDateTime("created"),
	}
}

func vendorInputFromForm(e *core.RequestEvent) *models.VendorInput {
	in := &models.VendorInput{}

	setString := func(dst **string, key string) {
		if v := e.Request.FormValue(key); v != "" {
			*dst = &v
		}
	}

	setString(&in.Name, "name")
	setString(&in.Description, "description")
	setString(&in.Phone, "phone")
	setString(&in.Instagram, "instagram")
	setString(&in.Location, "location")
	setString(&in.Email, "email")

	return in
}
