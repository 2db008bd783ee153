package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bazaar-system/config"
	"bazaar-system/models"
	"bazaar-system/services"
)

// RentalHandler serves rentals and their nested products.
type RentalHandler struct {
	app     *pocketbase.PocketBase
	cfg     *config.Config
	catalog *services.CatalogService
	deps    *services.DependencyService
}

func NewRentalHandler(app *pocketbase.PocketBase, cfg *config.Config, catalog *services.CatalogService, deps *services.DependencyService) *RentalHandler {
	return &RentalHandler{
		app:     app,
		cfg:     cfg,
		catalog: catalog,
		deps:    deps,
	}
}

// Create - single rental
func (h *RentalHandler) Create(e *core.RequestEvent) error {
	name := strings.TrimSpace(e.Request.FormValue("name"))

	if err := h.catalog.EnsureUniqueName("rentals", name, ""); err != nil {
		return respondErr(e, "rentals", err)
	}

	collection, err := h.app.FindCollectionByNameOrId("rentals")
	if err != nil {
		return respondErr(e, "rentals", fmt.Errorf("find rentals collection: %w", err))
	}

	record := core.NewRecord(collection)
	record.Set("name", name)
	if files, err := e.FindUploadedFiles("image"); err == nil && len(files) > 0 {
		record.Set("image", files[0])
	}

	if err := h.app.Save(record); err != nil {
		return respondErr(e, "rentals", fmt.Errorf("save rental: %w", err))
	}

	return e.JSON(http.StatusCreated, models.Success(presentNamed(record)))
}

// List - rentals with their products expanded
func (h *RentalHandler) List(e *core.RequestEvent) error {
	records, err := h.app.FindRecordsByFilter("rentals", "", "name", 0, 0)
	if err != nil {
		return respondErr(e, "rentals", fmt.Errorf("list rentals: %w", err))
	}

	items := make([]map[string]any, 0, len(records))
	for _, record := range records {
		item := presentNamed(record)

		products, err := h.app.FindRecordsByFilter(
			"rental_products",
			"rental_id = {:rental}",
			"name",
			0,
			0,
			map[string]any{"rental": record.Id},
		)
		if err != nil {
			return respondErr(e, "rentals", fmt.Errorf("list rental products: %w", err))
		}

		productItems := make([]map[string]any, 0, len(products))
		for _, p := range products {
			productItems = append(productItems, presentProduct(p))
		}
		item["products"] = productItems

		items = append(items, item)
	}

	return e.JSON(http.StatusOK, models.Success(items))
}

// Delete - guarded; rentals with products need force=true
func (h *RentalHandler) Delete(e *core.RequestEvent) error {
	force := services.ParseForceFlag(e.Request.URL.Query().Get("force"))

	report, err := h.deps.GuardedDelete("rentals", e.Request.PathValue("id"), force)
	if err != nil {
		return respondErr(e, "rentals", err)
	}

	return e.JSON(http.StatusOK, models.SuccessMessage("rental deleted", report))
}

// CreateProduct - add a product under a rental
func (h *RentalHandler) CreateProduct(e *core.RequestEvent) error {
	rentalID := e.Request.PathValue("id")
	if _, err := h.app.FindRecordById("rentals", rentalID); err != nil {
		return respondErr(e, "rentals", &services.NotFoundError{Entity: "rental", ID: rentalID})
	}

	name := strings.TrimSpace(e.Request.FormValue("name"))
	if name == "" {
		return respondErr(e, "rentals", &services.ValidationError{Message: "name is required"})
	}

	price := 0
	if v := e.Request.FormValue("price"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return respondErr(e, "rentals", &services.ValidationError{Message: "price must be a non-negative integer"})
		}
		price = n
	}

	collection, err := h.app.FindCollectionByNameOrId("rental_products")
	if err != nil {
		return respondErr(e, "rentals", fmt.Errorf("find rental_products collection: %w", err))
	}

	record := core.NewRecord(collection)
	record.Set("rental_id", rentalID)
	record.Set("name", name)
	record.Set("price", price)
	if files, err := e.FindUploadedFiles("image"); err == nil && len(files) > 0 {
		record.Set("image", files[0])
	}

	if err := h.app.Save(record); err != nil {
		return respondErr(e, "rentals", fmt.Errorf("save rental product: %w", err))
	}

	return e.JSON(http.StatusCreated, models.Success(presentProduct(record)))
}

// DeleteProduct - remove a product
func (h *RentalHandler) DeleteProduct(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("rental_products", e.Request.PathValue("productId"))
	if err != nil {
		return respondErr(e, "rentals", &services.NotFoundError{Entity: "rental product", ID: e.Request.PathValue("productId")})
	}

	if err := h.app.Delete(record); err != nil {
		return respondErr(e, "rentals", fmt.Errorf("delete rental product: %w", err))
	}

	return e.JSON(http.StatusOK, models.SuccessMessage("product deleted", nil))
}

func presentProduct(record *core.Record) map[string]any {
	return map[string]any{
		"id":        record.Id,
		"rental_id": record.GetString("rental_id"),
		"name":      record.GetString("name"),
		"price":     record.GetInt("price"),
		"image":     fileURL(record, "image"),
		"created":   record.GetDateTime("created"),
	}
}
