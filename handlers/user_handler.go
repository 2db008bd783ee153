package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bazaar-system/config"
	"bazaar-system/models"
	"bazaar-system/security"
	"bazaar-system/services"
)

// UserHandler exposes the admin view over the auth collection: listing
// accounts and changing roles. Account creation and login stay on the
// built-in auth endpoints.
type UserHandler struct {
	app *pocketbase.PocketBase
	cfg *config.Config
}

func NewUserHandler(app *pocketbase.PocketBase, cfg *config.Config) *UserHandler {
	return &UserHandler{
		app: app,
		cfg: cfg,
	}
}

type roleInput struct {
	Role string `json:"role"`
}

// List - paginated user listing, optional role filter
func (h *UserHandler) List(e *core.RequestEvent) error {
	limit, offset := parsePagination(e, h.cfg)

	filter := ""
	params := map[string]any{}
	if role := e.Request.URL.Query().Get("role"); role != "" {
		filter = "role = {:role}"
		params["role"] = strings.ToLower(role)
	}

	records, err := h.app.FindRecordsByFilter("users", filter, "-created", limit, offset, params)
	if err != nil {
		return respondErr(e, "users", fmt.Errorf("list users: %w", err))
	}

	items := make([]map[string]any, 0, len(records))
	for _, record := range records {
		items = append(items, presentUser(record))
	}

	return e.JSON(http.StatusOK, models.Success(items))
}

// Get - single user
func (h *UserHandler) Get(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("users", e.Request.PathValue("id"))
	if err != nil {
		return respondErr(e, "users", &services.NotFoundError{Entity: "user", ID: e.Request.PathValue("id")})
	}
	return e.JSON(http.StatusOK, models.Success(presentUser(record)))
}

// SetRole - change a user's role to one of the known roles
func (h *UserHandler) SetRole(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("users", e.Request.PathValue("id"))
	if err != nil {
		return respondErr(e, "users", &services.NotFoundError{Entity: "user", ID: e.Request.PathValue("id")})
	}

	in := &roleInput{}
	if err := e.BindBody(in); err != nil {
		return respondBindErr(e, "users", err)
	}

	role := strings.ToLower(strings.TrimSpace(in.Role))
	if !security.ValidRole(role) {
		return respondErr(e, "users", &services.ValidationError{
			Message: fmt.Sprintf("role must be one of: %s, %s, %s", security.RoleAdmin, security.RoleVendor, security.RoleUser),
		})
	}

	record.Set("role", role)
	if err := h.app.Save(record); err != nil {
		return respondErr(e, "users", fmt.Errorf("update user role: %w", err))
	}

	return e.JSON(http.StatusOK, models.Success(presentUser(record)))
}

func presentUser(record *core.Record) map[string]any {
	role := record.GetString("role")
	if role == "" {
		role = security.RoleUser
	}

	return map[string]any{
		"id":      record.Id,
		"email":   record.GetString("email"),
		"name":    record.GetString("name"),
		"phone":   record.GetString("phone"),
		"role":    role,
		"created": record.GetDateTime("created"),
	}
}
