package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"bazaar-system/config"
	"bazaar-system/models"
	"bazaar-system/monitoring"
	"bazaar-system/services"
)

// respondErr maps a domain error onto the response envelope and status code.
// Anything outside the domain taxonomy is an upstream store failure: its
// message is passed through with a 500.
func respondErr(e *core.RequestEvent, component string, err error) error {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		forbiddenErr  *services.ForbiddenError
		conflictErr   *services.ConflictError
		dependentErr  *services.DependentError
	)

	switch {
	case errors.As(err, &validationErr):
		monitoring.TrackValidationFailure(component)
		return e.JSON(http.StatusBadRequest,
			models.Fail(validationErr.Message, strings.Join(validationErr.Fields, "; ")))

	case errors.As(err, &notFoundErr):
		return e.JSON(http.StatusNotFound, models.Fail(notFoundErr.Error(), ""))

	case errors.As(err, &forbiddenErr):
		return e.JSON(http.StatusForbidden, models.Fail(forbiddenErr.Message, ""))

	case errors.As(err, &conflictErr):
		return e.JSON(http.StatusConflict, models.Fail(conflictErr.Message, ""))

	case errors.As(err, &dependentErr):
		data := map[string]any{"dependents": dependentErr.Report.Dependents}
		for label, info := range dependentErr.Report.Dependents {
			data[fmt.Sprintf("associated_%s_count", label)] = info.Count
		}
		return e.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: dependentErr.Error(),
			Data:    data,
		})

	default:
		return e.JSON(http.StatusInternalServerError,
			models.Fail("unexpected error", err.Error()))
	}
}

func respondBindErr(e *core.RequestEvent, component string, err error) error {
	monitoring.TrackValidationFailure(component)
	return e.JSON(http.StatusBadRequest, models.Fail("invalid request body", err.Error()))
}

// parsePagination reads page/per_page query parameters with the configured
// defaults and cap.
func parsePagination(e *core.RequestEvent, cfg *config.Config) (limit, offset int) {
	q := e.Request.URL.Query()

	perPage := cfg.DefaultPageSize
	if v, err := strconv.Atoi(q.Get("per_page")); err == nil && v > 0 {
		perPage = v
	}
	if perPage > cfg.MaxPageSize {
		perPage = cfg.MaxPageSize
	}

	page := 1
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page = v
	}

	return perPage, (page - 1) * perPage
}

// fileURL builds the public path of a stored file field, empty when unset.
func fileURL(record *core.Record, field string) string {
	name := record.GetString(field)
	if name == "" {
		return ""
	}
	return fmt.Sprintf("/api/files/%s/%s/%s", record.Collection().Name, record.Id, name)
}
