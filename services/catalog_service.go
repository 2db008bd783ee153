package services

import (
	"fmt"
	"strings"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"bazaar-system/models"
)

// CatalogService covers the simple named records (areas, event categories,
// rentals, rental products, banners): case-insensitive name uniqueness and
// all-or-nothing bulk creation with per-index validation reporting.
type CatalogService struct {
	app core.App
}

func NewCatalogService(app core.App) *CatalogService {
	return &CatalogService{app: app}
}

// ValidateBulkItems checks every item of a batch independently and returns
// one message per failing index. Blank names and case-insensitive duplicates
// within the batch itself are rejected.
func ValidateBulkItems(items []models.NamedItemInput) []string {
	var errs []string
	seen := map[string]int{}

	for i, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			errs = append(errs, fmt.Sprintf("item %d: name is required", i))
			continue
		}
		key := strings.ToLower(name)
		if first, dup := seen[key]; dup {
			errs = append(errs, fmt.Sprintf("item %d: duplicate of item %d", i, first))
			continue
		}
		seen[key] = i
	}

	return errs
}

// FindByNameInsensitive looks a record up by case-insensitive name match.
// Returns nil without error when nothing matches.
func (s *CatalogService) FindByNameInsensitive(collection, name string) (*core.Record, error) {
	records, err := s.app.FindAllRecords(collection,
		dbx.NewExp("LOWER(name) = {:name}", dbx.Params{"name": strings.ToLower(strings.TrimSpace(name))}))
	if err != nil {
		return nil, fmt.Errorf("lookup %s by name: %w", collection, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// EnsureUniqueName rejects a name already used by another record of the
// collection, ignoring case. excludeID skips the record being updated.
func (s *CatalogService) EnsureUniqueName(collection, name, excludeID string) error {
	if strings.TrimSpace(name) == "" {
		return newValidationError("name is required")
	}

	existing, err := s.FindByNameInsensitive(collection, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.Id != excludeID {
		return &ConflictError{Message: fmt.Sprintf("%s named %q already exists", entityLabel(collection), name)}
	}
	return nil
}

// BulkCreate validates the whole batch (per-index reporting), checks every
// name against the store, and inserts all records in one transaction. Any
// failure rejects the entire batch; there is no partial insert.
func (s *CatalogService) BulkCreate(collection string, items []models.NamedItemInput) ([]*core.Record, error) {
	if len(items) == 0 {
		return nil, newValidationError("items must not be empty")
	}

	if errs := ValidateBulkItems(items); len(errs) > 0 {
		return nil, &ValidationError{Message: "invalid batch", Fields: errs}
	}

	var conflicts []string
	for i, item := range items {
		existing, err := s.FindByNameInsensitive(collection, item.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			conflicts = append(conflicts, fmt.Sprintf("item %d: %q already exists", i, item.Name))
		}
	}
	if len(conflicts) > 0 {
		return nil, &ValidationError{Message: "invalid batch", Fields: conflicts}
	}

	col, err := s.app.FindCollectionByNameOrId(collection)
	if err != nil {
		return nil, fmt.Errorf("find collection %s: %w", collection, err)
	}

	created := make([]*core.Record, 0, len(items))
	err = s.app.RunInTransaction(func(txApp core.App) error {
		for _, item := range items {
			record := core.NewRecord(col)
			record.Set("name", strings.TrimSpace(item.Name))
			if err := txApp.Save(record); err != nil {
				return fmt.Errorf("save %s: %w", entityLabel(collection), err)
			}
			created = append(created, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}
