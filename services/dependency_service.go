package services

import (
	"fmt"
	"strings"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"bazaar-system/config"
	"bazaar-system/models"
	"bazaar-system/monitoring"
)

// DependentRule names a collection whose records reference a parent through
// a relation field.
type DependentRule struct {
	Collection string
	Field      string
	Label      string
}

// deleteRules maps each guarded parent collection to the collections that
// reference it. The guard never follows the chain further than one level.
var deleteRules = map[string][]DependentRule{
	"areas":            {{Collection: "events", Field: "area_id", Label: "events"}},
	"event_categories": {{Collection: "events", Field: "category_id", Label: "events"}},
	"vendors":          {{Collection: "events", Field: "vendor_id", Label: "events"}},
	"rentals":          {{Collection: "rental_products", Field: "rental_id", Label: "products"}},
	"events": {
		{Collection: "booths", Field: "event_id", Label: "booths"},
		{Collection: "ratings", Field: "event_id", Label: "ratings"},
	},
}

// ParseForceFlag interprets the force query parameter. Only the literal
// string "true" counts as forcing.
func ParseForceFlag(value string) bool {
	return strings.TrimSpace(value) == "true"
}

// DependencyService implements the guarded cascading-delete policy shared by
// all parent entities.
type DependencyService struct {
	app core.App
	cfg *config.Config
}

func NewDependencyService(app core.App, cfg *config.Config) *DependencyService {
	return &DependencyService{app: app, cfg: cfg}
}

// Inspect counts the dependents of a record per rule and collects a bounded
// sample of each.
func (s *DependencyService) Inspect(collection, id string) (map[string]models.DependentInfo, error) {
	dependents := map[string]models.DependentInfo{}

	for _, rule := range deleteRules[collection] {
		count, err := s.app.CountRecords(rule.Collection, dbx.HashExp{rule.Field: id})
		if err != nil {
			return nil, fmt.Errorf("count %s dependents: %w", rule.Label, err)
		}

		info := models.DependentInfo{Count: count, Sample: []models.DependentRef{}}
		if count > 0 {
			sample, err := s.app.FindRecordsByFilter(
				rule.Collection,
				fmt.Sprintf("%s = {:id}", rule.Field),
				"-created",
				s.cfg.DependentSampleSize,
				0,
				dbx.Params{"id": id},
			)
			if err != nil {
				return nil, fmt.Errorf("sample %s dependents: %w", rule.Label, err)
			}
			for _, rec := range sample {
				info.Sample = append(info.Sample, models.DependentRef{
					ID:   rec.Id,
					Name: rec.GetString("name"),
				})
			}
		}

		dependents[rule.Label] = info
	}

	return dependents, nil
}

// GuardedDelete deletes a record unless dependents exist and force is unset.
// When blocked it returns a DependentError carrying counts and samples. A
// forced delete either leaves dependents referencing the removed parent
// (orphan mode, the default) or clears the reference field on each dependent
// first (detach mode); it never cascade-deletes them.
func (s *DependencyService) GuardedDelete(collection, id string, force bool) (*models.DeleteReport, error) {
	record, err := s.app.FindRecordById(collection, id)
	if err != nil {
		return nil, &NotFoundError{Entity: entityLabel(collection), ID: id}
	}

	dependents, err := s.Inspect(collection, id)
	if err != nil {
		return nil, err
	}

	report := &models.DeleteReport{Forced: force, Dependents: dependents}

	if report.TotalDependents() > 0 && !force {
		monitoring.TrackDeleteBlocked(collection)
		return nil, &DependentError{Entity: entityLabel(collection), Report: report}
	}

	err = s.app.RunInTransaction(func(txApp core.App) error {
		if force && s.cfg.ForceDeleteMode == config.ForceDeleteDetach {
			if err := s.detachDependents(txApp, collection, id); err != nil {
				return err
			}
		}
		return txApp.Delete(record)
	})
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", entityLabel(collection), err)
	}

	report.Deleted = true
	return report, nil
}

func (s *DependencyService) detachDependents(txApp core.App, collection, id string) error {
	for _, rule := range deleteRules[collection] {
		records, err := txApp.FindAllRecords(rule.Collection, dbx.HashExp{rule.Field: id})
		if err != nil {
			return fmt.Errorf("load %s dependents: %w", rule.Label, err)
		}
		for _, rec := range records {
			rec.Set(rule.Field, "")
			if err := txApp.Save(rec); err != nil {
				return fmt.Errorf("detach %s %s: %w", rule.Label, rec.Id, err)
			}
		}
	}
	return nil
}

func entityLabel(collection string) string {
	switch collection {
	case "event_categories":
		return "event category"
	case "rental_products":
		return "rental product"
	default:
		return strings.TrimSuffix(collection, "s")
	}
}
