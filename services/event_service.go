package services

import (
	"fmt"
	"math"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"bazaar-system/config"
	"bazaar-system/models"
	"bazaar-system/validators"
)

// EventService validates event payloads and derives the read-time lifecycle
// fields. The clock is injected so tests can pin "now".
type EventService struct {
	app core.App
	cfg *config.Config
	now func() time.Time
}

func NewEventService(app core.App, cfg *config.Config) *EventService {
	return &EventService{app: app, cfg: cfg, now: time.Now}
}

// DeriveEventLifecycle computes the derived fields for an event date pair:
// status, inclusive duration in days, days until start/end and whether
// registration is still open.
func DeriveEventLifecycle(start, end, now time.Time) models.EventLifecycle {
	lc := models.EventLifecycle{}

	switch {
	case now.After(end):
		lc.Status = models.EventStatusCompleted
	case !now.Before(start):
		lc.Status = models.EventStatusOngoing
	default:
		lc.Status = models.EventStatusUpcoming
	}

	lc.DurationDays = int(math.Ceil(end.Sub(start).Hours()/24)) + 1
	lc.DaysUntilStart = daysUntil(start, now)
	lc.DaysUntilEnd = daysUntil(end, now)
	lc.IsRegistrationOpen = start.After(now)

	return lc
}

func daysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

// Lifecycle derives the lifecycle fields for a stored event record.
func (s *EventService) Lifecycle(record *core.Record) models.EventLifecycle {
	return DeriveEventLifecycle(
		record.GetDateTime("start_date").Time(),
		record.GetDateTime("end_date").Time(),
		s.now(),
	)
}

// ValidateCreate checks a creation payload: every required field present
// (naming each missing one), price non-negative, booth slot positive, date
// and contact primitives, and referenced category/area/vendor resolvable.
// It returns the parsed date pair for storage.
func (s *EventService) ValidateCreate(in *models.EventInput) (start, end time.Time, err error) {
	start, end, err = validateEventFields(in, s.now())
	if err != nil {
		return start, end, err
	}
	return start, end, s.checkRefs(in)
}

func validateEventFields(in *models.EventInput, now time.Time) (time.Time, time.Time, error) {
	var missing []string

	requireString(&missing, "name", in.Name)
	requireString(&missing, "description", in.Description)
	requireString(&missing, "category", in.Category)
	requireString(&missing, "category_id", in.CategoryID)
	requireString(&missing, "location", in.Location)
	requireString(&missing, "contact", in.Contact)
	requireString(&missing, "start_date", in.StartDate)
	requireString(&missing, "end_date", in.EndDate)
	if in.Price == nil {
		missing = append(missing, "price")
	}
	if in.BoothSlot == nil {
		missing = append(missing, "booth_slot")
	}

	if len(missing) > 0 {
		return time.Time{}, time.Time{}, &ValidationError{
			Message: "missing required field(s)",
			Fields:  missing,
		}
	}

	if *in.Price < 0 {
		return time.Time{}, time.Time{}, newValidationError("price must be a non-negative integer")
	}
	if *in.BoothSlot <= 0 {
		return time.Time{}, time.Time{}, newValidationError("booth_slot must be a positive integer")
	}
	if !validators.ValidateContact(*in.Contact) {
		return time.Time{}, time.Time{}, newValidationError("contact must be a phone number or an email address")
	}

	res := validators.ValidateDateRange(*in.StartDate, *in.EndDate, now)
	if !res.Valid {
		return res.Start, res.End, newValidationError("%s", res.Reason)
	}

	return res.Start, res.End, nil
}

func requireString(missing *[]string, field string, value *string) {
	if value == nil || *value == "" {
		*missing = append(*missing, field)
	}
}

// ValidateUpdate checks a partial update against the stored record. An empty
// patch is rejected. When only one of the dates is supplied the pair is
// re-validated against the stored counterpart; the not-in-the-past rule is
// only enforced on a start date the caller is actually changing, so ongoing
// events can still have their end date moved.
func (s *EventService) ValidateUpdate(record *core.Record, in *models.EventInput) (start, end time.Time, err error) {
	if in.IsEmpty() {
		return start, end, newValidationError("no fields supplied for update")
	}

	start = record.GetDateTime("start_date").Time()
	end = record.GetDateTime("end_date").Time()

	if in.StartDate != nil {
		parsed, ok := validators.ParseDate(*in.StartDate)
		if !ok {
			return start, end, newValidationError("start_date is not a valid date")
		}
		now := s.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if parsed.Before(today) {
			return start, end, newValidationError("start_date must not be in the past")
		}
		start = parsed
	}

	if in.EndDate != nil {
		parsed, ok := validators.ParseDate(*in.EndDate)
		if !ok {
			return start, end, newValidationError("end_date is not a valid date")
		}
		end = parsed
	}

	if end.Before(start) {
		return start, end, newValidationError("end_date must not be before start_date")
	}

	if in.Price != nil && *in.Price < 0 {
		return start, end, newValidationError("price must be a non-negative integer")
	}
	if in.BoothSlot != nil && *in.BoothSlot <= 0 {
		return start, end, newValidationError("booth_slot must be a positive integer")
	}
	if in.Contact != nil && !validators.ValidateContact(*in.Contact) {
		return start, end, newValidationError("contact must be a phone number or an email address")
	}

	return start, end, s.checkRefs(in)
}

// checkRefs resolves any supplied foreign references. A reference the store
// cannot find is a client input error, not a storage failure.
func (s *EventService) checkRefs(in *models.EventInput) error {
	if in.CategoryID != nil && *in.CategoryID != "" {
		if _, err := s.app.FindRecordById("event_categories", *in.CategoryID); err != nil {
			return &NotFoundError{Entity: "event category", ID: *in.CategoryID}
		}
	}
	if in.AreaID != nil && *in.AreaID != "" {
		if _, err := s.app.FindRecordById("areas", *in.AreaID); err != nil {
			return &NotFoundError{Entity: "area", ID: *in.AreaID}
		}
	}
	if in.VendorID != nil && *in.VendorID != "" {
		if _, err := s.app.FindRecordById("vendors", *in.VendorID); err != nil {
			return &NotFoundError{Entity: "vendor", ID: *in.VendorID}
		}
	}
	return nil
}

// FindEvent resolves an event id to its record.
func (s *EventService) FindEvent(id string) (*core.Record, error) {
	record, err := s.app.FindRecordById("events", id)
	if err != nil {
		return nil, &NotFoundError{Entity: "event", ID: id}
	}
	return record, nil
}

// LinkPromoBanner creates a standalone banner record carrying the uploaded
// image and links it to the event. The two store writes are not atomic: when
// the event update fails the freshly created banner is removed best-effort,
// and a failure of that cleanup is only logged by the caller.
func (s *EventService) LinkPromoBanner(event *core.Record, banner *core.Record) (cleanup func() error, err error) {
	if err := s.app.Save(banner); err != nil {
		return nil, fmt.Errorf("save banner: %w", err)
	}

	event.Set("promo_banner", banner.Id)
	if err := s.app.Save(event); err != nil {
		return func() error { return s.app.Delete(banner) }, fmt.Errorf("link banner to event: %w", err)
	}

	return nil, nil
}
