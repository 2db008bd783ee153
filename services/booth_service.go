package services

import (
	"fmt"
	"log"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	pubnub "github.com/pubnub/go"

	"bazaar-system/models"
	"bazaar-system/monitoring"
	"bazaar-system/validators"
)

// BoothService owns the booth application rules: creation guards, the
// applicant-side immutability of reviewed applications, and the admin-side
// status updates (single and bulk) that bypass it.
type BoothService struct {
	app    core.App
	pubnub *pubnub.PubNub
	now    func() time.Time
}

func NewBoothService(app core.App, pn *pubnub.PubNub) *BoothService {
	return &BoothService{app: app, pubnub: pn, now: time.Now}
}

// ValidateApplication checks the creation payload and the store guards:
// required fields, phone format, event existence, event not yet started, and
// a best-effort duplicate check on the (event, phone) pair. Returns the
// target event record.
func (s *BoothService) ValidateApplication(in *models.BoothInput) (*core.Record, error) {
	if err := validateBoothFields(in, true); err != nil {
		return nil, err
	}

	event, err := s.app.FindRecordById("events", *in.EventID)
	if err != nil {
		return nil, &NotFoundError{Entity: "event", ID: *in.EventID}
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if event.GetDateTime("start_date").Time().Before(today) {
		return nil, newValidationError("event has already started, applications are closed")
	}

	// Best-effort only: two racing applications can still both pass.
	existing, err := s.app.FindFirstRecordByFilter(
		"booths",
		"event_id = {:event} && phone = {:phone}",
		dbx.Params{"event": *in.EventID, "phone": *in.Phone},
	)
	if err == nil && existing != nil {
		return nil, &ConflictError{Message: "an application for this event already exists for this phone number"}
	}

	return event, nil
}

// ValidateApplicantUpdate enforces that applicants may only edit while the
// application is still PENDING, and validates whichever fields are supplied.
func (s *BoothService) ValidateApplicantUpdate(booth *core.Record, in *models.BoothInput) error {
	if booth.GetString("status") != models.BoothStatusPending {
		return &ConflictError{Message: "application has already been reviewed and can no longer be edited"}
	}
	if in.IsEmpty() {
		return newValidationError("no fields supplied for update")
	}
	return validateBoothFields(in, false)
}

func validateBoothFields(in *models.BoothInput, requireAll bool) error {
	if requireAll {
		var missing []string
		requireString(&missing, "name", in.Name)
		requireString(&missing, "phone", in.Phone)
		requireString(&missing, "description", in.Description)
		requireString(&missing, "event_id", in.EventID)
		if len(missing) > 0 {
			return &ValidationError{Message: "missing required field(s)", Fields: missing}
		}
	}

	if in.Phone != nil && !validators.ValidatePhone(*in.Phone) {
		return newValidationError("phone must be 10-15 digits")
	}
	return nil
}

// SetStatus applies an admin status decision to a single application. The
// token is normalized to the canonical vocabulary first; transitions are
// otherwise unconditional for admins.
func (s *BoothService) SetStatus(boothID, status, adminNote string) (*core.Record, error) {
	canonical, ok := models.NormalizeBoothStatus(status)
	if !ok {
		return nil, newValidationError("unknown status %q", status)
	}

	booth, err := s.app.FindRecordById("booths", boothID)
	if err != nil {
		return nil, &NotFoundError{Entity: "booth application", ID: boothID}
	}

	if !models.CanTransitionBoothStatus(booth.GetString("status"), canonical) {
		return nil, newValidationError("status transition not allowed")
	}

	booth.Set("status", canonical)
	if adminNote != "" {
		booth.Set("admin_note", adminNote)
	}

	if err := s.app.Save(booth); err != nil {
		return nil, fmt.Errorf("update booth status: %w", err)
	}

	monitoring.TrackBoothTransition(canonical)
	s.notifyStatusChange(booth, canonical, adminNote)

	return booth, nil
}

// BulkSetStatus applies one status decision to a list of applications in a
// single transaction. The batch is validated up front and either fully
// applied or not at all.
func (s *BoothService) BulkSetStatus(in *models.BoothStatusInput) (int, error) {
	canonical, ok := models.NormalizeBoothStatus(in.Status)
	if !ok {
		return 0, newValidationError("unknown status %q", in.Status)
	}
	if len(in.IDs) == 0 {
		return 0, newValidationError("ids must not be empty")
	}

	var itemErrs []string
	for i, id := range in.IDs {
		if id == "" {
			itemErrs = append(itemErrs, fmt.Sprintf("item %d: id is required", i))
		}
	}
	if len(itemErrs) > 0 {
		return 0, &ValidationError{Message: "invalid batch", Fields: itemErrs}
	}

	updated := make([]*core.Record, 0, len(in.IDs))
	err := s.app.RunInTransaction(func(txApp core.App) error {
		for _, id := range in.IDs {
			booth, err := txApp.FindRecordById("booths", id)
			if err != nil {
				return &NotFoundError{Entity: "booth application", ID: id}
			}
			booth.Set("status", canonical)
			if in.AdminNote != "" {
				booth.Set("admin_note", in.AdminNote)
			}
			if err := txApp.Save(booth); err != nil {
				return fmt.Errorf("update booth %s: %w", id, err)
			}
			updated = append(updated, booth)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, booth := range updated {
		monitoring.TrackBoothTransition(canonical)
		s.notifyStatusChange(booth, canonical, in.AdminNote)
	}

	return len(updated), nil
}

// notifyStatusChange publishes the decision to the applicant's channel.
// Delivery is best-effort; a publish failure never fails the request.
func (s *BoothService) notifyStatusChange(booth *core.Record, status, note string) {
	if s.pubnub == nil {
		return
	}

	channel := fmt.Sprintf("booth-%s", booth.GetString("ref_code"))
	_, pnStatus, err := s.pubnub.Publish().
		Channel(channel).
		Message(map[string]any{
			"type":       "booth_status",
			"booth_id":   booth.Id,
			"event_id":   booth.GetString("event_id"),
			"status":     status,
			"admin_note": note,
		}).
		Execute()
	if err != nil || pnStatus.Error != nil {
		log.Printf("Failed to publish booth status notification for %s: %v", booth.Id, err)
	}
}

// FindByRefCode resolves the applicant-facing reference code issued at
// application time.
func (s *BoothService) FindByRefCode(refCode string) (*core.Record, error) {
	booth, err := s.app.FindFirstRecordByFilter(
		"booths",
		"ref_code = {:code}",
		dbx.Params{"code": refCode},
	)
	if err != nil || booth == nil {
		return nil, &NotFoundError{Entity: "booth application", ID: refCode}
	}
	return booth, nil
}
