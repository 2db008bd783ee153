package models

// Event statuses are derived from the date pair at read time, never stored.
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
)

// EventLifecycle holds the fields derived from an event's date pair.
type EventLifecycle struct {
	Status             string `json:"status"`
	DurationDays       int    `json:"duration_days"`
	DaysUntilStart     int    `json:"days_until_start"`
	DaysUntilEnd       int    `json:"days_until_end"`
	IsRegistrationOpen bool   `json:"is_registration_open"`
}

// EventInput is the write payload for events. Every field is a pointer so a
// partial update can tell "absent" apart from "set to zero value".
type EventInput struct {
	Name        *string `json:"name"`
	Price       *int    `json:"price"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	CategoryID  *string `json:"category_id"`
	Location    *string `json:"location"`
	Contact     *string `json:"contact"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	BoothSlot   *int    `json:"booth_slot"`
	AreaID      *string `json:"area_id"`
	VendorID    *string `json:"vendor_id"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (in *EventInput) IsEmpty() bool {
	return in.Name == nil && in.Price == nil && in.Description == nil &&
		in.Category == nil && in.CategoryID == nil && in.Location == nil &&
		in.Contact == nil && in.StartDate == nil && in.EndDate == nil &&
		in.BoothSlot == nil && in.AreaID == nil && in.VendorID == nil
}
