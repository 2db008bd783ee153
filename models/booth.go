package models

import "strings"

// Canonical booth application statuses. Earlier API revisions used
// ACCEPT/REJECT in some call sites; those tokens are still accepted as input
// aliases and normalized here.
const (
	BoothStatusPending  = "PENDING"
	BoothStatusApproved = "APPROVED"
	BoothStatusRejected = "REJECTED"
)

// NormalizeBoothStatus maps an incoming status token (any casing, legacy
// aliases included) to the canonical value. The second return is false for
// tokens outside the vocabulary.
func NormalizeBoothStatus(value string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "PENDING":
		return BoothStatusPending, true
	case "APPROVED", "ACCEPTED", "ACCEPT":
		return BoothStatusApproved, true
	case "REJECTED", "REJECT":
		return BoothStatusRejected, true
	}
	return "", false
}

// CanTransitionBoothStatus reports whether an admin may move an application
// from one status to another. Every pair of canonical statuses is currently
// allowed, including back to PENDING; the predicate exists so the rule lives
// in one place if it ever gets tightened.
func CanTransitionBoothStatus(from, to string) bool {
	_, fromOK := NormalizeBoothStatus(from)
	_, toOK := NormalizeBoothStatus(to)
	return fromOK && toOK
}

// BoothInput is the write payload for booth applications.
type BoothInput struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Description *string `json:"description"`
	EventID     *string `json:"event_id"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (in *BoothInput) IsEmpty() bool {
	return in.Name == nil && in.Phone == nil && in.Description == nil && in.EventID == nil
}

// BoothStatusInput is the admin payload for single and bulk status updates.
type BoothStatusInput struct {
	IDs       []string `json:"ids"`
	Status    string   `json:"status"`
	AdminNote string   `json:"admin_note"`
}
