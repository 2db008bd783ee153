package validators

import (
	"strings"
	"time"

	"regexp"
)

var (
	phoneRegex = regexp.MustCompile(`^[0-9]{10,15}$`)

	// Indonesian mobile numbers: +62/62/0 prefix followed by 9-13 digits.
	contactPhoneRegex = regexp.MustCompile(`^(\+62|62|0)[0-9]{9,13}$`)

	emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

	instagramHandleRegex = regexp.MustCompile(`^[A-Za-z0-9._]{1,30}$`)
	instagramURLRegex    = regexp.MustCompile(`^(?:https?://)?(?:www\.)?instagram\.com/([A-Za-z0-9._]{1,30})/?(?:\?.*)?$`)
)

// ValidatePhone accepts all-digit strings of 10 to 15 characters. No country
// code normalization is applied.
func ValidatePhone(value string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(value))
}

// ValidateEmail accepts a generic email address.
func ValidateEmail(value string) bool {
	return emailRegex.MatchString(strings.TrimSpace(value))
}

// ValidateContact accepts either an Indonesian-style phone number or an
// email address.
func ValidateContact(value string) bool {
	v := strings.TrimSpace(value)
	return contactPhoneRegex.MatchString(v) || emailRegex.MatchString(v)
}

// NormalizeInstagram accepts a bare handle (optionally prefixed with @) or a
// full instagram.com profile URL and returns the bare handle for storage.
func NormalizeInstagram(value string) (string, bool) {
	v := strings.TrimSpace(value)

	if m := instagramURLRegex.FindStringSubmatch(v); m != nil {
		return m[1], true
	}

	v = strings.TrimPrefix(v, "@")
	if instagramHandleRegex.MatchString(v) {
		return v, true
	}

	return "", false
}

// Accepted date layouts for event payloads.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate parses a date-only or RFC3339 timestamp string.
func ParseDate(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateRangeResult is the structured outcome of a date pair validation.
type DateRangeResult struct {
	Valid  bool
	Reason string
	Start  time.Time
	End    time.Time
}

// ValidateDateRange checks that both values parse, that the start is not
// before the beginning of the current day, and that the end does not precede
// the start.
func ValidateDateRange(start, end string, now time.Time) DateRangeResult {
	s, ok := ParseDate(start)
	if !ok {
		return DateRangeResult{Reason: "start_date is not a valid date"}
	}

	e, ok := ParseDate(end)
	if !ok {
		return DateRangeResult{Reason: "end_date is not a valid date"}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if s.Before(today) {
		return DateRangeResult{Reason: "start_date must not be in the past", Start: s, End: e}
	}

	if e.Before(s) {
		return DateRangeResult{Reason: "end_date must not be before start_date", Start: s, End: e}
	}

	return DateRangeResult{Valid: true, Start: s, End: e}
}
