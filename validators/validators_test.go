package validators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid local number", "081234567890", true},
		{"valid 10 digits", "0812345678", true},
		{"valid 15 digits", "081234567890123", true},
		{"too short", "123", false},
		{"too long", "0812345678901234", false},
		{"letters mixed in", "08123abc9012", false},
		{"plus prefix rejected", "+6281234567890", false},
		{"empty", "", false},
		{"surrounding whitespace trimmed", " 081234567890 ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePhone(tt.input))
		})
	}
}

func TestValidateContact(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"phone with 0 prefix", "081234567890", true},
		{"phone with 62 prefix", "6281234567890", true},
		{"phone with +62 prefix", "+6281234567890", true},
		{"phone too short", "0812", false},
		{"email", "vendor@bazaar.id", true},
		{"email with plus tag", "vendor+tag@bazaar.co.id", true},
		{"not a contact", "hello world", false},
		{"email missing tld", "vendor@bazaar", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateContact(tt.input))
		})
	}
}

func TestNormalizeInstagram(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"bare handle", "foo.bar", "foo.bar", true},
		{"handle with at sign", "@foo.bar", "foo.bar", true},
		{"full url", "https://instagram.com/foo.bar/", "foo.bar", true},
		{"url without scheme", "instagram.com/foo.bar", "foo.bar", true},
		{"url with www", "https://www.instagram.com/foo_bar", "foo_bar", true},
		{"url with query", "https://instagram.com/foo.bar?igsh=abc", "foo.bar", true},
		{"handle too long", "a123456789012345678901234567890", "", false},
		{"illegal characters", "foo bar", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeInstagram(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateDateRange(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	t.Run("valid future range", func(t *testing.T) {
		res := ValidateDateRange("2025-03-11", "2025-03-14", now)
		require.True(t, res.Valid)
		assert.Empty(t, res.Reason)
	})

	t.Run("start today is allowed", func(t *testing.T) {
		res := ValidateDateRange("2025-03-10", "2025-03-10", now)
		assert.True(t, res.Valid)
	})

	t.Run("start in the past", func(t *testing.T) {
		res := ValidateDateRange("2020-01-01", "2020-01-05", now)
		require.False(t, res.Valid)
		assert.Equal(t, "start_date must not be in the past", res.Reason)
	})

	t.Run("end before start", func(t *testing.T) {
		res := ValidateDateRange("2025-03-12", "2025-03-11", now)
		require.False(t, res.Valid)
		assert.Equal(t, "end_date must not be before start_date", res.Reason)
	})

	t.Run("garbage start date", func(t *testing.T) {
		res := ValidateDateRange("not-a-date", "2025-03-11", now)
		require.False(t, res.Valid)
		assert.Equal(t, "start_date is not a valid date", res.Reason)
	})

	t.Run("garbage end date", func(t *testing.T) {
		res := ValidateDateRange("2025-03-11", "someday", now)
		require.False(t, res.Valid)
		assert.Equal(t, "end_date is not a valid date", res.Reason)
	})

	t.Run("rfc3339 timestamps accepted", func(t *testing.T) {
		res := ValidateDateRange("2025-03-11T09:00:00Z", "2025-03-12T18:00:00Z", now)
		assert.True(t, res.Valid)
	})
}
