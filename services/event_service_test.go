package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar-system/models"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return testNow.AddDate(0, 0, offset)
}

func TestDeriveEventLifecycle(t *testing.T) {
	tests := []struct {
		name             string
		start, end       time.Time
		wantStatus       string
		wantDuration     int
		wantDaysToStart  int
		wantDaysToEnd    int
		wantRegistration bool
	}{
		{
			name:             "Upcoming event",
			start:            day(1),
			end:              day(3),
			wantStatus:       models.EventStatusUpcoming,
			wantDuration:     3,
			wantDaysToStart:  1,
			wantDaysToEnd:    3,
			wantRegistration: true,
		},
		{
			name:             "Ongoing event",
			start:            day(-2),
			end:              day(2),
			wantStatus:       models.EventStatusOngoing,
			wantDuration:     5,
			wantDaysToStart:  -2,
			wantDaysToEnd:    2,
			wantRegistration: false,
		},
		{
			name:             "Completed event",
			start:            day(-5),
			end:              day(-1),
			wantStatus:       models.EventStatusCompleted,
			wantDuration:     5,
			wantDaysToStart:  -5,
			wantDaysToEnd:    -1,
			wantRegistration: false,
		},
		{
			name:             "Single day event",
			start:            day(2),
			end:              day(2),
			wantStatus:       models.EventStatusUpcoming,
			wantDuration:     1,
			wantDaysToStart:  2,
			wantDaysToEnd:    2,
			wantRegistration: true,
		},
		{
			name:             "Starts exactly now",
			start:            testNow,
			end:              day(1),
			wantStatus:       models.EventStatusOngoing,
			wantDuration:     2,
			wantDaysToStart:  0,
			wantDaysToEnd:    1,
			wantRegistration: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := DeriveEventLifecycle(tt.start, tt.end, testNow)

			assert.Equal(t, tt.wantStatus, lc.Status)
			assert.Equal(t, tt.wantDuration, lc.DurationDays)
			assert.Equal(t, tt.wantDaysToStart, lc.DaysUntilStart)
			assert.Equal(t, tt.wantDaysToEnd, lc.DaysUntilEnd)
			assert.Equal(t, tt.wantRegistration, lc.IsRegistrationOpen)
		})
	}
}

func TestDeriveEventLifecycle_StableForFixedClock(t *testing.T) {
	start, end := day(1), day(4)

	first := DeriveEventLifecycle(start, end, testNow)
	second := DeriveEventLifecycle(start, end, testNow)

	assert.Equal(t, first, second)
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func validEventInput() *models.EventInput {
	return &models.EventInput{
		Name:        strPtr("Night Market"),
		Price:       intPtr(15000),
		Description: strPtr("Weekend night market"),
		Category:    strPtr("market"),
		CategoryID:  strPtr("cat123"),
		Location:    strPtr("Central Square"),
		Contact:     strPtr("081234567890"),
		StartDate:   strPtr("2025-04-01"),
		EndDate:     strPtr("2025-04-03"),
		BoothSlot:   intPtr(20),
	}
}

func TestValidateEventFields_MissingFieldsAreNamed(t *testing.T) {
	in := validEventInput()
	in.Name = nil
	in.Contact = nil
	in.Price = nil

	_, _, err := validateEventFields(in, testNow)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "name")
	assert.Contains(t, vErr.Fields, "contact")
	assert.Contains(t, vErr.Fields, "price")
	assert.NotContains(t, vErr.Fields, "location")
}

func TestValidateEventFields_Rules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *models.EventInput)
		wantErr string
	}{
		{
			name:    "Valid input",
			mutate:  func(in *models.EventInput) {},
			wantErr: "",
		},
		{
			name:    "Negative price",
			mutate:  func(in *models.EventInput) { in.Price = intPtr(-1) },
			wantErr: "price must be a non-negative integer",
		},
		{
			name:    "Zero booth slot",
			mutate:  func(in *models.EventInput) { in.BoothSlot = intPtr(0) },
			wantErr: "booth_slot must be a positive integer",
		},
		{
			name:    "Bad contact",
			mutate:  func(in *models.EventInput) { in.Contact = strPtr("not-a-contact") },
			wantErr: "contact must be a phone number or an email address",
		},
		{
			name:    "Email contact accepted",
			mutate:  func(in *models.EventInput) { in.Contact = strPtr("organizer@example.com") },
			wantErr: "",
		},
		{
			name:    "Start in the past",
			mutate:  func(in *models.EventInput) { in.StartDate = strPtr("2025-03-01") },
			wantErr: "start_date must not be in the past",
		},
		{
			name: "End before start",
			mutate: func(in *models.EventInput) {
				in.StartDate = strPtr("2025-04-05")
				in.EndDate = strPtr("2025-04-01")
			},
			wantErr: "end_date must not be before start_date",
		},
		{
			name:    "Unparseable date",
			mutate:  func(in *models.EventInput) { in.StartDate = strPtr("April 1st") },
			wantErr: "start_date is not a valid date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validEventInput()
			tt.mutate(in)

			start, end, err := validateEventFields(in, testNow)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.False(t, start.IsZero())
				assert.False(t, end.IsZero())
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateEventFields_StartTodayAccepted(t *testing.T) {
	in := validEventInput()
	in.StartDate = strPtr("2025-03-10")
	in.EndDate = strPtr("2025-03-12")

	_, _, err := validateEventFields(in, testNow)
	assert.NoError(t, err)
}
