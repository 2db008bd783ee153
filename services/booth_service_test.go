package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar-system/models"
)

func validBoothInput() *models.BoothInput {
	return &models.BoothInput{
		Name:        strPtr("Satay Corner"),
		Phone:       strPtr("081234567890"),
		Description: strPtr("Grilled satay and drinks"),
		EventID:     strPtr("evt123"),
	}
}

func TestValidateBoothFields_MissingFieldsAreNamed(t *testing.T) {
	in := validBoothInput()
	in.Phone = nil
	in.EventID = nil

	err := validateBoothFields(in, true)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "phone")
	assert.Contains(t, vErr.Fields, "event_id")
	assert.NotContains(t, vErr.Fields, "name")
}

func TestValidateBoothFields_PhoneFormat(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{"Valid phone", "081234567890", true},
		{"Too short", "08123", false},
		{"Contains letters", "0812345abcde", false},
		{"Contains plus sign", "+6281234567890", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validBoothInput()
			in.Phone = &tt.phone

			err := validateBoothFields(in, true)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "phone must be 10-15 digits")
			}
		})
	}
}

func TestValidateBoothFields_PartialSkipsRequiredCheck(t *testing.T) {
	in := &models.BoothInput{Description: strPtr("updated menu")}

	assert.NoError(t, validateBoothFields(in, false))
}
