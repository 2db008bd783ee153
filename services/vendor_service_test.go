package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar-system/models"
)

func TestValidateVendorFields(t *testing.T) {
	tests := []struct {
		name          string
		in            *models.VendorInput
		wantInstagram string
		wantErr       string
	}{
		{
			name:          "Handle with at-prefix",
			in:            &models.VendorInput{Instagram: strPtr("@satay.corner")},
			wantInstagram: "satay.corner",
		},
		{
			name:          "Profile URL",
			in:            &models.VendorInput{Instagram: strPtr("https://instagram.com/satay.corner/")},
			wantInstagram: "satay.corner",
		},
		{
			name:    "Invalid instagram",
			in:      &models.VendorInput{Instagram: strPtr("https://example.com/satay")},
			wantErr: "instagram must be a handle or an instagram.com profile URL",
		},
		{
			name:    "Bad phone",
			in:      &models.VendorInput{Phone: strPtr("12345")},
			wantErr: "phone must be 10-15 digits",
		},
		{
			name:    "Bad email",
			in:      &models.VendorInput{Email: strPtr("not-an-email")},
			wantErr: "email is not a valid address",
		},
		{
			name: "Valid combination",
			in: &models.VendorInput{
				Phone: strPtr("081234567890"),
				Email: strPtr("vendor@example.com"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instagram, err := validateVendorFields(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantInstagram, instagram)
		})
	}
}

func TestErrorTaxonomyMessages(t *testing.T) {
	vErr := &ValidationError{Message: "missing required field(s)", Fields: []string{"name", "phone"}}
	assert.Equal(t, "missing required field(s): name; phone", vErr.Error())

	nfErr := &NotFoundError{Entity: "event", ID: "evt123"}
	assert.Equal(t, `event "evt123" not found`, nfErr.Error())

	depErr := &DependentError{
		Entity: "area",
		Report: &models.DeleteReport{
			Dependents: map[string]models.DependentInfo{"events": {Count: 2}},
		},
	}
	assert.Contains(t, depErr.Error(), "area still has 2 dependent record(s)")
	assert.Contains(t, depErr.Error(), "force=true")
}
