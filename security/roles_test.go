package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleVendor))
	assert.True(t, ValidRole(RoleUser))

	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole("Admin"))
}

func TestRoleAllowed(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		required []string
		want     bool
	}{
		{"Admin in admin-only set", RoleAdmin, []string{RoleAdmin}, true},
		{"User in admin-only set", RoleUser, []string{RoleAdmin}, false},
		{"Vendor in vendor-or-admin set", RoleVendor, []string{RoleVendor, RoleAdmin}, true},
		{"Admin in vendor-or-admin set", RoleAdmin, []string{RoleVendor, RoleAdmin}, true},
		{"User in vendor-or-admin set", RoleUser, []string{RoleVendor, RoleAdmin}, false},
		{"Empty required set allows anyone", RoleUser, nil, true},
		{"Empty role against a required set", "", []string{RoleAdmin}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoleAllowed(tt.role, tt.required...))
		})
	}
}
