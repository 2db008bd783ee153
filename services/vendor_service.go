package services

import (
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"bazaar-system/models"
	"bazaar-system/security"
	"bazaar-system/validators"
)

// VendorService enforces the vendor profile rules: one profile per user,
// vendor-or-admin role, and the phone/instagram/email primitives.
type VendorService struct {
	app core.App
}

func NewVendorService(app core.App) *VendorService {
	return &VendorService{app: app}
}

// ValidateRegister checks a new vendor profile for the given user. Returns
// the normalized instagram handle for storage when one was supplied.
func (s *VendorService) ValidateRegister(userID string, in *models.VendorInput) (instagram string, err error) {
	user, err := s.app.FindRecordById("users", userID)
	if err != nil {
		return "", &NotFoundError{Entity: "user", ID: userID}
	}

	role := user.GetString("role")
	if role == "" {
		role = security.RoleUser
	}
	if !security.RoleAllowed(role, security.RoleVendor, security.RoleAdmin) {
		return "", &ForbiddenError{Message: "only vendor or admin accounts can register a vendor profile"}
	}

	existing, err := s.app.FindFirstRecordByFilter(
		"vendors",
		"user_id = {:user}",
		dbx.Params{"user": userID},
	)
	if err == nil && existing != nil {
		return "", &ConflictError{Message: "user already has a vendor profile"}
	}

	var missing []string
	requireString(&missing, "name", in.Name)
	requireString(&missing, "phone", in.Phone)
	if len(missing) > 0 {
		return "", &ValidationError{Message: "missing required field(s)", Fields: missing}
	}

	return validateVendorFields(in)
}

// ValidateUpdate applies the field-level rules to a partial vendor patch.
func (s *VendorService) ValidateUpdate(in *models.VendorInput) (instagram string, err error) {
	if in.IsEmpty() {
		return "", newValidationError("no fields supplied for update")
	}
	if in.Name != nil && *in.Name == "" {
		return "", newValidationError("name must not be empty")
	}
	return validateVendorFields(in)
}

func validateVendorFields(in *models.VendorInput) (string, error) {
	if in.Phone != nil && !validators.ValidatePhone(*in.Phone) {
		return "", newValidationError("phone must be 10-15 digits")
	}
	if in.Email != nil && *in.Email != "" && !validators.ValidateEmail(*in.Email) {
		return "", newValidationError("email is not a valid address")
	}

	if in.Instagram != nil && *in.Instagram != "" {
		handle, ok := validators.NormalizeInstagram(*in.Instagram)
		if !ok {
			return "", newValidationError("instagram must be a handle or an instagram.com profile URL")
		}
		return handle, nil
	}
	return "", nil
}
