package models

// VendorInput is the write payload for vendor profiles. Instagram is stored
// as the bare handle regardless of how it was submitted.
type VendorInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
	Instagram   *string `json:"instagram"`
	Location    *string `json:"location"`
	Email       *string `json:"email"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (in *VendorInput) IsEmpty() bool {
	return in.Name == nil && in.Description == nil && in.Phone == nil &&
		in.Instagram == nil && in.Location == nil && in.Email == nil
}
