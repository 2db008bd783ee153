package security

import (
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/hook"
)

// Fixed role vocabulary. Accounts without an explicit role are treated as
// plain users.
const (
	RoleAdmin  = "admin"
	RoleVendor = "vendor"
	RoleUser   = "user"
)

// ValidRole reports whether the value is part of the role vocabulary.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleVendor || role == RoleUser
}

// RoleAllowed reports whether a role may perform an action restricted to the
// given role set. An empty set means the action only requires authentication.
func RoleAllowed(role string, required ...string) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}

// RequireRole is a route middleware that checks the authenticated record's
// role against the required set. It implies authentication.
func RequireRole(required ...string) *hook.Handler[*core.RequestEvent] {
	return &hook.Handler[*core.RequestEvent]{
		Id: "requireRole",
		Func: func(e *core.RequestEvent) error {
			if e.Auth == nil {
				return apis.NewUnauthorizedError("Authentication required", nil)
			}

			role := e.Auth.GetString("role")
			if role == "" {
				role = RoleUser
			}
			if !RoleAllowed(role, required...) {
				return apis.NewForbiddenError("Insufficient role for this action", nil)
			}
			return e.Next()
		},
	}
}
