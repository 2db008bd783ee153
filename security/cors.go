package security

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// CORSMiddleware applies the configured origin allow-list. "*" in the list
// allows every origin.
func CORSMiddleware(allowOrigins []string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		origin := e.Request.Header.Get("Origin")
		if origin != "" && originAllowed(origin, allowOrigins) {
			h := e.Response.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}

		if e.Request.Method == http.MethodOptions {
			return e.NoContent(http.StatusNoContent)
		}

		return e.Next()
	}
}

func originAllowed(origin string, allowOrigins []string) bool {
	for _, allowed := range allowOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
