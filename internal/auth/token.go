package auth

import (
	"net/http"
	"strings"

	"github.com/akolanti/DocSummarizer/internal/config"
)

// TokenFromRequest reads the session token from a Bearer header, falling back
// to the session cookie.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := r.Cookie(config.SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
