package auth

import (
	"net/http"
	"strings"
)

const (
	CustomerCookie = "access_token"
	AdminCookie    = "manage_token"

	ServiceAuthHeader = "X-Service-Auth"
)

// ExtractToken returns the named cookie when set, otherwise the Bearer token.
func ExtractToken(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return bearer(r)
}

// ExtractServiceKey reads the shared internal key from X-Service-Auth, falling
// back to the Bearer token.
func ExtractServiceKey(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(ServiceAuthHeader)); v != "" {
		return v
	}
	return bearer(r)
}

func bearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// SetTokenCookie writes an HttpOnly token cookie valid for maxAge seconds.
func SetTokenCookie(w http.ResponseWriter, name, value string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
