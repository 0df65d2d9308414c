package session

import (
	"net/http"
	"time"
)

// FromRequest returns the session id carried by the named cookie, or "".
func FromRequest(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetCookie writes the session cookie. The cookie outlives the idle
// timeout so an evicted session is replaced rather than forgotten.
func SetCookie(w http.ResponseWriter, name, id string, idle time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    id,
		Path:     "/",
		MaxAge:   int((2 * idle).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
