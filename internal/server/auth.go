package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Authorize checks a watcher's token against the configured one. An empty
// configured token lets everyone watch.
func Authorize(r *http.Request, token string) bool {
	if token == "" {
		return true
	}

	given := r.URL.Query().Get("token")
	if given == "" {
		given = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(token)) == 1
}
