package websocket

import (
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// NewCheckOrigin returns a CheckOrigin function for the change feed upgrader.
// Empty origins (same-origin / non-browser clients) are always allowed; "*" in
// allowedOrigins allows every origin. Other origins must match exactly after
// normalization.
func NewCheckOrigin(allowedOrigins []string) func(r *http.Request) bool {
	allowAll := slices.Contains(allowedOrigins, "*")
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if n := normalizeOrigin(o); n != "" {
			allowed[n] = struct{}{}
		}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowAll {
			return true
		}

		if _, ok := allowed[normalizeOrigin(origin)]; ok {
			return true
		}

		slog.Warn("WebSocket origin rejected", "origin", origin, "remote_addr", r.RemoteAddr)
		return false
	}
}

func normalizeOrigin(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Scheme + "://" + u.Host)
}
