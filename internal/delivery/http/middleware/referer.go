package middleware

import (
	"log/slog"
	"net/http"

	h "voterlink/internal/delivery/http/helpers"
)

// RequireReferer returns a wrapper that answers 403 with message when the
// Referer header names a host other than host. An empty Referer passes.
func RequireReferer(host, message string, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !h.RefererAllowed(r, host) {
				logger.WarnContext(r.Context(), "referer rejected",
					"path", r.URL.Path, "referer", r.Header.Get("Referer"), "ip", h.ClientIP(r))
				h.WriteText(w, http.StatusForbidden, message)
				return
			}
			next(w, r)
		}
	}
}
