package helpers

import (
	"net"
	"net/http"
	"net/url"
	"strings"
)

// ClientIP returns the first address of X-Forwarded-For, or the remote address
// of the connection when the header is absent.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// HostOf returns the host (with port, if any) of a base URL such as
// "https://votar.example.org". A bare host is returned unchanged.
func HostOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(baseURL, "/")
	}
	return u.Host
}

// RefererAllowed reports whether the Referer header is empty or points at host.
// Browsers may drop the header, so its absence is accepted.
func RefererAllowed(r *http.Request, host string) bool {
	ref := r.Header.Get("Referer")
	if ref == "" {
		return true
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, host)
}
