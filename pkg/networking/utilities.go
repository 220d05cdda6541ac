package networking

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// HttpsScheme is the HTTPS URL scheme
const HttpsScheme = "https"

// IsLocalhost reports whether the host (optionally host:port) refers to the
// local machine. Plain HTTP is tolerated for localhost to support development
// against a local authorization server.
func IsLocalhost(host string) bool {
	hostname := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		hostname = h
	}

	hostname = strings.ToLower(hostname)
	if hostname == "localhost" {
		return true
	}

	ip := net.ParseIP(hostname)
	return ip != nil && ip.IsLoopback()
}

// ValidateEndpointURL checks that an endpoint URL is well formed and uses
// HTTPS. Localhost endpoints may use plain HTTP.
func ValidateEndpointURL(endpoint string) error {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("URL must be absolute: %s", endpoint)
	}

	if parsed.Scheme != HttpsScheme && !IsLocalhost(parsed.Host) {
		return fmt.Errorf("URL must use HTTPS: %s", endpoint)
	}

	return nil
}
