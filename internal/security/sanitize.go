package security

import (
	"fmt"
	"net/url"
)

// ValidateWebhookURL ensures a destination URL is usable before any
// network activity happens. Only http and https schemes are accepted.
func ValidateWebhookURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("webhook URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("webhook URL must use http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("webhook URL is missing a host")
	}

	return nil
}

// RedactURL strips credentials and query parameters from a URL before
// it is written to logs or the delivery history.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""

	return u.String()
}
