package domain

import (
	"fmt"
	"net/url"
)

// Slot is one page of the rotation. Order in the show defines rotation order.
type Slot struct {
	Index int    `json:"index"`
	URL   string `json:"url"`
}

// NewSlots validates urls and returns one Slot per URL, preserving input order.
func NewSlots(urls []string) ([]Slot, error) {
	if len(urls) == 0 {
		return nil, &ConfigurationError{Field: "urls", Reason: "at least one URL is required"}
	}
	slots := make([]Slot, 0, len(urls))
	for i, raw := range urls {
		if err := ValidateURL(raw); err != nil {
			return nil, &ConfigurationError{Field: fmt.Sprintf("urls[%d]", i), Reason: err.Error()}
		}
		slots = append(slots, Slot{Index: i, URL: raw})
	}
	return slots, nil
}

// ValidateURL accepts absolute URLs with a host and bare relative references.
// Empty strings and unparsable references are rejected.
func ValidateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("empty URL")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("malformed URL %q: %v", raw, err)
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "file" {
		return fmt.Errorf("unsupported scheme %q in %q", u.Scheme, raw)
	}
	if (u.Scheme == "http" || u.Scheme == "https") && u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
