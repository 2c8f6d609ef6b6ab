package server

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// parseOptionalDate parses a calendar-date string; empty means absent.
func parseOptionalDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
