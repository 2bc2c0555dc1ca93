package modarchive

import (
	"strconv"
	"strings"
	"time"
)

// ScrapeTimeLayout is RFC 3339 with nanoseconds and a numeric offset, so
// that UTC is written as +00:00 rather than Z.
const ScrapeTimeLayout = "2006-01-02T15:04:05.000000000-07:00"

// FormatScrapeTime renders t in UTC using ScrapeTimeLayout.
func FormatScrapeTime(t time.Time) string {
	return t.UTC().Format(ScrapeTimeLayout)
}

// parseCount parses a stats counter. Thousands separators are ignored.
func parseCount(field, s string) (uint32, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseUint(strings.ReplaceAll(s, ",", ""), 10, 32)
	if err != nil {
		return 0, fieldErr(field, s, err)
	}
	return uint32(n), nil
}

// stripLabel removes prefix and suffix when present and trims whitespace.
func stripLabel(s, prefix, suffix string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, prefix)
	s = strings.TrimSuffix(s, suffix)
	return strings.TrimSpace(s)
}
