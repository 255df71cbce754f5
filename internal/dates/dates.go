// Package dates normalizes the publication date strings found in the
// wild (ISO-8601, RFC-2822 and assorted free-form spellings) into a
// comparable instant and a short human-readable label.
package dates

import (
	"strings"
	"time"
)

// Sentinels returned by FormatDate for missing or unparseable input.
const (
	UnknownDate = "Unknown date"
	InvalidDate = "Invalid date"
)

// isoLayouts are tried only when the input looks like ISO-8601
// (contains 'T' or 'Z').
var isoLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04",
}

// looseLayouts approximate generic free-form date parsing.
var looseLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"Mon Jan 2 2006 15:04:05",
	"Mon Jan 2 2006",
}

// rfc2822Layouts cover the RSS-style "EEE, dd MMM yyyy HH:mm:ss ZZZ"
// family, with and without the weekday and with named or numeric zones.
var rfc2822Layouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"02 Jan 2006 15:04:05 -0700",
	"02 Jan 2006 15:04:05 MST",
}

// Parse attempts to parse a date string of unknown format.
//
// The attempt order is fixed: strict ISO-8601 (only when the string
// contains 'T' or 'Z'), then free-form layouts, then RFC-2822. The
// first success wins.
func Parse(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if strings.ContainsAny(s, "TZ") {
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	for _, layout := range looseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range rfc2822Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a date string for display. Missing input yields
// UnknownDate, unparseable input InvalidDate; anything else is
// formatted relative to the current time.
func FormatDate(s string) string {
	if s == "" {
		return UnknownDate
	}
	t, ok := Parse(s)
	if !ok {
		return InvalidDate
	}
	return formatRelative(t, time.Now())
}

// formatRelative picks the label based on whole-day distance between
// now and t, measured in milliseconds. Future dates land in the
// weekday bucket, matching the floor-division behavior the rest of the
// system was built around.
func formatRelative(t, now time.Time) string {
	dayDiff := floorDiv(now.UnixMilli()-t.UnixMilli(), 24*60*60*1000)
	switch {
	case dayDiff == 0:
		return t.Format("Today at 3:04 PM")
	case dayDiff == 1:
		return t.Format("Yesterday at 3:04 PM")
	case dayDiff < 7:
		return t.Format("Monday at 3:04 PM")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
