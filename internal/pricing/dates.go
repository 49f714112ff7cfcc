// Package pricing implements the nightly rate calculation core: date-range
// enumeration, availability/override classification and price aggregation.
// The package is pure — its only I/O happens through the SubjectResolver and
// OverrideStore interfaces supplied by the caller — so it is safe to invoke
// concurrently for different requests without coordination.
package pricing

import (
	"regexp"
	"time"
)

// DateLayout is the wire format for calendar dates throughout the service.
// Dates are plain calendar days; no time zone is attached because a night
// belongs to the property's local calendar, not to any instant.
const DateLayout = "2006-01-02"

var dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDate reports whether s is a YYYY-MM-DD string naming a real
// calendar date. Shape and calendar validity are checked separately so
// that "2024-02-30" is rejected even though it matches the pattern.
func IsValidDate(s string) bool {
	if !dateShape.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// EnumerateNights returns every date from start up to but excluding end.
// The end date is the checkout date and is never itself a paid night, so
// EnumerateNights(d, d) is empty. Callers must validate that start <= end
// first; the result for an inverted range is unspecified.
func EnumerateNights(start, end string) []string {
	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil
	}
	to, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil
	}
	var nights []string
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d.Format(DateLayout))
	}
	return nights
}

// DaysBetween returns the absolute difference between two dates in calendar
// days. It is used for the range-span cap only; night enumeration has its
// own exclusive-end rule and never goes through this function.
func DaysBetween(start, end string) int {
	a, err := time.Parse(DateLayout, start)
	if err != nil {
		return 0
	}
	b, err := time.Parse(DateLayout, end)
	if err != nil {
		return 0
	}
	days := int(b.Sub(a).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}
