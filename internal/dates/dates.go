// Package dates holds the date-string helpers shared across pages.
//
// The backend exchanges dates as ISO strings (YYYY-MM-DD); sale slips pasted
// by the owner carry DDMMYYYY. Conversions between the two are fixed-width
// slicing transforms with no calendar validation, matching what the backend
// accepts on its side.
package dates

import (
	"regexp"
	"strings"
	"time"
)

const isoLayout = "2006-01-02"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Today returns the current date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(isoLayout)
}

// CurrentMonth returns the current month as YYYY-MM.
func CurrentMonth() string {
	return time.Now().Format("2006-01")
}

// DaysAgo returns the date n days before today as YYYY-MM-DD.
func DaysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format(isoLayout)
}

// FromDDMMYYYY rewrites an 8-character DDMMYYYY string to YYYY-MM-DD.
// Any other length is passed through unchanged.
func FromDDMMYYYY(s string) string {
	if len(s) != 8 {
		return s
	}
	return s[4:8] + "-" + s[2:4] + "-" + s[0:2]
}

// ToDDMMYYYY rewrites a 10-character YYYY-MM-DD string to DDMMYYYY.
// Any other length is passed through unchanged.
func ToDDMMYYYY(s string) string {
	if len(s) != 10 {
		return s
	}
	parts := strings.SplitN(s, "-", 3)
	if len(parts) != 3 {
		return s
	}
	return parts[2] + parts[1] + parts[0]
}

// ToSlashDDMMYYYY rewrites YYYY-MM-DD to DD/MM/YYYY, the format the
// sales-expense endpoint expects. Other shapes pass through unchanged.
func ToSlashDDMMYYYY(s string) string {
	parts := strings.SplitN(s, "-", 3)
	if len(parts) != 3 {
		return s
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// IsValidISO reports whether s has the YYYY-MM-DD shape. It checks only the
// digit pattern, not calendar correctness.
func IsValidISO(s string) bool {
	return isoDatePattern.MatchString(s)
}

// Display normalizes a date string for table rendering: ISO strings are
// returned as-is, 8-digit DDMMYYYY strings are converted, anything else is
// passed through.
func Display(s string) string {
	if s == "" {
		return ""
	}
	if IsValidISO(s) {
		return s
	}
	if len(s) == 8 && allDigits(s) {
		return FromDDMMYYYY(s)
	}
	return s
}

// MondayOfWeek returns the Monday of the week containing the given ISO date.
// Unparseable input is returned unchanged.
func MondayOfWeek(s string) string {
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return s
	}
	diff := int(time.Monday - t.Weekday())
	if t.Weekday() == time.Sunday {
		diff = -6
	}
	return t.AddDate(0, 0, diff).Format(isoLayout)
}

// ShortDisplay renders an ISO date as DD/MM for chart axis labels.
func ShortDisplay(s string) string {
	parts := strings.SplitN(s, "-", 3)
	if len(parts) != 3 {
		return s
	}
	return parts[2] + "/" + parts[1]
}

// ParseISO parses an ISO date into a time.Time, returning the zero time on
// failure. Sorting treats unparseable dates as earliest.
func ParseISO(s string) time.Time {
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
