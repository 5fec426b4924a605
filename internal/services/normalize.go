package services

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Plans are dated in Japan.
var tzTokyo *time.Location

func init() {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		// JST has no DST, so a fixed zone is exact when tzdata is missing
		tzTokyo = time.FixedZone("JST", 9*60*60)
		return
	}
	tzTokyo = loc
}

// NormName trims surrounding whitespace, including the full-width space
// that Japanese IMEs insert.
func NormName(s string) string {
	return strings.TrimSpace(s)
}

// NormLoginID trims the login id. Case is preserved; ids are compared exactly.
func NormLoginID(s string) string {
	return strings.TrimSpace(s)
}

// ParseDate reads the calendar date of a plan. An RFC 3339 timestamp, as
// browsers sometimes send, is moved to Tokyo time first; any other
// "YYYY-MM-DDT..." value keeps its date part. The result is midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.In(tzTokyo)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	if len(s) > len(dateLayout) && s[len(dateLayout)] == 'T' {
		s = s[:len(dateLayout)]
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// FormatDate renders a stored date. Dates are kept as midnight UTC, so the
// UTC calendar day is the plan's day whatever zone the driver returns.
func FormatDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.UTC().Format(dateLayout)
}

// NormalizePlan drops blank staff members and child names and trims the
// rest. Saved and exported plans both go through it.
func NormalizePlan(in PlanInput) PlanInput {
	in.StaffConfig.Members = compact(in.StaffConfig.Members)
	in.ChildrenNames = compact(in.ChildrenNames)
	return in
}

func compact(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = NormName(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
