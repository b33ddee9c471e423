package analytics

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/pzsluna26/Dashboard/internal/models"
)

// defaultWindowDays is the fallback window length when no bounds are supplied.
const defaultWindowDays = 14

// ErrNoDailyData is returned by ResolveWindow when no bounds are given and the
// dataset carries no daily entries to derive a default window from. It marks a
// valid empty state, not a failure.
var ErrNoDailyData = errors.New("dataset has no daily entries")

var weekKeyPattern = regexp.MustCompile(`^(\d{4})-W(\d{1,2})$`)

// Window is an inclusive start/end pair of local calendar dates.
type Window struct {
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

// ParseDate parses a YYYY-MM-DD string into a local calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a zero-padded YYYY-MM-DD string from the date's own
// year/month/day components. Never derived from a UTC instant: that shifts
// the day near midnight in non-UTC zones.
func FormatDate(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// NewWindow builds a window from explicit YYYY-MM-DD bounds, validating
// start <= end. Bounds outside the dataset's coverage are permitted; they
// yield empty results downstream, not errors.
func NewWindow(start, end string) (Window, error) {
	s, err := ParseDate(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return Window{}, err
	}
	if e.Before(s) {
		return Window{}, fmt.Errorf("window start %s is after end %s", start, end)
	}
	return Window{Start: s, End: e}, nil
}

// ResolveWindow resolves the effective window. Explicit bounds are used
// verbatim; when absent the window covers the most recent 14 days present in
// the dataset's daily index (or fewer, if the dataset has fewer days).
func ResolveWindow(start, end string, ds models.RawDataset) (Window, error) {
	if start != "" && end != "" {
		return NewWindow(start, end)
	}
	keys := ds.DailyIndex()
	if len(keys) == 0 {
		return Window{}, ErrNoDailyData
	}
	first := keys[0]
	if len(keys) > defaultWindowDays {
		first = keys[len(keys)-defaultWindowDays]
	}
	return NewWindow(first, keys[len(keys)-1])
}

// Days returns the inclusive day count of the window.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// Previous derives the window of identical day count immediately preceding
// this one: it ends one day before Start, with no gap and no overlap.
func (w Window) Previous() Window {
	days := w.Days()
	prevEnd := w.Start.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -(days - 1))
	return Window{Start: prevStart, End: prevEnd}
}

// StartKey returns the start bound as a YYYY-MM-DD key.
func (w Window) StartKey() string { return FormatDate(w.Start) }

// EndKey returns the end bound as a YYYY-MM-DD key.
func (w Window) EndKey() string { return FormatDate(w.End) }

// Contains reports whether a daily period key falls inside the window.
// Daily keys sort lexicographically in chronological order, so this is a
// plain string comparison.
func (w Window) Contains(key string) bool {
	return key >= w.StartKey() && key <= w.EndKey()
}

// DateKeys returns every day of the window as ordered YYYY-MM-DD keys.
func (w Window) DateKeys() []string {
	keys := make([]string, 0, w.Days())
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		keys = append(keys, FormatDate(d))
	}
	return keys
}

// MarshalJSON renders the window as its date keys.
func (w Window) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"start":%q,"end":%q}`, w.StartKey(), w.EndKey())), nil
}

// weekStart converts an ISO week key (YYYY-Www) to the Monday of that week.
// Week keys do not sort lexicographically ("2025-W9" > "2025-W10"), so all
// week ordering goes through this conversion.
func weekStart(key string) (time.Time, bool) {
	m := weekKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])

	// January 4th is always in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.Local)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := jan4.AddDate(0, 0, -(weekday-1)+(week-1)*7)
	return monday, true
}
