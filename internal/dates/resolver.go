// Package dates resolves the loosely formatted date strings found in feeds
// and listing pages into UTC timestamps.
package dates

import (
	"fmt"
	"regexp"
	"time"

	"github.com/araddon/dateparse"
)

// numericUSRe matches the MM.DD.YYYY listing format used by some state
// economic-development sites. Generic parsing of this shape cannot be
// trusted (locale ambiguity), so it is rearranged to ISO order first.
var numericUSRe = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})$`)

// Parse resolves a free-form date string to a UTC timestamp. A zero
// time.Time means the date could not be parsed; Parse never returns an
// error to the caller beyond that sentinel.
func Parse(s string) time.Time {
	if s == "" {
		return time.Time{}
	}

	if m := numericUSRe.FindStringSubmatch(s); m != nil {
		s = fmt.Sprintf("%s-%s-%s", m[3], m[1], m[2])
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// Display renders a timestamp as YYYY.MM.DD in UTC, or "" for the zero
// value. Day-granularity projection for filtering and the board table only;
// internal ordering always uses the full timestamp.
func Display(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006.01.02")
}
