package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TimeCode is a point in a movie's runtime, rendered as zero-padded HH:MM:SS.
type TimeCode struct {
	Hours   int
	Minutes int
	Seconds int
}

func (t TimeCode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}

// ParseTimeCode parses a colon-separated time marker such as "4:33" or
// "1:12:03". Two parts are read as minutes:seconds, three parts as
// hours:minutes:seconds. Markers with minutes or seconds above 59 or hours
// above 99 are rejected.
func ParseTimeCode(raw string) (TimeCode, bool) {
	parts := strings.Split(strings.TrimSpace(raw), ":")

	var tc TimeCode

	switch len(parts) {
	case 2:
		m, ok1 := parseField(parts[0])
		s, ok2 := parseField(parts[1])
		if !ok1 || !ok2 {
			return TimeCode{}, false
		}
		tc = TimeCode{Minutes: m, Seconds: s}
	case 3:
		h, ok1 := parseField(parts[0])
		m, ok2 := parseField(parts[1])
		s, ok3 := parseField(parts[2])
		if !ok1 || !ok2 || !ok3 {
			return TimeCode{}, false
		}
		tc = TimeCode{Hours: h, Minutes: m, Seconds: s}
	default:
		return TimeCode{}, false
	}

	if tc.Hours > 99 || tc.Minutes > 59 || tc.Seconds > 59 {
		return TimeCode{}, false
	}

	return tc, true
}

func parseField(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

var timeMarkerPattern = regexp.MustCompile(`\b\d{1,2}:\d{2}(?::\d{2})?\b`)

// ExtractTimestamps scans text for time-like markers, normalizes each one and
// returns the canonical forms in first-seen order without duplicates. Both
// M:SS and H:MM:SS shapes are accepted; missing hours default to zero.
func ExtractTimestamps(text string) []string {
	seen := make(map[string]bool)
	var out []string

	for _, tok := range timeMarkerPattern.FindAllString(text, -1) {
		tc, ok := ParseTimeCode(tok)
		if !ok {
			continue
		}
		canonical := tc.String()
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
	}

	return out
}

// NormalizeSpace collapses all runs of whitespace into single spaces and
// trims the ends.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
