package duration

import (
	"strconv"
	"strings"
)

// HMS is the structured hours/minutes/seconds form some metadata feeds use.
// Missing fields unmarshal to zero.
type HMS struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// FromHMS converts a structured duration to total seconds.
// Negative components are treated as malformed and yield 0.
func FromHMS(d HMS) int {
	if d.Hours < 0 || d.Minutes < 0 || d.Seconds < 0 {
		return 0
	}
	return d.Hours*3600 + d.Minutes*60 + d.Seconds
}

// Parse converts a media-duration string into integer seconds.
// Accepted forms:
//   - plain integer seconds: "245"
//   - colon-separated: "4:05", "1:02:33"
//   - ISO-8601 as YouTube metadata reports it: "PT4M5S", "PT1H2M33S"
//
// Malformed input yields 0 — upstream metadata feeds omit or mangle
// fields and the player must keep working.
func Parse(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if strings.HasPrefix(s, "PT") || strings.HasPrefix(s, "P") {
		return parseISO8601(s)
	}

	if strings.Contains(s, ":") {
		return parseColonSeparated(s)
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseColonSeparated handles "MM:SS" and "H:MM:SS".
func parseColonSeparated(s string) int {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}

	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total
}

// parseISO8601 handles the "PT#H#M#S" subset YouTube uses. Date
// components (years, months, days) are not produced by video metadata
// and are rejected as malformed.
func parseISO8601(s string) int {
	rest, ok := strings.CutPrefix(s, "PT")
	if !ok {
		return 0
	}
	if rest == "" {
		return 0
	}

	total := 0
	num := ""
	for _, r := range rest {
		switch {
		case r >= '0' && r <= '9':
			num += string(r)
		case r == 'H' || r == 'M' || r == 'S':
			if num == "" {
				return 0
			}
			n, err := strconv.Atoi(num)
			if err != nil {
				return 0
			}
			switch r {
			case 'H':
				total += n * 3600
			case 'M':
				total += n * 60
			case 'S':
				total += n
			}
			num = ""
		default:
			return 0
		}
	}
	if num != "" {
		// trailing digits without a unit designator
		return 0
	}
	return total
}
