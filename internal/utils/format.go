package utils

import (
	"strings"
	"time"
)

// Layouts for entity timestamps: DateOnly in table columns, DateTime in
// detail panes.
const (
	DateOnly = "2006-01-02"
	DateTime = "2006-01-02 15:04"
)

// ISODuration renders an ISO 8601 duration like "PT12H" as "12h".
// Only the time components session durations use (hours, minutes, seconds)
// are handled; anything else comes back unchanged.
func ISODuration(s string) string {
	rest, ok := strings.CutPrefix(s, "PT")
	if !ok || rest == "" {
		return s
	}
	var parts []string
	num := ""
	for _, r := range rest {
		switch {
		case r >= '0' && r <= '9':
			num += string(r)
		case r == 'H' || r == 'M' || r == 'S':
			if num == "" {
				return s
			}
			parts = append(parts, num+strings.ToLower(string(r)))
			num = ""
		default:
			return s
		}
	}
	if num != "" || len(parts) == 0 {
		return s
	}
	return strings.Join(parts, " ")
}

// TimeOrDash formats a time value using the given layout, or returns "—" if zero.
func TimeOrDash(t time.Time, layout string) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format(layout)
}
