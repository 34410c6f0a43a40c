package service

import (
	"time"
)

const dateLayout = "2006-01-02"

// parseDate accepts "YYYY-MM-DD" or RFC 3339 and normalizes the result
// to midnight UTC so date rules compare whole days, not clock times.
func parseDate(field, value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return midnight(t), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return midnight(t), nil
	}
	return time.Time{}, invalid(field, "invalid date, expected YYYY-MM-DD")
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func formatDate(t time.Time) string { return t.UTC().Format(dateLayout) }
