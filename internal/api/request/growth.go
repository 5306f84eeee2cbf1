package request

import (
	"fmt"
	"strings"
	"time"
)

// ParseToday resolves the optional ?today= query parameter of the growth endpoints.
//
// An empty parameter yields the calendar day of now in UTC. Otherwise the value must be
// a YYYY-MM-DD date and is returned at midnight UTC. The series built from it runs up to
// the day before, so a caller can reproduce any historical view.
func ParseToday(todayParam string, now time.Time) (time.Time, error) {
	todayParam = strings.TrimSpace(todayParam)
	if todayParam == "" {
		y, m, d := now.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}

	today, err := time.Parse("2006-01-02", todayParam)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid today parameter %q: expected YYYY-MM-DD", todayParam)
	}
	return today, nil
}
