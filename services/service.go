package services

import "time"

// Clock supplies the current time to services that default to "now".
type Clock func() time.Time

// SystemClock reads the wall clock.
var SystemClock Clock = time.Now

// Notifier is told about committed writes so listeners can refresh.
type Notifier interface {
	Notify(entity, action string, id int64)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string, int64) {}

const dateLayout = "2006-01-02"

// Transaction dates are calendar days stored at midnight UTC. Period
// bounds are built the same way so a day never shifts month with the
// server's zone.

// calendarDay returns the wall-clock date of t as midnight UTC.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// currentYear fills in the year of a month-only period filter.
func currentYear(month, year int, now time.Time) int {
	if month != 0 && year == 0 {
		return now.Year()
	}
	return year
}

func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, invalid(field, "is required")
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, invalid(field, "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// checkPeriod validates optional month/year query values.
func checkPeriod(month, year int) error {
	if month < 0 || month > 12 {
		return invalid("month", "must be between 1 and 12")
	}
	if year != 0 && (year < 1900 || year > 9999) {
		return invalid("year", "is out of range")
	}
	return nil
}
