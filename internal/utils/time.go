package utils

import (
	"time"

	"campbook/internal/domain"
)

const layoutDateTime = "2006-01-02 15:04:05"

// Now is swapped in tests.
var Now = time.Now

// Today returns the current local date as YYYY-MM-DD.
func Today() string {
	return FormatDate(Now())
}

// MonthStart returns the first day of date's month as YYYY-MM-DD.
func MonthStart(date string) (string, error) {
	t, err := domain.ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)), nil
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(domain.DateFormat)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}
