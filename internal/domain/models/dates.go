package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CalDateLayout is the calendar-date layout used for production and weight dates.
const CalDateLayout = "2006-01-02"

// ParseCalDate parses a YYYY-MM-DD string into a local-midnight time.Time by
// splitting its components. Going through time.Parse would yield a UTC instant,
// which shifts the calendar day for zones behind UTC.
func ParseCalDate(value string) (time.Time, error) {
	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid calendar date %q", value)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q: %w", value, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q: %w", value, err)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q: %w", value, err)
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid calendar date %q", value)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// FormatCalDate renders t as a YYYY-MM-DD calendar date.
func FormatCalDate(t time.Time) string {
	return t.Format(CalDateLayout)
}
