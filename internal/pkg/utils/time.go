package utils

import (
	"strconv"
	"strings"
	"time"

	"mise-service/internal/pkg/constvars"
)

// ParseClock parses a wall-clock time of day. It tolerates "HH.MM" as a
// separator variant since upstream catalogs have been observed with both.
func ParseClock(s string) (hour, minute int, ok bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", ":")
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// ClockMinutes returns the minute-of-day for a wall-clock string, or -1 when malformed.
func ClockMinutes(s string) int {
	h, m, ok := ParseClock(s)
	if !ok {
		return -1
	}
	return h*60 + m
}

// ParseCalendarDate parses a YYYY-MM-DD calendar day at midnight in loc.
func ParseCalendarDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(constvars.CalendarDateLayout, s, loc)
}

// FormatCalendarDate renders t as a YYYY-MM-DD calendar day.
func FormatCalendarDate(t time.Time) string {
	return t.Format(constvars.CalendarDateLayout)
}
