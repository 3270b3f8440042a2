// Package dates does inclusive trip-date arithmetic on calendar days.
//
// Every value is normalized to UTC midnight before any arithmetic, so a local offset or a
// daylight-saving change can never move a trip onto a different calendar day.
package dates

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"trekking/internal/domains/booking/model"
)

const (
	Layout = "2006-01-02"
	day    = 24 * time.Hour
)

var (
	ErrInvalidStart    = errors.New("start date is not set or not a valid date")
	ErrInvalidDuration = errors.New("duration must be at least one day")
)

var digits = regexp.MustCompile(`\d+`)

// ParseDurationDays extracts the first integer in a free-text duration label such as "15 Days".
func ParseDurationDays(text string) (int, bool) {
	match := digits.FindString(text)
	if match == "" {
		return 0, false
	}

	days, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}

	return days, true
}

// Normalize returns the calendar day of t, as written in t's own location, at UTC midnight.
func Normalize(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD) at UTC midnight.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(Layout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidStart, value)
	}

	return parsed, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return Normalize(t).Format(Layout)
}

// ComputeEndDate returns start + (durationDays - 1) days: both endpoints are trek days.
func ComputeEndDate(start time.Time, durationDays int) (time.Time, error) {
	if start.IsZero() {
		return time.Time{}, ErrInvalidStart
	}

	if durationDays <= 0 {
		return time.Time{}, ErrInvalidDuration
	}

	return Normalize(start).AddDate(0, 0, durationDays-1), nil
}

// InclusiveDayCount returns the number of calendar days covered by [start, end].
func InclusiveDayCount(start, end time.Time) (int, bool) {
	if start.IsZero() || end.IsZero() {
		return 0, false
	}

	diff := Normalize(end).Sub(Normalize(start))

	return int(diff/day) + 1, true
}

// Resolve derives the trip dates for a start date and a trek duration label.
func Resolve(start time.Time, durationText string) (model.TripDates, error) {
	days, ok := ParseDurationDays(durationText)
	if !ok {
		return model.TripDates{}, fmt.Errorf("%w: %q has no day count", ErrInvalidDuration, durationText)
	}

	end, err := ComputeEndDate(start, days)
	if err != nil {
		return model.TripDates{}, err
	}

	return model.TripDates{Start: Normalize(start), End: end}, nil
}

// CheckDuration compares a trek's stated duration with a date range the catalog published.
// Mismatches are warnings for the traveller, never hard failures.
func CheckDuration(durationText string, start, statedEnd time.Time) []model.Warning {
	days, ok := ParseDurationDays(durationText)
	if !ok {
		return []model.Warning{{
			Code:    model.WarningDurationUnknown,
			Message: fmt.Sprintf("trek duration %q does not state a number of days", durationText),
		}}
	}

	count, ok := InclusiveDayCount(start, statedEnd)
	if !ok || count == days {
		return nil
	}

	return []model.Warning{{
		Code: model.WarningDurationMismatch,
		Message: fmt.Sprintf("trek is listed as %d days but the departure runs %s to %s (%d days)",
			days, FormatDate(start), FormatDate(statedEnd), count),
	}}
}
