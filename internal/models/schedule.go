package models

import (
	"fmt"
	"time"
)

// DayName is an English weekday name as stored in the weekly template.
type DayName string

const (
	Monday    DayName = "Monday"
	Tuesday   DayName = "Tuesday"
	Wednesday DayName = "Wednesday"
	Thursday  DayName = "Thursday"
	Friday    DayName = "Friday"
	Saturday  DayName = "Saturday"
	Sunday    DayName = "Sunday"
)

// WeekDays lists day names in template order, Monday first.
var WeekDays = []DayName{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Valid reports whether the day name is a known weekday.
func (d DayName) Valid() bool {
	for _, day := range WeekDays {
		if day == d {
			return true
		}
	}
	return false
}

// DayNameOf maps a calendar date to its template day name.
func DayNameOf(t time.Time) DayName {
	return DayName(t.Weekday().String())
}

// DateLayout is the ISO date format used for appointment dates.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return t, nil
}

// ValidHour reports whether raw is a zero-padded 24-hour "HH:00" token.
func ValidHour(raw string) bool {
	if len(raw) != 5 || raw[2] != ':' || raw[3] != '0' || raw[4] != '0' {
		return false
	}
	h1, h2 := raw[0], raw[1]
	if h1 < '0' || h1 > '9' || h2 < '0' || h2 > '9' {
		return false
	}
	hour := int(h1-'0')*10 + int(h2-'0')
	return hour < 24
}

// HourToken renders an hour-of-day as a template token.
func HourToken(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// DaySchedule is one weekly-template entry: a day name and its open hours.
// Each day appears at most once per tutor; hours within a day are unique.
type DaySchedule struct {
	Day   DayName  `json:"day"`
	Slots []string `json:"slots"`
}

// WeeklySchedule is a tutor's recurring, dateless pattern of open hours.
type WeeklySchedule []DaySchedule

// HoursFor returns the template hours for the given day, or nil when the day
// has no entry.
func (w WeeklySchedule) HoursFor(day DayName) []string {
	for _, entry := range w {
		if entry.Day == day {
			return entry.Slots
		}
	}
	return nil
}
