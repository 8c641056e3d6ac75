// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"time"
)

// DaysInAWeek is the number of columns in a timesheet.
const DaysInAWeek = 7

type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	Period7Days     Period = "7days"
	Period14Days    Period = "14days"
	Period30Days    Period = "30days"
	Period90Days    Period = "90days"
	Period365Days   Period = "365days"
)

// Range maps a period to the day offset of its start relative to today.
var Range = map[Period]int{
	PeriodToday:     0,
	PeriodYesterday: -1,
	Period7Days:     -6,
	Period14Days:    -13,
	Period30Days:    -29,
	Period90Days:    -89,
	Period365Days:   -364,
}

var PeriodCollection = []Period{
	PeriodToday,
	PeriodYesterday,
	Period7Days,
	Period14Days,
	Period30Days,
	Period90Days,
	Period365Days,
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// WeekOf returns the start of the week containing t, where weeks begin
// on weekStart.
func WeekOf(t time.Time, weekStart time.Weekday) time.Time {
	day := RoundToStart(t)

	offset := int(day.Weekday()) - int(weekStart)
	if offset < 0 {
		offset += DaysInAWeek
	}

	return day.AddDate(0, 0, -offset)
}

// NextDay returns the start of the day after t.
func NextDay(t time.Time) time.Time {
	return RoundToStart(t).AddDate(0, 0, 1)
}
