// Package activity defines tracked work activities
package activity

import (
	"time"

	"github.com/turesheim/timekeeper/internal/timeutil"
)

// Activity represents a single contiguous span of tracked work time on a
// task. A zero End means the activity is still running.
type Activity struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Summary        string    `json:"summary,omitempty"`
	Labels         []string  `json:"labels,omitempty"`
	ManuallyEdited bool      `json:"manually_edited,omitempty"`
}

// New returns an open activity started at the given time.
func New(start time.Time) *Activity {
	return &Activity{Start: start}
}

// Running reports whether the activity has not been closed yet.
func (a *Activity) Running() bool {
	return a.End.IsZero()
}

// Close ends the activity. The caller is responsible for passing a close
// time that is not before Start.
func (a *Activity) Close(end time.Time) {
	a.End = end
}

// SetDuration closes the activity at Start plus the given duration and
// marks it as manually edited. This is the manual time-entry path and
// bypasses the live clock entirely.
func (a *Activity) SetDuration(d time.Duration) {
	a.End = a.Start.Add(d)
	a.ManuallyEdited = true
}

// Duration returns the elapsed time for the activity. An open activity
// is measured against now.
func (a *Activity) Duration(now time.Time) time.Duration {
	end := a.End
	if end.IsZero() {
		end = now
	}

	return end.Sub(a.Start)
}

// DurationWithin clips the activity to the date range starting at the
// beginning of rangeStart's day and ending at the beginning of
// rangeEnd's day, and returns the elapsed time inside that window.
//
// The two boundary corrections are independent subtractions from the
// unclipped span, so an activity clipped on both ends is still measured
// correctly.
func (a *Activity) DurationWithin(
	rangeStart, rangeEnd time.Time,
	now time.Time,
) time.Duration {
	s := a.Start

	e := a.End
	if e.IsZero() {
		e = now
	}

	lower := timeutil.RoundToStart(rangeStart)
	upper := timeutil.RoundToStart(rangeEnd)

	if s.After(upper) || e.Before(lower) {
		return 0
	}

	d := e.Sub(s)

	if s.Before(lower) {
		d -= lower.Sub(s)
	}

	if e.After(upper) {
		d -= e.Sub(upper)
	}

	if d < 0 {
		return 0
	}

	return d
}

// DurationOnDay returns the elapsed time for the activity on the day
// containing d.
func (a *Activity) DurationOnDay(d time.Time, now time.Time) time.Duration {
	return a.DurationWithin(d, timeutil.NextDay(d), now)
}

// Before orders activities by start time. It is used for display only;
// storage order is creation order.
func (a *Activity) Before(other *Activity) bool {
	return a.Start.Before(other.Start)
}
