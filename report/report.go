// Package report computes and renders tracked time summaries
package report

import (
	"time"

	"github.com/turesheim/timekeeper/internal/task"
)

// TotalOnDay returns the total time tracked across all tasks on the day
// containing d. An empty task set yields zero.
func TotalOnDay(tasks []*task.Task, d time.Time, now time.Time) time.Duration {
	var total time.Duration

	for _, t := range tasks {
		total += t.DurationOnDay(d, now)
	}

	return total
}

// TotalOnDayForProject is TotalOnDay restricted to tasks assigned to the
// named project.
func TotalOnDayForProject(
	tasks []*task.Task,
	d time.Time,
	project string,
	now time.Time,
) time.Duration {
	var total time.Duration

	for _, t := range tasks {
		if t.Project != project {
			continue
		}

		total += t.DurationOnDay(d, now)
	}

	return total
}

// TotalWithin returns the total time tracked across all tasks between
// the start of rangeStart's day and the start of rangeEnd's day.
func TotalWithin(
	tasks []*task.Task,
	rangeStart, rangeEnd time.Time,
	now time.Time,
) time.Duration {
	var total time.Duration

	for _, t := range tasks {
		total += t.DurationWithin(rangeStart, rangeEnd, now)
	}

	return total
}
