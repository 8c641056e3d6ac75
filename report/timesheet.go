package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/hako/durafmt"
	"github.com/maruel/natural"
	"github.com/pterm/pterm"

	"github.com/turesheim/timekeeper/internal/task"
	"github.com/turesheim/timekeeper/internal/timeutil"
	"github.com/turesheim/timekeeper/internal/ui"
)

const noTasksMsg = "No tracked time found for the specified week"

// Timesheet is a 7-day grid of tracked time, one row per task. Every
// figure in it comes from the same aggregation functions used by the
// exporters, so all presentation paths agree on the totals.
type Timesheet struct {
	WeekStart time.Time
	Tasks     []*task.Task
	Now       time.Time
}

// NewTimesheet builds a timesheet for the week beginning at weekStart.
// Tasks without tracked time in that week are left out, and a non-empty
// project restricts the sheet to that project's tasks. Rows are in
// natural task-identifier order.
func NewTimesheet(
	tasks []*task.Task,
	weekStart time.Time,
	project string,
	now time.Time,
) *Timesheet {
	start := timeutil.RoundToStart(weekStart)
	end := start.AddDate(0, 0, timeutil.DaysInAWeek)

	var included []*task.Task

	for _, t := range tasks {
		if project != "" && t.Project != project {
			continue
		}

		if t.DurationWithin(start, end, now) == 0 {
			continue
		}

		included = append(included, t)
	}

	sort.SliceStable(included, func(i, j int) bool {
		if included[i].TaskID != included[j].TaskID {
			return natural.Less(included[i].TaskID, included[j].TaskID)
		}

		return included[i].RepositoryURL < included[j].RepositoryURL
	})

	return &Timesheet{
		WeekStart: start,
		Tasks:     included,
		Now:       now,
	}
}

// Days returns the seven days covered by the sheet.
func (ts *Timesheet) Days() []time.Time {
	days := make([]time.Time, 0, timeutil.DaysInAWeek)

	for i := 0; i < timeutil.DaysInAWeek; i++ {
		days = append(days, ts.WeekStart.AddDate(0, 0, i))
	}

	return days
}

// Total returns the tracked time for the whole week.
func (ts *Timesheet) Total() time.Duration {
	return TotalWithin(
		ts.Tasks,
		ts.WeekStart,
		ts.WeekStart.AddDate(0, 0, timeutil.DaysInAWeek),
		ts.Now,
	)
}

// formatCell expresses a duration as hours and minutes, or an empty
// string for zero so untracked days stay blank in the grid.
func formatCell(d time.Duration) string {
	if d == 0 {
		return ""
	}

	mins := int(d.Minutes())

	return fmt.Sprintf("%d:%02d", mins/60, mins%60)
}

// Rows returns the grid as printable rows: a header, one row per task,
// and a totals row.
func (ts *Timesheet) Rows() [][]string {
	days := ts.Days()

	header := []string{"TASK", "PROJECT"}
	for _, d := range days {
		header = append(header, d.Format("Mon 02"))
	}

	header = append(header, "TOTAL")

	rows := [][]string{header}

	for _, t := range ts.Tasks {
		row := []string{t.TaskID, t.Project}

		var weekTotal time.Duration

		for _, d := range days {
			dur := t.DurationOnDay(d, ts.Now)
			weekTotal += dur

			row = append(row, formatCell(dur))
		}

		row = append(row, formatCell(weekTotal))
		rows = append(rows, row)
	}

	totals := []string{"", ""}
	for _, d := range days {
		totals = append(totals, formatCell(TotalOnDay(ts.Tasks, d, ts.Now)))
	}

	totals = append(totals, formatCell(ts.Total()))
	rows = append(rows, totals)

	return rows
}

// Render prints the timesheet table and a summary line.
func (ts *Timesheet) Render(w io.Writer) {
	if len(ts.Tasks) == 0 {
		pterm.Info.Println(noTasksMsg)
		return
	}

	weekEnd := ts.WeekStart.AddDate(0, 0, timeutil.DaysInAWeek-1)

	fmt.Fprintf(
		w,
		"%s\n",
		ui.Blue(fmt.Sprintf(
			"Week of %s - %s",
			ts.WeekStart.Format("January 02, 2006"),
			weekEnd.Format("January 02, 2006"),
		)),
	)

	ui.PrintTable(ts.Rows(), w)

	//nolint:gomnd // limit to first 2 units
	total := durafmt.Parse(ts.Total()).LimitToUnit("hours").LimitFirstN(2)

	fmt.Fprintf(w, "Time logged: %s\n", ui.Green(total))
}
