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
	"github.com/turesheim/timekeeper/internal/ui"
)

// RangeSummary prints per-task totals for an arbitrary date range,
// using the same aggregation as the timesheet and the exporters.
func RangeSummary(
	w io.Writer,
	tasks []*task.Task,
	rangeStart, rangeEnd time.Time,
	project string,
	now time.Time,
) {
	type row struct {
		t     *task.Task
		total time.Duration
	}

	var rows []row

	for _, t := range tasks {
		if project != "" && t.Project != project {
			continue
		}

		total := t.DurationWithin(rangeStart, rangeEnd, now)
		if total == 0 {
			continue
		}

		rows = append(rows, row{t, total})
	}

	if len(rows) == 0 {
		pterm.Info.Println(noTasksMsg)
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return natural.Less(rows[i].t.TaskID, rows[j].t.TaskID)
	})

	tableBody := [][]string{{"TASK", "PROJECT", "TOTAL"}}

	for _, r := range rows {
		tableBody = append(tableBody, []string{
			r.t.TaskID,
			r.t.Project,
			formatCell(r.total),
		})
	}

	fmt.Fprintf(
		w,
		"%s\n",
		ui.Blue(fmt.Sprintf(
			"Reporting period: %s - %s",
			rangeStart.Format("January 02, 2006"),
			rangeEnd.Format("January 02, 2006"),
		)),
	)

	ui.PrintTable(tableBody, w)

	included := make([]*task.Task, 0, len(rows))
	for _, r := range rows {
		included = append(included, r.t)
	}

	total := TotalWithin(included, rangeStart, rangeEnd, now)

	//nolint:gomnd // limit to first 2 units
	fmt.Fprintf(
		w,
		"Time logged: %s\n",
		ui.Green(durafmt.Parse(total).LimitToUnit("hours").LimitFirstN(2)),
	)
}
