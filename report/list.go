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

const noTrackedTasksMsg = "No tracked tasks found"

// ListTasks prints a table of all tracked tasks with their total logged
// time.
func ListTasks(w io.Writer, tasks []*task.Task, now time.Time) {
	if len(tasks) == 0 {
		pterm.Info.Println(noTrackedTasksMsg)
		return
	}

	sorted := make([]*task.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TaskID != sorted[j].TaskID {
			return natural.Less(sorted[i].TaskID, sorted[j].TaskID)
		}

		return sorted[i].RepositoryURL < sorted[j].RepositoryURL
	})

	tableBody := make([][]string, len(sorted))

	for i, t := range sorted {
		statusText := ""
		if t.Running() {
			statusText = ui.Green("running")
		}

		var total time.Duration
		for _, a := range t.Activities {
			total += a.Duration(now)
		}

		//nolint:gomnd // limit to first 2 units
		totalText := durafmt.Parse(total).
			LimitToUnit("hours").
			LimitFirstN(2).
			String()

		tableBody[i] = []string{
			fmt.Sprintf("%d", i+1),
			t.TaskID,
			t.RepositoryURL,
			t.Project,
			fmt.Sprintf("%d", len(t.Activities)),
			totalText,
			statusText,
		}
	}

	tableBody = append([][]string{
		{"#", "TASK", "REPOSITORY", "PROJECT", "ACTIVITIES", "TOTAL", "STATUS"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}
