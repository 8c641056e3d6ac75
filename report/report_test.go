package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/turesheim/timekeeper/internal/task"
	"github.com/turesheim/timekeeper/internal/testutil"
)

var (
	clock  = time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)
	monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

func testTasks() []*task.Task {
	infra := task.New("https://example.com/tracker", "TK-2")
	infra.Project = "infra"
	infra.StartActivity(monday.Add(9 * time.Hour))
	infra.EndActivity(monday.Add(11*time.Hour + 30*time.Minute))
	infra.StartActivity(monday.AddDate(0, 0, 1).Add(10 * time.Hour))
	infra.EndActivity(monday.AddDate(0, 0, 1).Add(10*time.Hour + 45*time.Minute))

	web := task.New("https://example.com/tracker", "TK-10")
	web.Project = "web"
	web.StartActivity(monday.Add(13 * time.Hour))
	web.EndActivity(monday.Add(14 * time.Hour))

	return []*task.Task{web, infra}
}

func TestTotalOnDay(t *testing.T) {
	tasks := testTasks()

	if got := TotalOnDay(tasks, monday, clock); got != 3*time.Hour+30*time.Minute {
		t.Errorf("expected total to be 3h30m, but got: %v", got)
	}

	if got := TotalOnDay(nil, monday, clock); got != 0 {
		t.Errorf("expected empty task set to total zero, but got: %v", got)
	}
}

// TestTotalAdditivity verifies that summing over a partition of the
// task set equals summing over the whole set.
func TestTotalAdditivity(t *testing.T) {
	tasks := testTasks()

	whole := TotalOnDay(tasks, monday, clock)
	parts := TotalOnDay(tasks[:1], monday, clock) +
		TotalOnDay(tasks[1:], monday, clock)

	if whole != parts {
		t.Errorf(
			"expected partitioned sums %v to equal whole sum %v",
			parts,
			whole,
		)
	}
}

func TestTotalOnDayForProject(t *testing.T) {
	tasks := testTasks()

	if got := TotalOnDayForProject(tasks, monday, "web", clock); got != time.Hour {
		t.Errorf("expected web total to be 1h, but got: %v", got)
	}

	if got := TotalOnDayForProject(tasks, monday, "unknown", clock); got != 0 {
		t.Errorf("expected unknown project total to be zero, but got: %v", got)
	}
}

func TestTimesheetRows(t *testing.T) {
	sheet := NewTimesheet(testTasks(), monday, "", clock)

	expected := [][]string{
		{
			"TASK", "PROJECT",
			"Mon 01", "Tue 02", "Wed 03", "Thu 04", "Fri 05", "Sat 06",
			"Sun 07",
			"TOTAL",
		},
		{"TK-2", "infra", "2:30", "0:45", "", "", "", "", "", "3:15"},
		{"TK-10", "web", "1:00", "", "", "", "", "", "", "1:00"},
		{"", "", "3:30", "0:45", "", "", "", "", "", "4:15"},
	}

	if diff := cmp.Diff(expected, sheet.Rows()); diff != "" {
		t.Errorf("timesheet rows mismatch (-want +got):\n%s", diff)
	}
}

func TestTimesheetProjectFilter(t *testing.T) {
	sheet := NewTimesheet(testTasks(), monday, "infra", clock)

	if len(sheet.Tasks) != 1 {
		t.Fatalf(
			"expected 1 task on the filtered sheet, but got: %d",
			len(sheet.Tasks),
		)
	}

	if sheet.Tasks[0].TaskID != "TK-2" {
		t.Errorf(
			"expected the infra task, but got: %s",
			sheet.Tasks[0].TaskID,
		)
	}
}

func TestTimesheetExcludesEmptyWeek(t *testing.T) {
	nextWeek := monday.AddDate(0, 0, 7)

	sheet := NewTimesheet(testTasks(), nextWeek, "", clock)

	if len(sheet.Tasks) != 0 {
		t.Errorf(
			"expected no tasks on an untracked week, but got: %d",
			len(sheet.Tasks),
		)
	}
}

// TestTimesheetMatchesAggregator verifies that the sheet total equals
// the aggregator's figure for the same range.
func TestTimesheetMatchesAggregator(t *testing.T) {
	tasks := testTasks()

	sheet := NewTimesheet(tasks, monday, "", clock)

	expected := TotalWithin(tasks, monday, monday.AddDate(0, 0, 7), clock)
	if got := sheet.Total(); got != expected {
		t.Errorf("expected sheet total to be: %v, but got: %v", expected, got)
	}
}

type csvTest struct {
	sheet *Timesheet
}

func (tc csvTest) Output() ([]byte, string) {
	var buf bytes.Buffer

	if err := tc.sheet.WriteCSV(&buf); err != nil {
		return nil, "timesheet"
	}

	return buf.Bytes(), "timesheet"
}

func TestWriteCSV(t *testing.T) {
	sheet := NewTimesheet(testTasks(), monday, "", clock)

	testutil.CompareGoldenFile(t, csvTest{sheet})
}
