package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hako/durafmt"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/turesheim/timekeeper/config"
	"github.com/turesheim/timekeeper/internal/logging"
	"github.com/turesheim/timekeeper/internal/task"
	"github.com/turesheim/timekeeper/internal/timeutil"
	"github.com/turesheim/timekeeper/internal/ui"
	"github.com/turesheim/timekeeper/report"
	"github.com/turesheim/timekeeper/store"
)

const (
	envNoColor           = "NO_COLOR"
	envTimekeeperNoColor = "TIMEKEEPER_NO_COLOR"
)

var errMissingTaskKey = errors.New(
	"expected a repository URL and a task identifier",
)

// taskHelper opens the database and loads every tracked task.
func taskHelper(ctx *cli.Context) ([]*task.Task, store.DB, error) {
	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return nil, nil, err
	}

	tasks, err := db.Tasks()
	if err != nil {
		return nil, nil, err
	}

	return tasks, db, nil
}

// isWeekRange reports whether the filter covers exactly one week
// starting on the configured week start.
func isWeekRange(cfg *config.FilterConfig) bool {
	return cfg.StartTime.Equal(timeutil.RoundToStart(cfg.StartTime)) &&
		cfg.EndTime.Equal(cfg.StartTime.AddDate(0, 0, timeutil.DaysInAWeek))
}

// reportAction renders the weekly time sheet, or per-task totals when
// an arbitrary range was requested.
func reportAction(ctx *cli.Context) error {
	tasks, db, err := taskHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	cfg := config.Tracker(ctx)
	filter := config.Filter(ctx, cfg.WeekStart)
	now := time.Now()

	if isWeekRange(filter) {
		sheet := report.NewTimesheet(
			tasks,
			filter.StartTime,
			filter.Project,
			now,
		)
		sheet.Render(os.Stdout)

		return nil
	}

	report.RangeSummary(
		os.Stdout,
		tasks,
		filter.StartTime,
		filter.EndTime,
		filter.Project,
		now,
	)

	return nil
}

// exportAction writes the weekly time sheet in CSV format.
func exportAction(ctx *cli.Context) error {
	tasks, db, err := taskHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	cfg := config.Tracker(ctx)
	filter := config.Filter(ctx, cfg.WeekStart)

	sheet := report.NewTimesheet(
		tasks,
		filter.StartTime,
		filter.Project,
		time.Now(),
	)

	out := os.Stdout

	if path := ctx.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}

		defer f.Close()

		out = f
	}

	return sheet.WriteCSV(out)
}

// listAction prints a table of all tracked tasks.
func listAction(ctx *cli.Context) error {
	tasks, db, err := taskHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	report.ListTasks(os.Stdout, tasks, time.Now())

	return nil
}

// statusAction prints the currently running activity, if any.
func statusAction(ctx *cli.Context) error {
	tasks, db, err := taskHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	now := time.Now()

	for _, t := range tasks {
		cur := t.Current()
		if cur == nil {
			continue
		}

		elapsed := durafmt.Parse(cur.Duration(now)).LimitFirstN(2)

		pterm.Printfln(
			"%s: running for %s",
			ui.Highlight(t.TaskID),
			ui.Green(elapsed),
		)

		return nil
	}

	pterm.Info.Println("No activity is currently running")

	return nil
}

// deleteAction removes a task record from the database.
func deleteAction(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return errMissingTaskKey
	}

	_, db, err := taskHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	repositoryURL := ctx.Args().Get(0)
	taskID := ctx.Args().Get(1)

	err = db.DeleteTask(repositoryURL, taskID)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Deleted task %s", taskID)

	return nil
}

// defaultAction renders this week's time sheet.
func defaultAction(ctx *cli.Context) error {
	tasks, db, err := taskHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	cfg := config.Tracker(ctx)

	sheet := report.NewTimesheet(
		tasks,
		timeutil.WeekOf(time.Now(), cfg.WeekStart),
		"",
		time.Now(),
	)
	sheet.Render(os.Stdout)

	return nil
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	config.InitializePaths()

	logging.Init(config.LogFilePath(), ctx.Bool("verbose"))

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if TIMEKEEPER_NO_COLOR is set
	if _, exists := os.LookupEnv(envTimekeeperNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	ui.DarkTheme = config.Tracker(ctx).DarkTheme

	return nil
}

// helpText overrides the default app help template.
func helpText() string {
	return fmt.Sprintf(
		"%s\n\nUSAGE\n   {{.HelpName}} {{.UsageText}}\n\nCOMMANDS{{range .Commands}}\n   {{join .Names \", \"}}\t{{.Usage}}{{end}}\n\nOPTIONS{{range .VisibleFlags}}\n   {{.}}{{end}}\n",
		"{{.Usage}}",
	)
}
