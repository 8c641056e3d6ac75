package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/turesheim/timekeeper/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the timekeeper app instance.
func Get() *cli.App {
	timekeeperApp := &cli.App{
		Name: "timekeeper",
		Usage: `
		Timekeeper records the time spent working on issue-tracker tasks and
		renders a weekly time sheet from the recorded activities.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name: "report",
				Usage: `
				Render the weekly time sheet. Defaults to the week containing
				today`,
				Action: reportAction,
				Flags: []cli.Flag{
					weekFlag,
					periodFlag,
					startFlag,
					endFlag,
					projectFlag,
				},
			},
			{
				Name:   "export",
				Usage:  "Export the weekly time sheet in CSV format",
				Action: exportAction,
				Flags: []cli.Flag{
					weekFlag,
					projectFlag,
					outputFlag,
				},
			},
			{
				Name:   "list",
				Usage:  "Print a table of all tracked tasks",
				Action: listAction,
			},
			{
				Name:   "status",
				Usage:  "Print the currently running activity",
				Action: statusAction,
			},
			{
				Name:      "delete",
				Usage:     "Delete the record of a tracked task",
				ArgsUsage: "<repository-url> <task-id>",
				Action:    deleteAction,
			},
		},
		Flags: []cli.Flag{
			noColorFlag,
			verboseFlag,
			disableNotificationFlag,
			deactivateCmdFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
	}

	return timekeeperApp
}
