package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "Write debug records to the log file",
	}

	weekFlag = &cli.StringFlag{
		Name:    "week",
		Aliases: []string{"w"},
		Usage:   "Report on the week containing the specified date (e.g. '2024-03-14')",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Report on a named period: today, yesterday, 7days, 14days, 30days, 90days, 365days",
	}

	startFlag = &cli.StringFlag{
		Name:  "start",
		Usage: "Report start date",
	}

	endFlag = &cli.StringFlag{
		Name:  "end",
		Usage: "Report end date",
	}

	projectFlag = &cli.StringFlag{
		Name:  "project",
		Usage: "Restrict the report to tasks assigned to the named project",
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write the export to the specified file instead of standard output",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification sent when a stale activity is closed",
	}

	deactivateCmdFlag = &cli.StringFlag{
		Name:    "deactivate-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command each time a task is deactivated",
	}
)
