package config

import (
	"errors"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/turesheim/timekeeper/internal/timeutil"
)

var (
	errInvalidDateRange = errors.New(
		"the end date must not be earlier than the start date",
	)

	errInvalidPeriod = errors.New(
		"please provide a valid time period",
	)
)

// FilterConfig represents a configuration to filter tracked tasks by
// time range and project.
type FilterConfig struct {
	StartTime time.Time
	EndTime   time.Time
	Project   string
	WeekStart time.Weekday
}

// getTimeRange returns the start and end time according to the
// specified time period. Ranges are half-open on day boundaries.
func getTimeRange(period timeutil.Period) (start, end time.Time) {
	now := time.Now()

	start = timeutil.RoundToStart(now)

	end = timeutil.NextDay(now)

	//nolint:exhaustive // other cases covered by default
	switch period {
	case timeutil.PeriodToday:
		return
	case timeutil.PeriodYesterday:
		start = now.AddDate(0, 0, timeutil.Range[period])
		start = timeutil.RoundToStart(start)
		end = timeutil.NextDay(start)

		return
	default:
		start = now.AddDate(0, 0, timeutil.Range[period])
		start = timeutil.RoundToStart(start)
	}

	return
}

// setFilterConfig updates the filter configuration from command-line
// arguments. With no time arguments the filter covers the week
// containing today.
func setFilterConfig(ctx *cli.Context, weekStart time.Weekday) (*FilterConfig, error) {
	filterCfg := &FilterConfig{
		Project:   strings.TrimSpace(ctx.String("project")),
		WeekStart: weekStart,
	}

	period := timeutil.Period(strings.TrimSpace(ctx.String("period")))

	if period != "" && !slices.Contains(timeutil.PeriodCollection, period) {
		return nil, errInvalidPeriod
	}

	if period != "" {
		filterCfg.StartTime, filterCfg.EndTime = getTimeRange(period)

		return filterCfg, nil
	}

	week := time.Now()

	if ctx.String("week") != "" {
		dateTime, err := dateparse.ParseAny(ctx.String("week"))
		if err != nil {
			return nil, err
		}

		week = dateTime
	}

	filterCfg.StartTime = timeutil.WeekOf(week, weekStart)
	filterCfg.EndTime = filterCfg.StartTime.AddDate(0, 0, timeutil.DaysInAWeek)

	start := ctx.String("start")
	if start != "" {
		dateTime, err := dateparse.ParseAny(start)
		if err != nil {
			return nil, err
		}

		filterCfg.StartTime = dateTime
		filterCfg.EndTime = time.Now()
	}

	// the end date is inclusive
	end := ctx.String("end")
	if end != "" {
		dateTime, err := dateparse.ParseAny(end)
		if err != nil {
			return nil, err
		}

		filterCfg.EndTime = timeutil.NextDay(dateTime)
	}

	if filterCfg.EndTime.Before(filterCfg.StartTime) {
		return nil, errInvalidDateRange
	}

	return filterCfg, nil
}

// Filter initializes and returns a configuration to filter tasks from
// command-line arguments.
func Filter(ctx *cli.Context, weekStart time.Weekday) *FilterConfig {
	cfg, err := setFilterConfig(ctx, weekStart)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	return cfg
}
