package tracker

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/turesheim/timekeeper/internal/activity"
	"github.com/turesheim/timekeeper/internal/task"
)

// The legacy payload is a semicolon-separated list of key=value pairs
// where each key is an ISO date and each value the accumulated seconds
// tracked on that day. The reserved "start" key carried the in-progress
// session and holds no per-day data.
const (
	legacyPairSeparator  = ";"
	legacyValueSeparator = "="
	legacyStartKey       = "start"
	legacyDateLayout     = "2006-01-02"
)

// parseLegacyPayload converts a legacy payload into closed whole-day
// activities. A trailing separator produces an empty segment, which is
// skipped; any other malformed pair fails the whole parse so no data is
// discarded on a partial conversion.
func parseLegacyPayload(payload string) ([]*activity.Activity, error) {
	var activities []*activity.Activity

	for _, pair := range strings.Split(payload, legacyPairSeparator) {
		if pair == "" {
			continue
		}

		key, value, found := strings.Cut(pair, legacyValueSeparator)
		if !found {
			return nil, fmt.Errorf("malformed legacy pair: %q", pair)
		}

		if key == legacyStartKey {
			continue
		}

		day, err := time.ParseInLocation(legacyDateLayout, key, time.Local)
		if err != nil {
			return nil, fmt.Errorf("malformed legacy date %q: %w", key, err)
		}

		seconds, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("malformed legacy seconds %q: %w", value, err)
		}

		a := activity.New(day)
		a.Close(day.Add(time.Duration(seconds) * time.Second))

		activities = append(activities, a)
	}

	return activities, nil
}

// migrateLegacy performs the one-time conversion of a task's legacy
// payload into activity records. The payload is cleared only after
// every pair has been converted, so a malformed payload is left in
// place for inspection.
func (t *Tracker) migrateLegacy(h Handle, tk *task.Task) error {
	payload := t.legacy.LegacyPayload(h)
	if payload == "" {
		return nil
	}

	activities, err := parseLegacyPayload(payload)
	if err != nil {
		return err
	}

	tk.Activities = append(tk.Activities, activities...)

	t.legacy.ClearLegacyPayload(h)

	slog.Info(
		"migrated legacy tracked time",
		"task", tk.TaskID,
		"activities", len(activities),
	)

	return nil
}
