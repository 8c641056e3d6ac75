package tracker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/turesheim/timekeeper/internal/task"
)

// probeWindow is the step used when estimating the true end of an
// activity from the host activity ledger.
const probeWindow = 30 * time.Minute

// reconcileEnd estimates when work on the task actually stopped. It
// probes successive windows from the activity's start and advances while
// the ledger reports activity, stopping at the first silent window or
// when the window catches up to now. The wall-clock check is the
// backstop that keeps the loop bounded even against a ledger that always
// reports activity.
func reconcileEnd(l Ledger, h Handle, start, now time.Time) time.Time {
	w := start

	for l.ElapsedActiveTime(h, w, w.Add(probeWindow)) > 0 &&
		!w.Add(probeWindow).After(now) {
		w = w.Add(probeWindow)
	}

	return w.Add(probeWindow)
}

// ReconcileAll closes activities left open because the host was shut
// down or crashed while a task was active. Tasks that no longer resolve
// to a host handle are skipped, as are tasks the host still considers
// active. All closed tasks are saved in one transaction.
func (t *Tracker) ReconcileAll(now time.Time) error {
	stored, err := t.db.Tasks()
	if err != nil {
		return err
	}

	var closed []*task.Task

	for _, s := range stored {
		if s.Current() == nil {
			continue
		}

		h, ok := t.host.FindHandle(s.RepositoryURL, s.TaskID)
		if !ok {
			slog.Warn(
				"task not found in host, skipping reconciliation",
				"repository", s.RepositoryURL,
				"task", s.TaskID,
			)

			continue
		}

		if t.host.IsActive(h) {
			continue
		}

		tk, err := t.resolver.Resolve(h)
		if err != nil {
			slog.Warn(
				"unable to resolve task, skipping reconciliation",
				"task", s.TaskID,
				"error", err,
			)

			continue
		}

		cur := tk.Current()
		if cur == nil {
			continue
		}

		end := reconcileEnd(t.host, h, cur.Start, now)

		tk.EndActivity(end)
		closed = append(closed, tk)

		t.notify(
			fmt.Sprintf("Closed stale activity on task %s", tk.TaskID),
		)
	}

	if len(closed) == 0 {
		return nil
	}

	return t.db.SaveTasks(closed)
}
