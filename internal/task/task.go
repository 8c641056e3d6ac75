// Package task defines tracked tasks and their activity history
package task

import (
	"sync"
	"time"

	"github.com/turesheim/timekeeper/internal/activity"
)

// KeySeparator joins the two identity components into a store key. It
// cannot occur in a repository URL or a task identifier.
const KeySeparator = "\x00"

// Task is the tracked-time record for one external issue or ticket. It
// is identified by the (RepositoryURL, TaskID) pair, which is frozen at
// construction.
//
// Activities holds every recorded span in creation order. At most one
// element may be open (zero end time) at any moment; the open element is
// derived by scanning rather than cached in a separate field so the two
// can never disagree.
type Task struct {
	RepositoryURL string               `json:"repository_url"`
	TaskID        string               `json:"task_id"`
	Project       string               `json:"project,omitempty"`
	Activities    []*activity.Activity `json:"activities"`
	LastTick      time.Time            `json:"last_tick,omitempty"`

	mu sync.Mutex
}

// New returns a task with the given composite identity.
func New(repositoryURL, taskID string) *Task {
	return &Task{
		RepositoryURL: repositoryURL,
		TaskID:        taskID,
	}
}

// Key returns the composite store key for the task.
func (t *Task) Key() string {
	return t.RepositoryURL + KeySeparator + t.TaskID
}

// current returns the open activity, if any. Callers must hold t.mu.
func (t *Task) current() *activity.Activity {
	for _, a := range t.Activities {
		if a.Running() {
			return a
		}
	}

	return nil
}

// Current returns the open activity, or nil when the task is idle.
func (t *Task) Current() *activity.Activity {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.current()
}

// Running reports whether the task has an open activity.
func (t *Task) Running() bool {
	return t.Current() != nil
}

// StartActivity opens a new activity starting at the given time and
// returns it. If an activity is already running it is returned
// unchanged, so a second start while one is in progress is a no-op. Two
// concurrent starts create exactly one activity; the loser observes and
// returns the winner's.
func (t *Task) StartActivity(now time.Time) *activity.Activity {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cur := t.current(); cur != nil {
		return cur
	}

	a := activity.New(now)
	t.Activities = append(t.Activities, a)
	t.LastTick = now

	return a
}

// EndActivity closes the open activity at the given time and returns
// it. When the task is idle it is a no-op and returns nil, so calling it
// twice in a row is safe. Idle reconciliation passes a back-dated close
// time here rather than the wall clock.
func (t *Task) EndActivity(now time.Time) *activity.Activity {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur := t.current()
	if cur == nil {
		return nil
	}

	cur.Close(now)

	return cur
}

// Tick records that the host reported the task as active at the given
// time. Used as bookkeeping for idle polling.
func (t *Task) Tick(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.LastTick = now
}

// DurationOnDay returns the total time tracked on the day containing d,
// summed over all activities. An open activity is measured against now.
func (t *Task) DurationOnDay(d time.Time, now time.Time) time.Duration {
	var total time.Duration

	for _, a := range t.Activities {
		total += a.DurationOnDay(d, now)
	}

	return total
}

// DurationWithin returns the total time tracked between the start of
// rangeStart's day and the start of rangeEnd's day.
func (t *Task) DurationWithin(
	rangeStart, rangeEnd time.Time,
	now time.Time,
) time.Duration {
	var total time.Duration

	for _, a := range t.Activities {
		total += a.DurationWithin(rangeStart, rangeEnd, now)
	}

	return total
}
