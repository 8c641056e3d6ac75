// Package tracker reacts to host task activation events and maintains
// the activity history of tracked tasks
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"

	"github.com/turesheim/timekeeper/config"
	"github.com/turesheim/timekeeper/internal/task"
	"github.com/turesheim/timekeeper/store"
)

// Repository describes the issue repository an external task handle
// belongs to.
type Repository interface {
	// URL returns the repository location. For a local pseudo-repository
	// this is a symbolic name rather than a network address.
	URL() string
	// Local reports whether this is the distinguished non-networked
	// pseudo-repository.
	Local() bool
	// Property returns a persisted repository property, or "" when
	// unset.
	Property(key string) string
	// SetProperty persists a repository property.
	SetProperty(key, value string)
}

// Handle is an external task reference supplied by the host task
// framework.
type Handle interface {
	TaskID() string
	Repository() Repository
}

// Ledger is the host activity ledger consulted during idle
// reconciliation.
type Ledger interface {
	// IsActive reports whether the host currently considers the task
	// active.
	IsActive(h Handle) bool
	// ElapsedActiveTime returns how much of the window the host spent
	// active on the task.
	ElapsedActiveTime(h Handle, windowStart, windowEnd time.Time) time.Duration
}

// Host is the inbound view of the task framework.
type Host interface {
	Ledger

	// FindHandle locates the handle backing a stored task. The second
	// return value is false when the task no longer exists in the host.
	FindHandle(repositoryURL, taskID string) (Handle, bool)
}

// LegacyStore exposes the pre-relational per-task payloads, if any.
type LegacyStore interface {
	// LegacyPayload returns the old serialized format for the task, or
	// "" when the task was never tracked under the old scheme.
	LegacyPayload(h Handle) string
	// ClearLegacyPayload discards the old serialized format.
	ClearLegacyPayload(h Handle)
}

// Tracker turns task activation signals into activity records and keeps
// them persisted.
type Tracker struct {
	db       store.DB
	host     Host
	legacy   LegacyStore
	resolver *Resolver
	opts     *config.TrackerConfig

	mu    sync.Mutex
	dirty map[string]*task.Task
}

// New returns a tracker backed by the given store. The legacy store may
// be nil when the host has no pre-relational data.
func New(
	db store.DB,
	host Host,
	legacy LegacyStore,
	opts *config.TrackerConfig,
) *Tracker {
	return &Tracker{
		db:       db,
		host:     host,
		legacy:   legacy,
		resolver: NewResolver(db),
		opts:     opts,
		dirty:    make(map[string]*task.Task),
	}
}

// Resolver returns the identity resolver owned by the tracker.
func (t *Tracker) Resolver() *Resolver {
	return t.resolver
}

func (t *Tracker) markDirty(tk *task.Task) {
	t.mu.Lock()
	t.dirty[tk.Key()] = tk
	t.mu.Unlock()
}

// OnTaskActivated handles a "task will activate" signal from the host.
// The task record is created on first sight, legacy data is migrated,
// and a new activity is started.
func (t *Tracker) OnTaskActivated(h Handle, now time.Time) (*task.Task, error) {
	tk, err := t.resolver.Resolve(h)
	if err != nil {
		return nil, err
	}

	if t.legacy != nil {
		if err := t.migrateLegacy(h, tk); err != nil {
			slog.Warn(
				"skipping legacy migration",
				"task", tk.TaskID,
				"error", err,
			)
		}
	}

	tk.StartActivity(now)

	slog.Debug("task activated", "state", spew.Sdump(tk))

	return tk, t.db.SaveTask(tk)
}

// OnTaskDeactivated handles a "task will deactivate" signal from the
// host. A task that was never activated is ignored.
func (t *Tracker) OnTaskDeactivated(h Handle, now time.Time) error {
	tk, err := t.resolver.Resolve(h)
	if err != nil {
		return err
	}

	a := tk.EndActivity(now)
	if a == nil {
		return nil
	}

	slog.Debug("task deactivated", "state", spew.Sdump(tk))

	if err := t.db.SaveTask(tk); err != nil {
		return err
	}

	if err := t.runDeactivateCmd(); err != nil {
		slog.Warn("deactivate command failed", "error", err)
	}

	return nil
}

// Tick records host activity polling for a running task. The updated
// bookkeeping is flushed by the periodic save job rather than written
// immediately.
func (t *Tracker) Tick(h Handle, now time.Time) {
	tk, err := t.resolver.Resolve(h)
	if err != nil {
		return
	}

	tk.Tick(now)
	t.markDirty(tk)
}

// Flush writes every task touched since the previous flush in a single
// transaction.
func (t *Tracker) Flush() error {
	t.mu.Lock()

	tasks := make([]*task.Task, 0, len(t.dirty))
	for _, tk := range t.dirty {
		tasks = append(tasks, tk)
	}

	t.dirty = make(map[string]*task.Task)
	t.mu.Unlock()

	if len(tasks) == 0 {
		return nil
	}

	return t.db.SaveTasks(tasks)
}

// Run flushes dirty tasks on the configured interval until the context
// is cancelled. A final flush happens on the way out.
func (t *Tracker) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.opts.SaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return t.Flush()
		case <-ticker.C:
			if err := t.Flush(); err != nil {
				slog.Warn("periodic save failed", "error", err)
			}
		}
	}
}

// runDeactivateCmd executes the user-configured deactivation hook.
func (t *Tracker) runDeactivateCmd() error {
	if t.opts == nil || t.opts.DeactivateCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(t.opts.DeactivateCmd)
	if err != nil {
		return fmt.Errorf("unable to parse deactivate_cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	return cmd.Run()
}

// notify sends a desktop notification when enabled.
func (t *Tracker) notify(message string) {
	if t.opts == nil || !t.opts.Notify {
		return
	}

	err := beeep.Notify("Timekeeper", message, "")
	if err != nil {
		slog.Warn("unable to send notification", "error", err)
	}
}
