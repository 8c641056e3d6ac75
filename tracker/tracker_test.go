package tracker

import (
	"testing"
	"time"

	"github.com/turesheim/timekeeper/config"
	"github.com/turesheim/timekeeper/internal/task"
)

var clock = time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)

// memStore is an in-memory store.DB used by the tracker tests.
type memStore struct {
	tasks   map[string]*task.Task
	repoIDs map[string]string
	saves   int
}

func newMemStore() *memStore {
	return &memStore{
		tasks:   make(map[string]*task.Task),
		repoIDs: make(map[string]string),
	}
}

func (m *memStore) FindTask(repositoryURL, taskID string) (*task.Task, error) {
	return m.tasks[repositoryURL+task.KeySeparator+taskID], nil
}

func (m *memStore) SaveTask(t *task.Task) error {
	m.tasks[t.Key()] = t
	m.saves++

	return nil
}

func (m *memStore) SaveTasks(tasks []*task.Task) error {
	for _, t := range tasks {
		m.tasks[t.Key()] = t
	}

	m.saves++

	return nil
}

func (m *memStore) Tasks() ([]*task.Task, error) {
	tasks := make([]*task.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		tasks = append(tasks, t)
	}

	return tasks, nil
}

func (m *memStore) DeleteTask(repositoryURL, taskID string) error {
	delete(m.tasks, repositoryURL+task.KeySeparator+taskID)
	return nil
}

func (m *memStore) LocalRepositoryID(name string) (string, error) {
	return m.repoIDs[name], nil
}

func (m *memStore) SetLocalRepositoryID(name, id string) error {
	m.repoIDs[name] = id
	return nil
}

func (m *memStore) Open() error { return nil }

func (m *memStore) Close() error { return nil }

type fakeRepo struct {
	url   string
	local bool
	props map[string]string
}

func (r *fakeRepo) URL() string { return r.url }

func (r *fakeRepo) Local() bool { return r.local }

func (r *fakeRepo) Property(key string) string { return r.props[key] }

func (r *fakeRepo) SetProperty(key, value string) {
	if r.props == nil {
		r.props = make(map[string]string)
	}

	r.props[key] = value
}

type fakeHandle struct {
	id   string
	repo *fakeRepo
}

func (h *fakeHandle) TaskID() string { return h.id }

func (h *fakeHandle) Repository() Repository { return h.repo }

// fakeHost resolves handles by task id and reports ledger activity from
// a fixed cutoff: every probe window that starts before the cutoff has
// elapsed active time.
type fakeHost struct {
	handles      map[string]*fakeHandle
	active       map[string]bool
	activeUntil  map[string]time.Time
	alwaysActive bool
}

func (f *fakeHost) FindHandle(repositoryURL, taskID string) (Handle, bool) {
	h, ok := f.handles[taskID]
	return h, ok
}

func (f *fakeHost) IsActive(h Handle) bool {
	return f.active[h.TaskID()]
}

func (f *fakeHost) ElapsedActiveTime(
	h Handle,
	windowStart, windowEnd time.Time,
) time.Duration {
	if f.alwaysActive {
		return windowEnd.Sub(windowStart)
	}

	cutoff, ok := f.activeUntil[h.TaskID()]
	if !ok || !windowStart.Before(cutoff) {
		return 0
	}

	if windowEnd.After(cutoff) {
		return cutoff.Sub(windowStart)
	}

	return windowEnd.Sub(windowStart)
}

type fakeLegacy struct {
	payloads map[string]string
}

func (f *fakeLegacy) LegacyPayload(h Handle) string {
	return f.payloads[h.TaskID()]
}

func (f *fakeLegacy) ClearLegacyPayload(h Handle) {
	delete(f.payloads, h.TaskID())
}

func testConfig() *config.TrackerConfig {
	return &config.TrackerConfig{
		WeekStart:    time.Monday,
		SaveInterval: time.Minute,
	}
}

func remoteHandle(id string) *fakeHandle {
	return &fakeHandle{
		id:   id,
		repo: &fakeRepo{url: "https://example.com/tracker"},
	}
}

func TestOnTaskActivated(t *testing.T) {
	db := newMemStore()
	tr := New(db, &fakeHost{}, nil, testConfig())

	h := remoteHandle("TK-1")

	tk, err := tr.OnTaskActivated(h, clock)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !tk.Running() {
		t.Error("expected an activity to be running after activation")
	}

	if tk.RepositoryURL != "https://example.com/tracker" {
		t.Errorf("unexpected repository URL: %s", tk.RepositoryURL)
	}

	stored, _ := db.FindTask("https://example.com/tracker", "TK-1")
	if stored == nil {
		t.Fatal("expected the task to be saved after activation")
	}

	// a second activation while running is a no-op
	again, err := tr.OnTaskActivated(h, clock.Add(time.Minute))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if again != tk || len(tk.Activities) != 1 {
		t.Error("expected repeated activation to reuse the open activity")
	}
}

func TestOnTaskDeactivated(t *testing.T) {
	db := newMemStore()
	tr := New(db, &fakeHost{}, nil, testConfig())

	h := remoteHandle("TK-1")

	// deactivating a task that was never activated is a no-op
	if err := tr.OnTaskDeactivated(h, clock); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tk, err := tr.OnTaskActivated(h, clock)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if err := tr.OnTaskDeactivated(h, clock.Add(time.Hour)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if tk.Running() {
		t.Error("expected the activity to be closed after deactivation")
	}

	if got := tk.Activities[0].Duration(clock); got != time.Hour {
		t.Errorf("expected tracked duration to be 1h, but got: %v", got)
	}

	// second deactivation is a no-op
	if err := tr.OnTaskDeactivated(h, clock.Add(2*time.Hour)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := tk.Activities[0].Duration(clock); got != time.Hour {
		t.Errorf("expected duration to be unchanged, but got: %v", got)
	}
}

func TestTickAndFlush(t *testing.T) {
	db := newMemStore()
	tr := New(db, &fakeHost{}, nil, testConfig())

	h := remoteHandle("TK-1")

	if _, err := tr.OnTaskActivated(h, clock); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	savesBefore := db.saves

	tr.Tick(h, clock.Add(time.Minute))
	tr.Tick(h, clock.Add(2*time.Minute))

	if db.saves != savesBefore {
		t.Error("expected ticks to defer persistence to the flush")
	}

	if err := tr.Flush(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if db.saves != savesBefore+1 {
		t.Error("expected a single batch save for both ticks")
	}

	stored, _ := db.FindTask("https://example.com/tracker", "TK-1")
	if !stored.LastTick.Equal(clock.Add(2 * time.Minute)) {
		t.Errorf("expected last tick to be persisted, but got: %v", stored.LastTick)
	}

	// flushing with nothing dirty writes nothing
	if err := tr.Flush(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if db.saves != savesBefore+1 {
		t.Error("expected an empty flush to skip the save")
	}
}
