package tracker

import (
	"sync"

	"github.com/google/uuid"

	"github.com/turesheim/timekeeper/internal/task"
	"github.com/turesheim/timekeeper/store"
)

// repositoryIDProperty is the repository property under which the
// generated identifier of a local pseudo-repository is stored.
const repositoryIDProperty = "repository.id"

// Resolver maps external task handles to their stored task records. It
// owns the stable composite identity of every task: remote repositories
// contribute their URL verbatim, local pseudo-repositories are assigned
// a generated UUID the first time they are seen, so two different
// workspaces never collide on the same key while one workspace keeps
// its key across restarts.
type Resolver struct {
	db store.DB

	mu    sync.Mutex
	cache map[string]*task.Task
}

func NewResolver(db store.DB) *Resolver {
	return &Resolver{
		db:    db,
		cache: make(map[string]*task.Task),
	}
}

// repositoryURL returns the identity component contributed by the
// handle's repository.
func (r *Resolver) repositoryURL(repo Repository) (string, error) {
	if !repo.Local() {
		return repo.URL(), nil
	}

	if id := repo.Property(repositoryIDProperty); id != "" {
		return id, nil
	}

	// The property may have been lost with the host workspace state.
	// The store keeps a mirror so the same workspace resolves to the
	// same identity after a restart.
	id, err := r.db.LocalRepositoryID(repo.URL())
	if err != nil {
		return "", err
	}

	if id == "" {
		id = uuid.NewString()

		if err := r.db.SetLocalRepositoryID(repo.URL(), id); err != nil {
			return "", err
		}
	}

	repo.SetProperty(repositoryIDProperty, id)

	return id, nil
}

// Key resolves the stable (repositoryURL, taskID) identity for a
// handle.
func (r *Resolver) Key(h Handle) (repositoryURL, taskID string, err error) {
	repositoryURL, err = r.repositoryURL(h.Repository())
	if err != nil {
		return "", "", err
	}

	return repositoryURL, h.TaskID(), nil
}

// Resolve returns the task record for a handle, creating it on first
// sight. Repeated calls for the same handle return the same instance.
func (r *Resolver) Resolve(h Handle) (*task.Task, error) {
	repositoryURL, taskID, err := r.Key(h)
	if err != nil {
		return nil, err
	}

	key := repositoryURL + task.KeySeparator + taskID

	r.mu.Lock()
	defer r.mu.Unlock()

	if tk, ok := r.cache[key]; ok {
		return tk, nil
	}

	tk, err := r.db.FindTask(repositoryURL, taskID)
	if err != nil {
		return nil, err
	}

	if tk == nil {
		tk = task.New(repositoryURL, taskID)
	}

	r.cache[key] = tk

	return tk, nil
}

// Forget drops a task from the cache. Must be called when a task record
// is deleted so a later activation starts from a clean record.
func (r *Resolver) Forget(repositoryURL, taskID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.cache, repositoryURL+task.KeySeparator+taskID)
}
