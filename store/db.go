package store

import (
	"github.com/turesheim/timekeeper/internal/task"
)

// DB is the database storage interface.
type DB interface {
	// FindTask returns the task stored under the composite key, or nil
	// if it has not been seen before
	FindTask(repositoryURL, taskID string) (*task.Task, error)
	// SaveTask creates or overwrites a task record
	SaveTask(t *task.Task) error
	// SaveTasks writes several task records in a single transaction
	SaveTasks(tasks []*task.Task) error
	// Tasks returns every stored task
	Tasks() ([]*task.Task, error)
	// DeleteTask removes a task record
	DeleteTask(repositoryURL, taskID string) error
	// LocalRepositoryID returns the generated identifier for a local
	// repository, or "" if none has been assigned yet
	LocalRepositoryID(name string) (string, error)
	// SetLocalRepositoryID assigns a generated identifier to a local
	// repository
	SetLocalRepositoryID(name, id string) error
	// Close ends the database connection
	Close() error
	// Open begins a database connection
	Open() error
}
