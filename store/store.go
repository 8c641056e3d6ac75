// Package store connects to the data store and manages tracked tasks
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/turesheim/timekeeper/internal/task"
)

const (
	taskBucket = "tasks"
	repoBucket = "repositories"
)

var pathToDB string

var errTimekeeperRunning = errors.New(
	"is timekeeper already running? Only one instance can be active at a time",
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

func taskKey(repositoryURL, taskID string) []byte {
	return []byte(repositoryURL + task.KeySeparator + taskID)
}

func (c *Client) FindTask(repositoryURL, taskID string) (*task.Task, error) {
	var t *task.Task

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(taskBucket)).Get(taskKey(repositoryURL, taskID))
		if len(b) == 0 {
			return nil
		}

		t = &task.Task{}

		return json.Unmarshal(b, t)
	})

	return t, err
}

func putTask(tx *bolt.Tx, t *task.Task) error {
	value, err := json.Marshal(t)
	if err != nil {
		return err
	}

	return tx.Bucket([]byte(taskBucket)).Put([]byte(t.Key()), value)
}

func (c *Client) SaveTask(t *task.Task) error {
	return c.Update(func(tx *bolt.Tx) error {
		return putTask(tx, t)
	})
}

func (c *Client) SaveTasks(tasks []*task.Task) error {
	return c.Update(func(tx *bolt.Tx) error {
		for _, t := range tasks {
			err := putTask(tx, t)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (c *Client) Tasks() ([]*task.Task, error) {
	var tasks []*task.Task

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(taskBucket)).Cursor()

		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			t := &task.Task{}

			err := json.Unmarshal(v, t)
			if err != nil {
				return err
			}

			tasks = append(tasks, t)
		}

		return nil
	})

	return tasks, err
}

func (c *Client) DeleteTask(repositoryURL, taskID string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(taskBucket)).
			Delete(taskKey(repositoryURL, taskID))
	})
}

func (c *Client) LocalRepositoryID(name string) (string, error) {
	var id string

	err := c.View(func(tx *bolt.Tx) error {
		id = string(tx.Bucket([]byte(repoBucket)).Get([]byte(name)))
		return nil
	})

	return id, err
}

func (c *Client) SetLocalRepositoryID(name, id string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(repoBucket)).Put([]byte(name), []byte(id))
	})
}

func (c *Client) Open() error {
	db, err := openDB(pathToDB)
	if err != nil {
		return err
	}

	*c = Client{
		db,
	}

	return nil
}

// open creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errTimekeeperRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	pathToDB = dbPath

	db, err := openDB(pathToDB)
	if err != nil {
		return nil, err
	}
	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(taskBucket))
		if err != nil {
			return err
		}

		_, err = tx.CreateBucketIfNotExists([]byte(repoBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
