package store

import (
	"context"
	"errors"
	"time"

	"github.com/taskyhq/tasky/internal/tasky/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Users() Users
	Tasks() Tasks

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run multi-step writes (e.g. the completion
	// transaction) atomically.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up an account by its normalized (lower-cased)
	// email. Used during signup conflict checks and login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// AwardCompletion adds xp to the user's total and increments the streak
	// by exactly one, returning the updated user. xp must be non-negative.
	AwardCompletion(ctx context.Context, userID string, xp int64) (domain.User, error)
}

// TaskFilter bounds a task listing by scheduled date. Nil bounds are open;
// both bounds are inclusive.
type TaskFilter struct {
	From *time.Time
	To   *time.Time
}

type Tasks interface {
	// CreateTask inserts a new task (id is provided by the app via ULID).
	CreateTask(ctx context.Context, t domain.Task) error

	// GetTaskByID returns a task by id regardless of owner. Ownership is a
	// business rule enforced by the service layer.
	GetTaskByID(ctx context.Context, id string) (domain.Task, error)

	// ListTasksByUser returns the user's tasks within the filter bounds,
	// sorted ascending by date then by the free-form time string.
	ListTasksByUser(ctx context.Context, userID string, f TaskFilter) ([]domain.Task, error)

	// UpdateTask persists the task's mutable fields and bumps updated_at.
	UpdateTask(ctx context.Context, t domain.Task) error

	// DeleteTask removes the task permanently.
	DeleteTask(ctx context.Context, id string) error

	// MarkTaskCompleted flips completed from false to true in a single
	// conditional write and stamps completed_at. Returns false when the
	// task was already completed, without touching the row. This is the
	// atomic gate that stops two concurrent completions from both
	// awarding rewards.
	MarkTaskCompleted(ctx context.Context, id string, at time.Time) (bool, error)
}
