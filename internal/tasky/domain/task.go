package domain

import "time"

// Task is a single scheduled item owned by exactly one user. The owner is
// immutable after creation and only the owner may read or mutate the task.
type Task struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Date        time.Time      `json:"date"` // the calendar day the task is scheduled for
	Time        string         `json:"time"` // free-form, e.g. "14:30" or "2:30 PM"
	XP          int64          `json:"xp"`   // reward granted on completion
	Completed   bool           `json:"completed"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"` // set exactly once
	Details     map[string]any `json:"details"`               // free-form per-task metadata
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
