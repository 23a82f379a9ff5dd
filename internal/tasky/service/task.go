package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/taskyhq/tasky/internal/tasky/domain"
	"github.com/taskyhq/tasky/internal/tasky/store"
	"github.com/taskyhq/tasky/pkg/idx"
	"github.com/taskyhq/tasky/pkg/slogx"
)

var (
	ErrTitleAndDateRequired = errors.New("title and date are required")
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidTaskID        = errors.New("invalid task id")
	ErrTaskNotFound         = errors.New("task not found")
	ErrNotTaskOwner         = errors.New("not authorized")
	ErrTaskAlreadyCompleted = errors.New("task already completed")
	ErrInvalidPatch         = errors.New("invalid field value")
)

// TaskService owns the task business rules: creation validation, ownership
// checks, update-field whitelisting, and the completion transaction.
type TaskService struct {
	Store store.Store
}

// CreateTaskInput carries the raw create request. Date is parsed here; XP
// arrives as whatever JSON value the client sent and is coerced.
type CreateTaskInput struct {
	Title       string
	Description string
	Date        string
	Time        string
	XP          any
	Details     map[string]any
}

// Create validates the input and persists a new uncompleted task for owner.
func (s *TaskService) Create(ctx context.Context, ownerID string, in CreateTaskInput) (domain.Task, error) {
	if in.Title == "" || in.Date == "" {
		return domain.Task{}, ErrTitleAndDateRequired
	}

	date, err := ParseDate(in.Date)
	if err != nil {
		return domain.Task{}, ErrInvalidDate
	}

	details := in.Details
	if details == nil {
		details = map[string]any{}
	}

	task := domain.Task{
		ID:          idx.New().String(),
		UserID:      ownerID,
		Title:       in.Title,
		Description: in.Description,
		Date:        date,
		Time:        in.Time,
		XP:          CoerceXP(in.XP),
		Completed:   false,
		Details:     details,
	}

	if err := s.Store.Tasks().CreateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}

	return s.Store.Tasks().GetTaskByID(ctx, task.ID)
}

// ListFilter selects tasks by scheduled date: a single calendar day, an
// inclusive from/to range, or everything when all fields are empty.
type ListFilter struct {
	Date string
	From string
	To   string
}

// List returns the owner's tasks matching the filter, sorted ascending by
// date and then by the free-form time string.
func (s *TaskService) List(ctx context.Context, ownerID string, f ListFilter) ([]domain.Task, error) {
	var bounds store.TaskFilter

	switch {
	case f.Date != "":
		day, err := ParseDate(f.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		// The whole calendar day in UTC, millisecond-inclusive on both ends.
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		end := start.Add(24*time.Hour - time.Millisecond)
		bounds.From = &start
		bounds.To = &end

	case f.From != "" || f.To != "":
		if f.From != "" {
			from, err := ParseDate(f.From)
			if err != nil {
				return nil, ErrInvalidDate
			}
			bounds.From = &from
		}
		if f.To != "" {
			to, err := ParseDate(f.To)
			if err != nil {
				return nil, ErrInvalidDate
			}
			bounds.To = &to
		}
	}

	return s.Store.Tasks().ListTasksByUser(ctx, ownerID, bounds)
}

// GetByID returns a single task after the id/existence/ownership checks.
func (s *TaskService) GetByID(ctx context.Context, ownerID, taskID string) (domain.Task, error) {
	return s.ownedTask(ctx, s.Store, ownerID, taskID)
}

// TaskPatch is a partial update keyed by field name. Only whitelisted keys
// are applied; anything else is silently dropped.
type TaskPatch map[string]json.RawMessage

// Update applies the whitelisted subset of patch to the task and persists
// it. The whitelist is title, description, date, time, xp, details and
// completed; the owner is immutable and reward side effects only happen
// through Complete.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, patch TaskPatch) (domain.Task, error) {
	task, err := s.ownedTask(ctx, s.Store, ownerID, taskID)
	if err != nil {
		return domain.Task{}, err
	}

	if err := applyPatch(&task, patch); err != nil {
		return domain.Task{}, err
	}

	if err := s.Store.Tasks().UpdateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}

	return s.Store.Tasks().GetTaskByID(ctx, taskID)
}

// Delete removes the task permanently after the usual checks.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	task, err := s.ownedTask(ctx, s.Store, ownerID, taskID)
	if err != nil {
		return err
	}
	return s.Store.Tasks().DeleteTask(ctx, task.ID)
}

// Complete marks the task completed and grants its reward: the owner's xp
// grows by the task's xp and the streak increments by one. A task completes
// successfully at most once; repeat calls fail with ErrTaskAlreadyCompleted.
//
// Both writes run in one transaction, and the completed flag is flipped
// with a conditional update, so two concurrent calls cannot both award.
func (s *TaskService) Complete(ctx context.Context, ownerID, taskID string) (domain.Task, domain.RewardSummary, error) {
	log := slogx.FromContext(ctx)

	task, err := s.ownedTask(ctx, s.Store, ownerID, taskID)
	if err != nil {
		return domain.Task{}, domain.RewardSummary{}, err
	}
	if task.Completed {
		return domain.Task{}, domain.RewardSummary{}, ErrTaskAlreadyCompleted
	}

	var (
		completed domain.Task
		reward    domain.RewardSummary
	)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		flipped, err := tx.Tasks().MarkTaskCompleted(ctx, task.ID, time.Now().UTC())
		if err != nil {
			return err
		}
		if !flipped {
			return ErrTaskAlreadyCompleted
		}

		xp := task.XP
		if xp < 0 {
			xp = 0
		}
		user, err := tx.Users().AwardCompletion(ctx, ownerID, xp)
		if err != nil {
			return err
		}

		completed, err = tx.Tasks().GetTaskByID(ctx, task.ID)
		if err != nil {
			return err
		}

		reward = domain.RewardSummary{ID: user.ID, XP: user.XP, Streak: user.Streak}
		return nil
	})
	if err != nil {
		return domain.Task{}, domain.RewardSummary{}, err
	}

	log.Info("task completed", "task_id", task.ID, "xp", task.XP)
	return completed, reward, nil
}

// ownedTask runs the id-validation, existence and ownership checks shared
// by every single-task operation. Existence is checked before ownership, so
// a foreign task yields ErrNotTaskOwner rather than ErrTaskNotFound.
func (s *TaskService) ownedTask(ctx context.Context, st store.Store, ownerID, taskID string) (domain.Task, error) {
	id, err := idx.Parse(taskID)
	if err != nil {
		return domain.Task{}, ErrInvalidTaskID
	}

	task, err := st.Tasks().GetTaskByID(ctx, id.String())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, ErrTaskNotFound
		}
		return domain.Task{}, err
	}

	if task.UserID != ownerID {
		return domain.Task{}, ErrNotTaskOwner
	}

	return task, nil
}

func applyPatch(task *domain.Task, patch TaskPatch) error {
	for key, raw := range patch {
		switch key {
		case "title":
			if err := json.Unmarshal(raw, &task.Title); err != nil {
				return ErrInvalidPatch
			}
		case "description":
			if err := json.Unmarshal(raw, &task.Description); err != nil {
				return ErrInvalidPatch
			}
		case "date":
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return ErrInvalidPatch
			}
			date, err := ParseDate(s)
			if err != nil {
				return ErrInvalidDate
			}
			task.Date = date
		case "time":
			if err := json.Unmarshal(raw, &task.Time); err != nil {
				return ErrInvalidPatch
			}
		case "xp":
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return ErrInvalidPatch
			}
			task.XP = CoerceXP(v)
		case "details":
			var details map[string]any
			if err := json.Unmarshal(raw, &details); err != nil {
				return ErrInvalidPatch
			}
			if details == nil {
				details = map[string]any{}
			}
			task.Details = details
		case "completed":
			var completed bool
			if err := json.Unmarshal(raw, &completed); err != nil {
				return ErrInvalidPatch
			}
			// Completion is one-way: a completed task never transitions
			// back, and this direct path grants no rewards.
			if completed && !task.Completed {
				task.Completed = true
				if task.CompletedAt == nil {
					now := time.Now().UTC()
					task.CompletedAt = &now
				}
			}
		default:
			// Not whitelisted; dropped without error.
		}
	}
	return nil
}
