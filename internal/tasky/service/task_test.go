package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskyhq/tasky/internal/tasky/domain"
	"github.com/taskyhq/tasky/internal/tasky/store"
	"github.com/taskyhq/tasky/internal/tasky/store/drivers/sqlite"
	"github.com/taskyhq/tasky/pkg/idx"
)

func newTaskService(t *testing.T) (*TaskService, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())

	return &TaskService{Store: st}, st
}

func seedUser(t *testing.T, st store.Store, name string) domain.User {
	t.Helper()

	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "unused",
		XP:           0,
		Streak:       1,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), user))
	return user
}

func rawPatch(t *testing.T, fields map[string]any) TaskPatch {
	t.Helper()

	patch := TaskPatch{}
	for k, v := range fields {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		patch[k] = raw
	}
	return patch
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()
	svc, st := newTaskService(t)
	owner := seedUser(t, st, "owner")

	t.Run("persists a new uncompleted task", func(t *testing.T) {
		task, err := svc.Create(ctx, owner.ID, CreateTaskInput{
			Title:       "Write report",
			Description: "quarterly numbers",
			Date:        "2026-03-14",
			Time:        "09:30",
			XP:          float64(25),
			Details:     map[string]any{"priority": "high"},
		})
		require.NoError(t, err)
		require.NotEmpty(t, task.ID)
		require.Equal(t, owner.ID, task.UserID)
		require.Equal(t, "Write report", task.Title)
		require.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), task.Date)
		require.EqualValues(t, 25, task.XP)
		require.False(t, task.Completed)
		require.Nil(t, task.CompletedAt)
		require.Equal(t, map[string]any{"priority": "high"}, task.Details)
	})

	t.Run("requires title and date", func(t *testing.T) {
		_, err := svc.Create(ctx, owner.ID, CreateTaskInput{Date: "2026-03-14"})
		require.ErrorIs(t, err, ErrTitleAndDateRequired)

		_, err = svc.Create(ctx, owner.ID, CreateTaskInput{Title: "no date"})
		require.ErrorIs(t, err, ErrTitleAndDateRequired)
	})

	t.Run("rejects unparseable dates", func(t *testing.T) {
		_, err := svc.Create(ctx, owner.ID, CreateTaskInput{Title: "x", Date: "14/03/2026"})
		require.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("coerces awkward xp values", func(t *testing.T) {
		task, err := svc.Create(ctx, owner.ID, CreateTaskInput{Title: "a", Date: "2026-01-01", XP: "5.0"})
		require.NoError(t, err)
		require.EqualValues(t, 5, task.XP)

		task, err = svc.Create(ctx, owner.ID, CreateTaskInput{Title: "b", Date: "2026-01-01", XP: float64(-10)})
		require.NoError(t, err)
		require.EqualValues(t, 0, task.XP)

		task, err = svc.Create(ctx, owner.ID, CreateTaskInput{Title: "c", Date: "2026-01-01"})
		require.NoError(t, err)
		require.EqualValues(t, 0, task.XP)
	})

	t.Run("defaults details to an empty object", func(t *testing.T) {
		task, err := svc.Create(ctx, owner.ID, CreateTaskInput{Title: "d", Date: "2026-01-01"})
		require.NoError(t, err)
		require.NotNil(t, task.Details)
		require.Empty(t, task.Details)
	})
}

func TestListTasks(t *testing.T) {
	ctx := context.Background()
	svc, st := newTaskService(t)
	owner := seedUser(t, st, "lister")
	other := seedUser(t, st, "bystander")

	mk := func(title, date, clock string) domain.Task {
		task, err := svc.Create(ctx, owner.ID, CreateTaskInput{Title: title, Date: date, Time: clock})
		require.NoError(t, err)
		return task
	}

	mk("late", "2026-05-10T23:59:59.999Z", "23:59")
	mk("early", "2026-05-10", "08:00")
	mk("before", "2026-05-09T23:59:59.999Z", "")
	mk("after", "2026-05-11T00:00:00Z", "")

	_, err := svc.Create(ctx, other.ID, CreateTaskInput{Title: "foreign", Date: "2026-05-10"})
	require.NoError(t, err)

	t.Run("no filter returns only the owner's tasks", func(t *testing.T) {
		tasks, err := svc.List(ctx, owner.ID, ListFilter{})
		require.NoError(t, err)
		require.Len(t, tasks, 4)
		for _, task := range tasks {
			require.Equal(t, owner.ID, task.UserID)
		}
	})

	t.Run("single day window is millisecond-inclusive", func(t *testing.T) {
		tasks, err := svc.List(ctx, owner.ID, ListFilter{Date: "2026-05-10"})
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		require.Equal(t, "early", tasks[0].Title)
		require.Equal(t, "late", tasks[1].Title)
	})

	t.Run("range bounds are inclusive", func(t *testing.T) {
		tasks, err := svc.List(ctx, owner.ID, ListFilter{
			From: "2026-05-09T23:59:59.999Z",
			To:   "2026-05-11T00:00:00Z",
		})
		require.NoError(t, err)
		require.Len(t, tasks, 4)
	})

	t.Run("open-ended range", func(t *testing.T) {
		tasks, err := svc.List(ctx, owner.ID, ListFilter{From: "2026-05-11"})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		require.Equal(t, "after", tasks[0].Title)
	})

	t.Run("sorted by date then time", func(t *testing.T) {
		tasks, err := svc.List(ctx, owner.ID, ListFilter{})
		require.NoError(t, err)
		require.Equal(t, []string{"before", "early", "late", "after"}, []string{
			tasks[0].Title, tasks[1].Title, tasks[2].Title, tasks[3].Title,
		})
	})

	t.Run("no matches yields an empty slice", func(t *testing.T) {
		tasks, err := svc.List(ctx, owner.ID, ListFilter{Date: "2030-01-01"})
		require.NoError(t, err)
		require.NotNil(t, tasks)
		require.Empty(t, tasks)
	})

	t.Run("bad filter dates are rejected", func(t *testing.T) {
		_, err := svc.List(ctx, owner.ID, ListFilter{Date: "not-a-date"})
		require.ErrorIs(t, err, ErrInvalidDate)

		_, err = svc.List(ctx, owner.ID, ListFilter{From: "nope"})
		require.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestTaskOwnership(t *testing.T) {
	ctx := context.Background()
	svc, st := newTaskService(t)
	owner := seedUser(t, st, "holder")
	intruder := seedUser(t, st, "intruder")

	task, err := svc.Create(ctx, owner.ID, CreateTaskInput{Title: "mine", Date: "2026-02-02"})
	require.NoError(t, err)

	t.Run("malformed id", func(t *testing.T) {
		_, err := svc.GetByID(ctx, owner.ID, "not-a-ulid")
		require.ErrorIs(t, err, ErrInvalidTaskID)
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		_, err := svc.GetByID(ctx, owner.ID, idx.New().String())
		require.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("foreign tasks are not exposed", func(t *testing.T) {
		_, err := svc.GetByID(ctx, intruder.ID, task.ID)
		require.ErrorIs(t, err, ErrNotTaskOwner)

		_, err = svc.Update(ctx, intruder.ID, task.ID, rawPatch(t, map[string]any{"title": "stolen"}))
		require.ErrorIs(t, err, ErrNotTaskOwner)

		err = svc.Delete(ctx, intruder.ID, task.ID)
		require.ErrorIs(t, err, ErrNotTaskOwner)

		_, _, err = svc.Complete(ctx, intruder.ID, task.ID)
		require.ErrorIs(t, err, ErrNotTaskOwner)
	})

	t.Run("owner still sees the task untouched", func(t *testing.T) {
		got, err := svc.GetByID(ctx, owner.ID, task.ID)
		require.NoError(t, err)
		require.Equal(t, "mine", got.Title)
		require.False(t, got.Completed)
	})
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	svc, st := newTaskService(t)
	owner := seedUser(t, st, "editor")

	task, err := svc.Create(ctx, owner.ID, CreateTaskInput{
		Title: "draft", Date: "2026-04-01", XP: float64(10),
	})
	require.NoError(t, err)

	t.Run("applies whitelisted fields", func(t *testing.T) {
		updated, err := svc.Update(ctx, owner.ID, task.ID, rawPatch(t, map[string]any{
			"title":       "final",
			"description": "ready for review",
			"date":        "2026-04-02",
			"time":        "14:00",
			"xp":          30,
			"details":     map[string]any{"tag": "work"},
		}))
		require.NoError(t, err)
		require.Equal(t, "final", updated.Title)
		require.Equal(t, "ready for review", updated.Description)
		require.Equal(t, time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), updated.Date)
		require.Equal(t, "14:00", updated.Time)
		require.EqualValues(t, 30, updated.XP)
		require.Equal(t, map[string]any{"tag": "work"}, updated.Details)
	})

	t.Run("unknown keys are dropped silently", func(t *testing.T) {
		updated, err := svc.Update(ctx, owner.ID, task.ID, rawPatch(t, map[string]any{
			"user":    "someone-else",
			"id":      "new-id",
			"hacked":  true,
			"title":   "kept",
			"created": "2020-01-01",
		}))
		require.NoError(t, err)
		require.Equal(t, "kept", updated.Title)
		require.Equal(t, owner.ID, updated.UserID)
		require.Equal(t, task.ID, updated.ID)
	})

	t.Run("xp patch is coerced like create", func(t *testing.T) {
		updated, err := svc.Update(ctx, owner.ID, task.ID, rawPatch(t, map[string]any{"xp": "not a number"}))
		require.NoError(t, err)
		require.EqualValues(t, 0, updated.XP)

		updated, err = svc.Update(ctx, owner.ID, task.ID, rawPatch(t, map[string]any{"xp": 7.9}))
		require.NoError(t, err)
		require.EqualValues(t, 7, updated.XP)
	})

	t.Run("wrong value types are rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, owner.ID, task.ID, rawPatch(t, map[string]any{"title": 42}))
		require.ErrorIs(t, err, ErrInvalidPatch)

		_, err = svc.Update(ctx, owner.ID, task.ID, rawPatch(t, map[string]any{"date": "garbage"}))
		require.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("completed is one-way and grants nothing", func(t *testing.T) {
		updated, err := svc.Update(ctx, owner.ID, task.ID, rawPatch(t, map[string]any{"completed": true}))
		require.NoError(t, err)
		require.True(t, updated.Completed)
		require.NotNil(t, updated.CompletedAt)

		// No reward through the update path.
		user, err := st.Users().GetUserByID(ctx, owner.ID)
		require.NoError(t, err)
		require.EqualValues(t, 0, user.XP)
		require.EqualValues(t, 1, user.Streak)

		// Attempting to flip back is ignored.
		updated, err = svc.Update(ctx, owner.ID, task.ID, rawPatch(t, map[string]any{"completed": false}))
		require.NoError(t, err)
		require.True(t, updated.Completed)
	})
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	svc, st := newTaskService(t)
	owner := seedUser(t, st, "remover")

	task, err := svc.Create(ctx, owner.ID, CreateTaskInput{Title: "ephemeral", Date: "2026-06-06"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner.ID, task.ID))

	_, err = svc.GetByID(ctx, owner.ID, task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)

	err = svc.Delete(ctx, owner.ID, task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestCompleteTask(t *testing.T) {
	ctx := context.Background()
	svc, st := newTaskService(t)
	owner := seedUser(t, st, "finisher")

	task, err := svc.Create(ctx, owner.ID, CreateTaskInput{
		Title: "ship it", Date: "2026-07-07", XP: float64(20),
	})
	require.NoError(t, err)

	t.Run("first completion awards xp and streak", func(t *testing.T) {
		completed, reward, err := svc.Complete(ctx, owner.ID, task.ID)
		require.NoError(t, err)
		require.True(t, completed.Completed)
		require.NotNil(t, completed.CompletedAt)
		require.Equal(t, owner.ID, reward.ID)
		require.EqualValues(t, 20, reward.XP)
		require.EqualValues(t, 2, reward.Streak)
	})

	t.Run("second completion is rejected without awarding", func(t *testing.T) {
		_, _, err := svc.Complete(ctx, owner.ID, task.ID)
		require.ErrorIs(t, err, ErrTaskAlreadyCompleted)

		user, err := st.Users().GetUserByID(ctx, owner.ID)
		require.NoError(t, err)
		require.EqualValues(t, 20, user.XP)
		require.EqualValues(t, 2, user.Streak)
	})

	t.Run("rewards accumulate across tasks", func(t *testing.T) {
		next, err := svc.Create(ctx, owner.ID, CreateTaskInput{
			Title: "follow up", Date: "2026-07-08", XP: float64(5),
		})
		require.NoError(t, err)

		_, reward, err := svc.Complete(ctx, owner.ID, next.ID)
		require.NoError(t, err)
		require.EqualValues(t, 25, reward.XP)
		require.EqualValues(t, 3, reward.Streak)
	})

	t.Run("zero-xp tasks still bump the streak", func(t *testing.T) {
		free, err := svc.Create(ctx, owner.ID, CreateTaskInput{Title: "free", Date: "2026-07-09"})
		require.NoError(t, err)

		_, reward, err := svc.Complete(ctx, owner.ID, free.ID)
		require.NoError(t, err)
		require.EqualValues(t, 25, reward.XP)
		require.EqualValues(t, 4, reward.Streak)
	})

	t.Run("flag set through update blocks the reward path", func(t *testing.T) {
		flagged, err := svc.Create(ctx, owner.ID, CreateTaskInput{
			Title: "flagged", Date: "2026-07-10", XP: float64(50),
		})
		require.NoError(t, err)

		_, err = svc.Update(ctx, owner.ID, flagged.ID, rawPatch(t, map[string]any{"completed": true}))
		require.NoError(t, err)

		_, _, err = svc.Complete(ctx, owner.ID, flagged.ID)
		require.ErrorIs(t, err, ErrTaskAlreadyCompleted)

		user, err := st.Users().GetUserByID(ctx, owner.ID)
		require.NoError(t, err)
		require.EqualValues(t, 25, user.XP)
	})
}
