package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/taskyhq/tasky/internal/tasky/domain"
	"github.com/taskyhq/tasky/internal/tasky/store"
)

type tasksRepo struct {
	db dbtx
}

const taskColumns = `id, user_id, title, description, date, time, xp, completed, completed_at, details, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (domain.Task, error) {
	var (
		t                            domain.Task
		dateMs, createdMs, updatedMs int64
		completedAt                  sql.NullInt64
		details                      string
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description,
		&dateMs, &t.Time, &t.XP, &t.Completed,
		&completedAt, &details, &createdMs, &updatedMs,
	)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}

	t.Date = fromMillis(dateMs)
	t.CompletedAt = mapNullMillisPtr(completedAt)
	t.CreatedAt = fromMillis(createdMs)
	t.UpdatedAt = fromMillis(updatedMs)

	t.Details, err = unmarshalDetails(details)
	if err != nil {
		return domain.Task{}, err
	}

	return t, nil
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	details, err := marshalDetails(t.Details)
	if err != nil {
		return err
	}

	now := toMillis(time.Now())
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, description, date, time, xp, completed, completed_at, details, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Title, t.Description,
		toMillis(t.Date), t.Time, t.XP, t.Completed,
		mapOptionalMillis(t.CompletedAt), details, now, now)
	return mapConflict(err)
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

func (r *tasksRepo) ListTasksByUser(ctx context.Context, userID string, f store.TaskFilter) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?`
	args := []any{userID}

	if f.From != nil {
		query += ` AND date >= ?`
		args = append(args, toMillis(*f.From))
	}
	if f.To != nil {
		query += ` AND date <= ?`
		args = append(args, toMillis(*f.To))
	}
	query += ` ORDER BY date ASC, time ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	details, err := marshalDetails(t.Details)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks
		 SET title = ?, description = ?, date = ?, time = ?, xp = ?,
		     completed = ?, completed_at = ?, details = ?, updated_at = ?
		 WHERE id = ?`,
		t.Title, t.Description, toMillis(t.Date), t.Time, t.XP,
		t.Completed, mapOptionalMillis(t.CompletedAt), details, toMillis(time.Now()),
		t.ID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *tasksRepo) MarkTaskCompleted(ctx context.Context, id string, at time.Time) (bool, error) {
	// Conditional flip: only an uncompleted row is touched, so concurrent
	// completions race on this single write and exactly one wins.
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET completed = 1, completed_at = ?, updated_at = ?
		 WHERE id = ? AND completed = 0`,
		toMillis(at), toMillis(at), id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
