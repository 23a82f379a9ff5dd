package sqlite

import (
	"context"
	"time"

	"github.com/taskyhq/tasky/internal/tasky/domain"
	"github.com/taskyhq/tasky/internal/tasky/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, name, email, password_hash, xp, streak, created_at, updated_at`

func (r *usersRepo) scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u                    domain.User
		createdMs, updatedMs int64
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.XP, &u.Streak, &createdMs, &updatedMs)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.CreatedAt = fromMillis(createdMs)
	u.UpdatedAt = fromMillis(updatedMs)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return r.scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return r.scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := toMillis(time.Now())
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, xp, streak, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.XP, u.Streak, now, now)
	return mapConflict(err)
}

func (r *usersRepo) AwardCompletion(ctx context.Context, userID string, xp int64) (domain.User, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET xp = xp + ?, streak = streak + 1, updated_at = ? WHERE id = ?`,
		xp, toMillis(time.Now()), userID)
	if err != nil {
		return domain.User{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.User{}, err
	}
	if affected == 0 {
		return domain.User{}, store.ErrNotFound
	}

	return r.GetUserByID(ctx, userID)
}
