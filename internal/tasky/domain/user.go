package domain

import "time"

// User is an account holder. XP and Streak are mutated only by the task
// completion transaction; XP never decreases.
type User struct {
	ID           string
	Name         string
	Email        string // stored lower-cased and trimmed, unique
	PasswordHash string // bcrypt encoded, never serialized to clients
	XP           int64
	Streak       int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the projection of a user that is safe to return to clients.
type PublicUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	XP     int64  `json:"xp"`
	Streak int64  `json:"streak"`
}

// Public strips the password hash and other server-only fields.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		XP:     u.XP,
		Streak: u.Streak,
	}
}

// RewardSummary is the minimal user projection returned by task completion.
type RewardSummary struct {
	ID     string `json:"id"`
	XP     int64  `json:"xp"`
	Streak int64  `json:"streak"`
}
