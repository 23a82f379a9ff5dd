package http

import "github.com/taskyhq/tasky/internal/tasky/domain"

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Task domain.Task `json:"task"`
}

// TaskListResponse wraps a task listing.
type TaskListResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

// CompleteResponse is returned by task completion: the completed task plus
// the owner's updated reward counters.
type CompleteResponse struct {
	Task domain.Task          `json:"task"`
	User domain.RewardSummary `json:"user"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// LivenessResponse is the unauthenticated health body at GET /.
type LivenessResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// ReadinessResponse reports whether the service can reach its database.
type ReadinessResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
