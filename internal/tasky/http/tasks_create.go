package http

import (
	"encoding/json"
	"net/http"

	"github.com/taskyhq/tasky/internal/tasky/service"
	"github.com/taskyhq/tasky/pkg/httpx"
	"github.com/taskyhq/tasky/pkg/slogx"
)

type TaskCreateHandler struct {
	TaskService *service.TaskService
}

type taskCreateRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Date        string         `json:"date"`
	Time        string         `json:"time"`
	XP          any            `json:"xp"` // coerced: non-numeric becomes 0
	Details     map[string]any `json:"details"`
}

// ServeHTTP godoc
//
//	@Summary		Create Task
//	@Description	Create a task for the authenticated user. Title and date are
//	@Description	required; everything else defaults.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		taskCreateRequest	true	"title, date, description?, time?, xp?, details?"
//	@Success		201		{object}	TaskResponse		"task"
//	@Failure		400		{object}	httpx.ErrorResponse	"missing title/date or unparseable date"
//	@Failure		401		{object}	httpx.ErrorResponse	"missing or invalid token"
//	@Failure		500		{object}	httpx.ErrorResponse	"internal server error"
//	@Router			/api/tasks [post].
func (h *TaskCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	owner, ok := identityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing token")
		return
	}

	var req taskCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.TaskService.Create(ctx, owner.ID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		XP:          req.XP,
		Details:     req.Details,
	})
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, TaskResponse{Task: task})
}
