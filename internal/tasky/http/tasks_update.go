package http

import (
	"encoding/json"
	"net/http"

	"github.com/taskyhq/tasky/internal/tasky/service"
	"github.com/taskyhq/tasky/pkg/httpx"
	"github.com/taskyhq/tasky/pkg/slogx"
)

type TaskUpdateHandler struct {
	TaskService *service.TaskService
}

// ServeHTTP godoc
//
//	@Summary		Update Task
//	@Description	Patch a task. Only title, description, date, time, xp, details and
//	@Description	completed are applied; other keys are silently dropped. Setting
//	@Description	completed here grants no XP or streak.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"task id"
//	@Param			body	body		object				true	"partial task"
//	@Success		200		{object}	TaskResponse		"task"
//	@Failure		400		{object}	httpx.ErrorResponse	"malformed id or field value"
//	@Failure		401		{object}	httpx.ErrorResponse	"missing or invalid token"
//	@Failure		403		{object}	httpx.ErrorResponse	"task belongs to another user"
//	@Failure		404		{object}	httpx.ErrorResponse	"no task with that id"
//	@Failure		500		{object}	httpx.ErrorResponse	"internal server error"
//	@Router			/api/tasks/{id} [put].
func (h *TaskUpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	owner, ok := identityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing token")
		return
	}

	var patch service.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.TaskService.Update(ctx, owner.ID, r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, TaskResponse{Task: task})
}
