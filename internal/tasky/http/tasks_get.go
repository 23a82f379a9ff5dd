package http

import (
	"net/http"

	"github.com/taskyhq/tasky/internal/tasky/service"
	"github.com/taskyhq/tasky/pkg/httpx"
	"github.com/taskyhq/tasky/pkg/slogx"
)

type TaskGetHandler struct {
	TaskService *service.TaskService
}

// ServeHTTP godoc
//
//	@Summary		Get Task
//	@Description	Fetch a single task by id. Only the owner may read it.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string				true	"task id"
//	@Success		200	{object}	TaskResponse		"task"
//	@Failure		400	{object}	httpx.ErrorResponse	"malformed task id"
//	@Failure		401	{object}	httpx.ErrorResponse	"missing or invalid token"
//	@Failure		403	{object}	httpx.ErrorResponse	"task belongs to another user"
//	@Failure		404	{object}	httpx.ErrorResponse	"no task with that id"
//	@Failure		500	{object}	httpx.ErrorResponse	"internal server error"
//	@Router			/api/tasks/{id} [get].
func (h *TaskGetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	owner, ok := identityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing token")
		return
	}

	task, err := h.TaskService.GetByID(ctx, owner.ID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, TaskResponse{Task: task})
}
