package http

import (
	"net/http"

	"github.com/taskyhq/tasky/internal/tasky/service"
	"github.com/taskyhq/tasky/pkg/httpx"
	"github.com/taskyhq/tasky/pkg/slogx"
)

type TaskCompleteHandler struct {
	TaskService *service.TaskService
}

// ServeHTTP godoc
//
//	@Summary		Complete Task
//	@Description	Mark a task completed, granting its XP to the owner and bumping
//	@Description	the streak by one. A task completes at most once; repeat calls
//	@Description	fail without touching the counters.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string				true	"task id"
//	@Success		200	{object}	CompleteResponse	"task, user{id, xp, streak}"
//	@Failure		400	{object}	httpx.ErrorResponse	"malformed id or already completed"
//	@Failure		401	{object}	httpx.ErrorResponse	"missing or invalid token"
//	@Failure		403	{object}	httpx.ErrorResponse	"task belongs to another user"
//	@Failure		404	{object}	httpx.ErrorResponse	"no task with that id"
//	@Failure		500	{object}	httpx.ErrorResponse	"internal server error"
//	@Router			/api/tasks/{id}/complete [post].
func (h *TaskCompleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	owner, ok := identityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing token")
		return
	}

	task, reward, err := h.TaskService.Complete(ctx, owner.ID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, CompleteResponse{Task: task, User: reward})
}
