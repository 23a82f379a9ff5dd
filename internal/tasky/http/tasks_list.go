package http

import (
	"net/http"

	"github.com/taskyhq/tasky/internal/tasky/service"
	"github.com/taskyhq/tasky/pkg/httpx"
	"github.com/taskyhq/tasky/pkg/slogx"
)

type TaskListHandler struct {
	TaskService *service.TaskService
}

// ServeHTTP godoc
//
//	@Summary		List Tasks
//	@Description	List the authenticated user's tasks, optionally filtered by a
//	@Description	single calendar day (?date=YYYY-MM-DD) or an inclusive range
//	@Description	(?from=...&to=...). Sorted by date, then time.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			date	query		string				false	"calendar day (UTC)"
//	@Param			from	query		string				false	"inclusive lower bound"
//	@Param			to		query		string				false	"inclusive upper bound"
//	@Success		200		{object}	TaskListResponse	"tasks"
//	@Failure		400		{object}	httpx.ErrorResponse	"unparseable date in filter"
//	@Failure		401		{object}	httpx.ErrorResponse	"missing or invalid token"
//	@Failure		500		{object}	httpx.ErrorResponse	"internal server error"
//	@Router			/api/tasks [get].
func (h *TaskListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	owner, ok := identityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing token")
		return
	}

	query := r.URL.Query()
	tasks, err := h.TaskService.List(ctx, owner.ID, service.ListFilter{
		Date: query.Get("date"),
		From: query.Get("from"),
		To:   query.Get("to"),
	})
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, TaskListResponse{Tasks: tasks})
}
