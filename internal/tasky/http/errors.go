package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskyhq/tasky/internal/tasky/service"
	"github.com/taskyhq/tasky/pkg/httpx"
)

// writeServiceError maps service-layer sentinel errors onto the HTTP error
// taxonomy. Anything unrecognized is an internal failure: logged with
// detail server-side, reported generically to the caller.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrMissingSignupFields),
		errors.Is(err, service.ErrMissingLoginFields),
		errors.Is(err, service.ErrTitleAndDateRequired),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidPatch),
		errors.Is(err, service.ErrInvalidTaskID):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrTaskAlreadyCompleted):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrNotTaskOwner):
		httpx.WriteError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrTaskNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())

	default:
		log.Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server error")
	}
}
