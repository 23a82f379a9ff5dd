package http

import (
	"net/http"
	"time"

	"github.com/taskyhq/tasky/internal/tasky/store"
	"github.com/taskyhq/tasky/pkg/httpx"
	"github.com/taskyhq/tasky/pkg/slogx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check
//	@Description	Readiness probe verifying the database connection is alive.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	ReadinessResponse	"status, uptime, version"
//	@Failure		503	{object}	ReadinessResponse	"database unreachable"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := ReadinessResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}

		if err := st.Ping(r.Context()); err != nil {
			slogx.FromContext(r.Context()).Error("readiness ping failed", "err", err)
			response.Status = "unavailable"
			httpx.WriteJSON(w, http.StatusServiceUnavailable, response)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
