package http

import (
	"net/http"

	"github.com/taskyhq/tasky/pkg/httpx"
)

// LivezHandler godoc
//
//	@Summary		Liveness Check
//	@Description	Unauthenticated liveness probe. Always 200 while the process runs.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	LivenessResponse	"ok, message"
//	@Router			/ [get].
func LivezHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, LivenessResponse{
			OK:      true,
			Message: "Tasky backend running",
		})
	}
}
