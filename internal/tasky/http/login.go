package http

import (
	"encoding/json"
	"net/http"

	"github.com/taskyhq/tasky/internal/tasky/service"
	"github.com/taskyhq/tasky/pkg/httpx"
	"github.com/taskyhq/tasky/pkg/slogx"
)

type LoginHandler struct {
	AccountService *service.AccountService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP godoc
//
//	@Summary		Login
//	@Description	Exchange email and password for a fresh identity token. Unknown
//	@Description	email and wrong password return the same error body.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest		true	"email, password"
//	@Success		200		{object}	AuthResponse		"token, user"
//	@Failure		400		{object}	httpx.ErrorResponse	"validation failure or invalid credentials"
//	@Failure		500		{object}	httpx.ErrorResponse	"internal server error"
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.AccountService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
}
