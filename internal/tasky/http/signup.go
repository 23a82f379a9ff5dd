package http

import (
	"encoding/json"
	"net/http"

	"github.com/taskyhq/tasky/internal/tasky/service"
	"github.com/taskyhq/tasky/pkg/httpx"
	"github.com/taskyhq/tasky/pkg/slogx"
)

type SignupHandler struct {
	AccountService *service.AccountService
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP godoc
//
//	@Summary		Create Account
//	@Description	Register a new account. The email is unique case-insensitively; the
//	@Description	response carries an identity token plus the public user projection.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		signupRequest			true	"name, email, password"
//	@Success		201		{object}	AuthResponse			"token, user"
//	@Failure		400		{object}	httpx.ErrorResponse		"validation failure or email already registered"
//	@Failure		500		{object}	httpx.ErrorResponse		"internal server error"
//	@Router			/api/auth/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.AccountService.Signup(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, AuthResponse{Token: token, User: user})
}
