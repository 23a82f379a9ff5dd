package http

import (
	"net/http"

	"github.com/taskyhq/tasky/pkg/httpx"
	"github.com/taskyhq/tasky/pkg/slogx"
)

// withIdentity resolves the verified token subject to an account and
// attaches it to the request context. A token that outlives its account
// (deleted after issuance) fails here with 401.
func (r *Router) withIdentity() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()
			log := slogx.FromContext(ctx)

			userID, ok := httpx.UserIDFromContext(ctx)
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			user, err := r.AccountService.GetUserByID(ctx, userID)
			if err != nil {
				log.Warn("token subject did not resolve to an account", "user_id", userID)
				httpx.WriteError(w, http.StatusUnauthorized, "user not found")
				return
			}

			next.ServeHTTP(w, req.WithContext(contextWithIdentity(ctx, user)))
		})
	}
}
