package http

import (
	"context"

	"github.com/taskyhq/tasky/internal/tasky/domain"
)

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

func contextWithIdentity(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, u)
}

// identityFromContext returns the resolved account attached by the auth
// gate. The second return is false when the gate did not run.
func identityFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKeyIdentity).(domain.User)
	return u, ok
}
