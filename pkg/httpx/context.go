package httpx

import "context"

type ctxKey string

// CtxKeyUserID carries the authenticated user id (the token subject).
const CtxKeyUserID ctxKey = "user_id"

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyUserID).(string)
	return v, ok && v != ""
}
