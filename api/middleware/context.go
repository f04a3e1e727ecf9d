package middleware

import "context"

type contextKey string

const ctxAdminUsername contextKey = "admin_username"

func AdminUsernameFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAdminUsername).(string); ok {
		return v
	}
	return ""
}

// WithAdminUsername injects the authenticated operator into the context.
func WithAdminUsername(ctx context.Context, username string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAdminUsername, username)
}
