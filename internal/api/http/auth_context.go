package httpapi

import "context"

type authContextKey string

const authUserKey authContextKey = "authUser"

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, authUserKey, userID)
}

func userIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(authUserKey).(string); ok {
		return v
	}
	return ""
}
