// Shared context helpers for API middleware and tests.
package api

import (
	"context"

	"github.com/mgarrido/chatforge/internal/api/ctxkeys"
)

// WithUserID adds the authenticated user id to the request context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return ctxkeys.WithValue(ctx, ctxkeys.UserID, userID)
}

// GetUserID retrieves the authenticated user id from context.
func GetUserID(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(ctxkeys.UserID).(string)
	if !ok || userID == "" {
		return "", ErrMissingUserID
	}
	return userID, nil
}
