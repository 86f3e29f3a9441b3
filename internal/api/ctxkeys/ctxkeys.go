// Package ctxkeys holds the shared context keys for the API layer. It is a
// leaf package so api, middleware, and handlers can all import it without
// cycles.
package ctxkeys

import "context"

// Key is the named type for all API context keys. A named type means
// context.Value lookups cannot collide with plain string keys from other
// packages.
type Key string

// UserID is the context key for the authenticated user. Injected by
// AuthMiddleware from JWT claims, read by every protected handler.
const UserID Key = "user_id"

// WithValue adds a ctxkeys.Key value to the context.
func WithValue(ctx context.Context, key Key, value string) context.Context {
	return context.WithValue(ctx, key, value)
}
