package api

import "errors"

// ErrMissingUserID is returned when no authenticated user id is present in
// the request context.
var ErrMissingUserID = errors.New("missing user_id in context")
