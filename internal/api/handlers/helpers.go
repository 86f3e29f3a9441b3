// Package handlers translates HTTP requests into domain service calls and
// maps domain errors to status codes.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mgarrido/chatforge/internal/api/ctxkeys"
)

// paginationParams holds parsed skip and limit values.
type paginationParams struct {
	Skip  int
	Limit int
}

const (
	defaultPaginationLimit = 100
	maxPaginationLimit     = 100
)

// getUserID retrieves the authenticated user id from context. Uses
// ctxkeys.UserID — same type+value as the AuthMiddleware injection.
func getUserID(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(ctxkeys.UserID).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id not found in context")
	}
	return userID, nil
}

// parsePaginationParams extracts and validates skip/limit query params.
func parsePaginationParams(r *http.Request) paginationParams {
	limit := defaultPaginationLimit
	skip := 0

	if lim, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && lim > 0 {
		if lim > maxPaginationLimit {
			lim = maxPaginationLimit
		}
		limit = lim
	}

	if s, err := strconv.Atoi(r.URL.Query().Get("skip")); err == nil && s >= 0 {
		skip = s
	}

	return paginationParams{Skip: skip, Limit: limit}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError writes a JSON error response with the given status code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
