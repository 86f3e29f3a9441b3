package handlers

import (
	"net/http"

	"github.com/mgarrido/chatforge/internal/domain/activity"
)

// ActivityHandler serves the caller's activity log.
type ActivityHandler struct {
	recorder *activity.Recorder
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(recorder *activity.Recorder) *ActivityHandler {
	return &ActivityHandler{recorder: recorder}
}

// ActivityListResponse is the response body for GET /api/v1/activity.
type ActivityListResponse struct {
	Events []*activity.Event `json:"events"`
	Total  int               `json:"total"`
}

// ListActivity handles GET /api/v1/activity, newest first.
func (h *ActivityHandler) ListActivity(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	events, err := h.recorder.ListByUser(r.Context(), userID, parsePaginationParams(r).Limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list activity")
		return
	}
	if events == nil {
		events = []*activity.Event{}
	}
	writeJSON(w, http.StatusOK, ActivityListResponse{Events: events, Total: len(events)})
}
