package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mgarrido/chatforge/internal/domain/chat"
	"github.com/mgarrido/chatforge/internal/domain/project"
)

// SessionHandler handles session and message history requests.
type SessionHandler struct {
	projects *project.Service
	sessions *chat.SessionStore
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(projects *project.Service, sessions *chat.SessionStore) *SessionHandler {
	return &SessionHandler{projects: projects, sessions: sessions}
}

// SessionListResponse is the response body for GET /api/v1/projects/{id}/sessions.
type SessionListResponse struct {
	Sessions []*chat.Session `json:"sessions"`
	Total    int             `json:"total"`
}

// MessageListResponse is the response body for GET /api/v1/sessions/{id}/messages.
type MessageListResponse struct {
	Messages []*chat.Message `json:"messages"`
	Total    int             `json:"total"`
}

// ListSessions handles GET /api/v1/projects/{id}/sessions, newest first.
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	projectID := chi.URLParam(r, "id")
	if _, err := h.projects.Find(r.Context(), projectID, userID); err != nil {
		writeProjectError(w, err)
		return
	}

	sessions, err := h.sessions.ListSessions(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	if sessions == nil {
		sessions = []*chat.Session{}
	}
	writeJSON(w, http.StatusOK, SessionListResponse{Sessions: sessions, Total: len(sessions)})
}

// ListMessages handles GET /api/v1/sessions/{id}/messages. Messages come
// back in chronological order, system entries included.
func (h *SessionHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sessionID := chi.URLParam(r, "id")
	if _, err := h.sessions.FindForUser(r.Context(), sessionID, userID); err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, chat.ErrSessionNotFound.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	messages, err := h.sessions.ListMessages(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	if messages == nil {
		messages = []*chat.Message{}
	}
	writeJSON(w, http.StatusOK, MessageListResponse{Messages: messages, Total: len(messages)})
}
