package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mgarrido/chatforge/internal/domain/chat"
	"github.com/mgarrido/chatforge/internal/domain/project"
)

// ChatHandler handles conversation turns.
type ChatHandler struct {
	orchestrator *chat.Orchestrator
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(orchestrator *chat.Orchestrator) *ChatHandler {
	return &ChatHandler{orchestrator: orchestrator}
}

// ChatRequest is the request body for POST /api/v1/chat. SessionID is
// optional: empty or stale ids start a fresh session.
type ChatRequest struct {
	ProjectID string `json:"project_id"`
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// ChatResponse is the response body for POST /api/v1/chat. SessionID may
// differ from the one requested when a stale id was silently replaced.
type ChatResponse struct {
	SessionID        string        `json:"session_id"`
	Message          *chat.Message `json:"message"`
	AssistantMessage *chat.Message `json:"assistant_message"`
}

// Chat handles POST /api/v1/chat: one full conversation turn.
//
// Response codes:
//   - 200 OK: turn completed (including contained provider failures)
//   - 400 Bad Request: invalid JSON, missing project_id, or empty message
//   - 404 Not Found: project missing or not owned by the caller
//   - 500 Internal Server Error: persistence failure
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProjectID == "" {
		writeError(w, http.StatusBadRequest, "project_id is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message must not be empty")
		return
	}

	turn, err := h.orchestrator.GenerateResponse(r.Context(), req.ProjectID, userID, req.Message, req.SessionID)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			writeError(w, http.StatusNotFound, project.ErrNotFound.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "chat turn failed")
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		SessionID:        turn.Session.ID,
		Message:          turn.UserMessage,
		AssistantMessage: turn.AssistantMessage,
	})
}
