package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mgarrido/chatforge/internal/domain/project"
)

// PromptHandler handles system prompt requests. Prompts hang off a project
// and keep creation order; that order is what the context assembler replays
// at the start of every conversation turn.
type PromptHandler struct {
	service *project.Service
}

// NewPromptHandler creates a PromptHandler.
func NewPromptHandler(service *project.Service) *PromptHandler {
	return &PromptHandler{service: service}
}

// CreatePromptRequest is the request body for POST /api/v1/projects/{id}/prompts.
type CreatePromptRequest struct {
	Content string `json:"content"`
}

// PromptListResponse is the response body for GET /api/v1/projects/{id}/prompts.
type PromptListResponse struct {
	Prompts []*project.Prompt `json:"prompts"`
	Total   int               `json:"total"`
}

// CreatePrompt handles POST /api/v1/projects/{id}/prompts.
func (h *PromptHandler) CreatePrompt(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreatePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	p, err := h.service.CreatePrompt(r.Context(), chi.URLParam(r, "id"), userID, req.Content)
	if err != nil {
		writeProjectError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// ListPrompts handles GET /api/v1/projects/{id}/prompts. Prompts come back
// in creation order.
func (h *PromptHandler) ListPrompts(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	prompts, total, err := h.service.ListPrompts(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeProjectError(w, err)
		return
	}
	if prompts == nil {
		prompts = []*project.Prompt{}
	}
	writeJSON(w, http.StatusOK, PromptListResponse{Prompts: prompts, Total: total})
}

// DeletePrompt handles DELETE /api/v1/prompts/{id}. Ownership is verified
// through the parent project.
func (h *PromptHandler) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.service.DeletePrompt(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeProjectError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
