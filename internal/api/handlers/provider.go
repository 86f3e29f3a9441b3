package handlers

import (
	"net/http"

	"github.com/mgarrido/chatforge/internal/infra/config"
	"github.com/mgarrido/chatforge/internal/infra/llm"
)

// ProviderHandler reports the configured LLM provider's reachability.
type ProviderHandler struct {
	cfg      *config.Config
	provider llm.Provider
}

// NewProviderHandler creates a ProviderHandler.
func NewProviderHandler(cfg *config.Config, provider llm.Provider) *ProviderHandler {
	return &ProviderHandler{cfg: cfg, provider: provider}
}

// ProviderStatusResponse is the response body for GET /api/v1/provider/status.
type ProviderStatusResponse struct {
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	Connected bool   `json:"connected"`
}

// Status handles GET /api/v1/provider/status. Connected reflects a live
// probe against the provider's model listing endpoint; it never errors,
// an unreachable provider just reads false.
func (h *ProviderHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProviderStatusResponse{
		Provider:  h.cfg.Provider,
		Model:     h.cfg.Model,
		Connected: h.provider.ValidateConnection(r.Context()),
	})
}
