package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/clintrovert/dday-labeler/internal/leader"
	"github.com/clintrovert/dday-labeler/pkg/types"
)

// Handler handles REST API requests in serve mode. Handlers only translate
// requests into trigger contexts; the pipeline itself lives in the
// orchestrator.
type Handler struct {
	orchestrator *leader.Orchestrator
	repository   string
	logger       *zap.Logger
}

// NewHandler creates a new REST handler.
func NewHandler(orchestrator *leader.Orchestrator, repository string, logger *zap.Logger) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		repository:   repository,
		logger:       logger,
	}
}

// SyncRequest represents a request to sync one pull request's label.
type SyncRequest struct {
	PRNumber int `json:"pr_number"`
}

// RunResponse represents the outcome of a labeler run.
type RunResponse struct {
	Status string `json:"status"`
}

// SyncPullRequest handles POST /labels/sync.
func (h *Handler) SyncPullRequest(w http.ResponseWriter, r *http.Request) {
	var req SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PRNumber <= 0 {
		http.Error(w, "pr_number is required", http.StatusBadRequest)
		return
	}

	trigger := types.TriggerContext{
		Event:      types.EventPullRequest,
		Repository: h.repository,
		PRNumber:   req.PRNumber,
	}

	if err := h.orchestrator.Run(r.Context(), trigger); err != nil {
		h.logger.Error("failed to sync pull request",
			zap.Int("pr_number", req.PRNumber),
			zap.Error(err),
		)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, RunResponse{Status: "synced"})
}

// Sweep handles POST /labels/sweep.
func (h *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	trigger := types.TriggerContext{
		Event:      types.EventWorkflowDispatch,
		Repository: h.repository,
	}

	if err := h.orchestrator.Run(r.Context(), trigger); err != nil {
		h.logger.Error("failed to sweep pull requests", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, RunResponse{Status: "swept"})
}

// RegisterRoutes registers REST API routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/labels/sync", h.SyncPullRequest)
	r.Post("/labels/sweep", h.Sweep)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
