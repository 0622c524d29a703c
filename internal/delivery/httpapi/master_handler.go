package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vadimgribanov.com/holomentor/internal/health"
	"vadimgribanov.com/holomentor/internal/models"
	"vadimgribanov.com/holomentor/internal/services"
)

type Coordinator interface {
	Process(ctx context.Context, message, userID string) (models.ProcessResult, error)
}

type HealthReporter interface {
	Snapshot() map[string]health.CollaboratorStatus
}

type MasterHandler struct {
	coordinator Coordinator
	monitor     HealthReporter
}

func NewMasterHandler(coordinator Coordinator, monitor HealthReporter) *MasterHandler {
	return &MasterHandler{coordinator: coordinator, monitor: monitor}
}

func (h *MasterHandler) RegisterRoutes(r chi.Router) {
	r.Post("/process", h.handleProcess)
	r.Get("/health", h.handleHealth)
}

func (h *MasterHandler) handleProcess(w http.ResponseWriter, r *http.Request) {
	var payload models.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.coordinator.Process(r.Context(), payload.Message, payload.UserID)
	switch {
	case errors.Is(err, services.ErrEmptyMessage):
		respondError(w, http.StatusBadRequest, "No message provided")
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Error processing message", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *MasterHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	collaborators := map[string]health.CollaboratorStatus{}
	if h.monitor != nil {
		collaborators = h.monitor.Snapshot()
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":        "healthy",
		"agent":         "master",
		"timestamp":     time.Now().UTC(),
		"collaborators": collaborators,
	})
}
