package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"vadimgribanov.com/holomentor/internal/models"
	"vadimgribanov.com/holomentor/internal/services"
)

type MemoryStore interface {
	ParseTimestamp(raw string) (time.Time, error)
	SaveInteraction(ctx context.Context, userID, question, answer string, timestamp time.Time) error
	GetMemory(ctx context.Context, userID string, limit int) models.Memory
	ListUsers(ctx context.Context) []models.User
	Search(ctx context.Context, query string, limit int) ([]models.Interaction, error)
}

type MemoryHandler struct {
	store       MemoryStore
	memoryLimit int
	searchLimit int
}

func NewMemoryHandler(store MemoryStore, memoryLimit, searchLimit int) *MemoryHandler {
	return &MemoryHandler{
		store:       store,
		memoryLimit: memoryLimit,
		searchLimit: searchLimit,
	}
}

func (h *MemoryHandler) RegisterRoutes(r chi.Router) {
	r.Post("/save_interaction", h.handleSaveInteraction)
	r.Get("/get_memory/{userID}", h.handleGetMemory)
	r.Get("/users", h.handleListUsers)
	r.Get("/search", h.handleSearch)
	r.Get("/health", h.handleHealth)
}

func (h *MemoryHandler) handleSaveInteraction(w http.ResponseWriter, r *http.Request) {
	var payload models.SaveInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	timestamp, err := h.store.ParseTimestamp(payload.Timestamp)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.store.SaveInteraction(r.Context(), payload.UserID, payload.Question, payload.Answer, timestamp)
	switch {
	case errors.Is(err, services.ErrMissingFields):
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Failed to save interaction")
		return
	}

	respondJSON(w, http.StatusOK, models.StatusResponse{Status: "success", Message: "Interaction saved"})
}

func (h *MemoryHandler) handleGetMemory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	// chi routes on the raw path when it holds escapes such as %2F.
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(userID); err == nil {
			userID = unescaped
		}
	}
	respondJSON(w, http.StatusOK, h.store.GetMemory(r.Context(), userID, queryLimit(r, h.memoryLimit)))
}

func (h *MemoryHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.UsersResponse{Users: h.store.ListUsers(r.Context())})
}

func (h *MemoryHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	results, err := h.store.Search(r.Context(), r.URL.Query().Get("q"), queryLimit(r, h.searchLimit))
	if errors.Is(err, services.ErrEmptyQuery) {
		respondError(w, http.StatusBadRequest, "No search query provided")
		return
	}
	respondJSON(w, http.StatusOK, models.SearchResponse{Results: results})
}

func (h *MemoryHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"agent":     "memory",
		"timestamp": time.Now().UTC(),
	})
}
