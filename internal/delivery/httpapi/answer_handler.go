package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vadimgribanov.com/holomentor/internal/models"
)

type AnswerGenerator interface {
	GenerateAnswer(ctx context.Context, question, userID string, memory *models.Memory) string
	Configured() bool
}

type AnswerHandler struct {
	generator AnswerGenerator
	provider  string
}

// NewAnswerHandler takes the provider name reported by /health.
func NewAnswerHandler(generator AnswerGenerator, provider string) *AnswerHandler {
	return &AnswerHandler{generator: generator, provider: provider}
}

func (h *AnswerHandler) RegisterRoutes(r chi.Router) {
	r.Post("/answer", h.handleAnswer)
	r.Get("/health", h.handleHealth)
	r.Get("/test", h.handleTest)
}

// answerPayload holds memory_context undecoded so a malformed history
// degrades to a fresh conversation instead of failing the request.
type answerPayload struct {
	Question      string          `json:"question"`
	UserID        string          `json:"user_id"`
	MemoryContext json.RawMessage `json:"memory_context,omitempty"`
}

func (h *AnswerHandler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var payload answerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Question) == "" || strings.TrimSpace(payload.UserID) == "" {
		respondError(w, http.StatusBadRequest, "Missing question or user_id")
		return
	}

	answer := h.generator.GenerateAnswer(r.Context(), payload.Question, payload.UserID, decodeMemoryContext(r, payload.MemoryContext))

	respondJSON(w, http.StatusOK, models.AnswerResponse{
		Question:  payload.Question,
		Answer:    answer,
		UserID:    payload.UserID,
		Timestamp: time.Now().UTC(),
		Status:    "success",
	})
}

func decodeMemoryContext(r *http.Request, raw json.RawMessage) *models.Memory {
	if len(raw) == 0 {
		return nil
	}
	var memory *models.Memory
	if err := json.Unmarshal(raw, &memory); err != nil {
		slog.WarnContext(r.Context(), "Ignoring unreadable memory context", "error", err)
		return nil
	}
	return memory
}

func (h *AnswerHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	configured := h.generator.Configured()
	provider := h.provider
	if !configured {
		provider = "fallback"
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"agent":          "answer",
		"llm_configured": configured,
		"provider":       provider,
		"timestamp":      time.Now().UTC(),
	})
}

func (h *AnswerHandler) handleTest(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"message":   "Answer Agent is working!",
		"agent":     "answer",
		"timestamp": time.Now().UTC(),
	})
}
