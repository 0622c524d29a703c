package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"vadimgribanov.com/holomentor/internal/clients"
	"vadimgribanov.com/holomentor/internal/models"
)

const (
	AnswerUnreachableAnswer = "I'm having trouble connecting to my knowledge base."
	AnswerFailedAnswer      = "I'm having trouble generating an answer right now."
	EmptyAnswer             = "I couldn't generate an answer."
)

var ErrEmptyMessage = errors.New("no message provided")

type MemoryClient interface {
	GetMemory(ctx context.Context, userID string) (models.Memory, error)
	SaveInteraction(ctx context.Context, userID, question, answer string, timestamp time.Time) error
}

type AnswerClient interface {
	Answer(ctx context.Context, question, userID string, memory models.Memory) (string, error)
}

// CoordinatorService runs one user message through memory lookup, answer
// generation and persistence. A failing step is replaced by its fallback value.
type CoordinatorService struct {
	memory MemoryClient
	answer AnswerClient
	now    func() time.Time
}

func NewCoordinatorService(memory MemoryClient, answer AnswerClient) *CoordinatorService {
	return &CoordinatorService{memory: memory, answer: answer, now: time.Now}
}

func (s *CoordinatorService) Process(ctx context.Context, message, userID string) (models.ProcessResult, error) {
	if strings.TrimSpace(message) == "" {
		return models.ProcessResult{}, ErrEmptyMessage
	}
	if strings.TrimSpace(userID) == "" {
		userID = ExtractUserID(message)
	}
	slog.InfoContext(ctx, "Processing message", "user_id", userID)

	memory := s.fetchMemory(ctx, userID)
	answer := s.generateAnswer(ctx, message, userID, memory)

	timestamp := s.now().UTC()
	// The exchange is stored even if the caller has gone away; the client timeout still bounds it.
	if err := s.memory.SaveInteraction(context.WithoutCancel(ctx), userID, message, answer, timestamp); err != nil {
		slog.ErrorContext(ctx, "Error saving interaction", "error", err, "user_id", userID)
	}

	return models.ProcessResult{
		UserID:    userID,
		Question:  message,
		Answer:    answer,
		Timestamp: timestamp,
		Status:    "success",
	}, nil
}

func (s *CoordinatorService) fetchMemory(ctx context.Context, userID string) models.Memory {
	memory, err := s.memory.GetMemory(ctx, userID)
	if err != nil {
		slog.WarnContext(ctx, "Error getting memory", "error", err, "user_id", userID)
		return models.EmptyMemory(userID)
	}
	return memory
}

func (s *CoordinatorService) generateAnswer(ctx context.Context, question, userID string, memory models.Memory) string {
	answer, err := s.answer.Answer(ctx, question, userID, memory)
	var statusErr *clients.StatusError
	switch {
	case errors.As(err, &statusErr):
		slog.ErrorContext(ctx, "Answer agent returned an error", "status", statusErr.StatusCode, "error", err)
		return AnswerFailedAnswer
	case err != nil:
		slog.ErrorContext(ctx, "Error contacting answer agent", "error", err)
		return AnswerUnreachableAnswer
	case strings.TrimSpace(answer) == "":
		return EmptyAnswer
	}
	return answer
}
