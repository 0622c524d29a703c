package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"vadimgribanov.com/holomentor/internal/models"
)

const (
	FallbackMarker = "(Fallback mode)"

	ConnectionTroubleAnswer = "I'm having trouble connecting to my knowledge base. Please try again later."
	GenericTroubleAnswer    = "Sorry, I'm having trouble answering right now."

	contextHistoryLimit  = 3
	fallbackContextLimit = 100
)

type CompletionClient interface {
	IsClientRegistered(modelId string) bool
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// AnswerService turns a question plus memory into an answer. It never fails:
// every fault is converted into a user-facing string.
type AnswerService struct {
	client      CompletionClient
	model       string
	temperature float32
	maxTokens   int
}

func NewAnswerService(client CompletionClient, model string, temperature float32, maxTokens int) *AnswerService {
	return &AnswerService{
		client:      client,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Configured reports whether answers come from an LLM rather than the fallback.
func (s *AnswerService) Configured() bool {
	return s.client != nil && s.client.IsClientRegistered(s.model)
}

func (s *AnswerService) GenerateAnswer(ctx context.Context, question, userID string, memory *models.Memory) string {
	memoryContext := BuildContext(userID, memory)

	messages, err := renderPrompt(ctx, userID, question, memoryContext)
	if err != nil {
		slog.ErrorContext(ctx, "Error generating answer", "error", err)
		return GenericTroubleAnswer
	}

	if !s.Configured() {
		return FallbackAnswer(question, userID, memoryContext)
	}

	answer, err := s.complete(ctx, messages)
	if err != nil {
		slog.ErrorContext(ctx, "LLM API error", "error", err, "model", s.model)
		return ConnectionTroubleAnswer
	}
	return answer
}

func (s *AnswerService) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	response, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", errors.New("completion has no choices")
	}
	slog.DebugContext(ctx, "Completion received",
		"model", s.model,
		"prompt_tokens", response.Usage.PromptTokens,
		"completion_tokens", response.Usage.CompletionTokens,
	)
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// BuildContext summarizes memory for the prompt: interaction count plus the
// most recent question/answer pairs.
func BuildContext(userID string, memory *models.Memory) string {
	if memory == nil || len(memory.RecentInteractions) == 0 {
		return fmt.Sprintf("This is a new conversation with %s.", userID)
	}

	var contextParts []string
	if memory.TotalInteractions > 0 {
		contextParts = append(contextParts, fmt.Sprintf("I've spoken with %s %d times before.", userID, memory.TotalInteractions))
	}

	recent := memory.RecentInteractions
	if len(recent) > contextHistoryLimit {
		recent = recent[:contextHistoryLimit]
	}
	for _, interaction := range recent {
		contextParts = append(contextParts, "Q: "+interaction.Question, "A: "+interaction.Answer)
	}

	return strings.Join(contextParts, "\n")
}

func FallbackAnswer(question, userID, memoryContext string) string {
	return fmt.Sprintf("%s Hi %s, I see your question: '%s'. Memory: %s...",
		FallbackMarker, userID, question, truncateRunes(memoryContext, fallbackContextLimit))
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
