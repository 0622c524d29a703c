package adapters

import (
	"context"

	"github.com/sashabaranov/go-openai"
	"vadimgribanov.com/holomentor/internal/vendors/anthropic"
)

const anthropicDefaultMaxTokens = 1024

type AnthropicAdapter struct {
	client *anthropic.Client
}

func NewAnthropicAdapter(client *anthropic.Client) *AnthropicAdapter {
	return &AnthropicAdapter{client: client}
}

func (a *AnthropicAdapter) Provider() string {
	return "anthropic"
}

func (a *AnthropicAdapter) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	anthropicMessages := []anthropic.Message{}
	systemPrompt := ""
	for _, message := range request.Messages {
		if message.Role == openai.ChatMessageRoleSystem {
			systemPrompt = message.Content
			continue
		}
		anthropicMessages = append(anthropicMessages, anthropic.Message{
			Role:    message.Role,
			Content: message.Content,
		})
	}

	maxTokens := request.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}
	var temperature *float32
	if request.Temperature > 0 {
		temperature = &request.Temperature
	}

	response, err := a.client.CreateMessage(ctx, anthropic.CreateMessageRequest{
		System:      systemPrompt,
		Model:       request.Model,
		Messages:    anthropicMessages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return openai.ChatCompletionResponse{}, err
	}

	return openai.ChatCompletionResponse{
		ID:    response.ID,
		Model: response.Model,
		Choices: []openai.ChatCompletionChoice{
			{
				Message: openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: response.Text(),
				},
				FinishReason: openai.FinishReason(response.StopReason),
			},
		},
		Usage: openai.Usage{
			PromptTokens:     response.Usage.InputTokens,
			CompletionTokens: response.Usage.OutputTokens,
			TotalTokens:      response.Usage.InputTokens + response.Usage.OutputTokens,
		},
	}, nil
}
