package adapters

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

const GroqBaseURL = "https://api.groq.com/openai/v1"

// OpenaiAdapter serves every OpenAI-compatible backend; provider names which one.
type OpenaiAdapter struct {
	client   *openai.Client
	provider string
}

func NewOpenaiAdapter(client *openai.Client, provider string) *OpenaiAdapter {
	return &OpenaiAdapter{client: client, provider: provider}
}

// NewOpenaiCompatibleClient builds a go-openai client; an empty baseURL keeps
// the library default.
func NewOpenaiCompatibleClient(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}

func (a *OpenaiAdapter) Provider() string {
	return a.provider
}

func (a *OpenaiAdapter) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return a.client.CreateChatCompletion(ctx, request)
}
