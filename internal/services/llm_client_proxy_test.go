package services

import (
	"context"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vadimgribanov.com/holomentor/internal/config"
)

type stubProvider struct {
	name  string
	calls int
}

func (p *stubProvider) Provider() string { return p.name }

func (p *stubProvider) CreateChatCompletion(_ context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	p.calls++
	return openai.ChatCompletionResponse{Model: request.Model}, nil
}

func TestProxyRoutesByModel(t *testing.T) {
	proxy := NewLLMClientProxy()
	groq := &stubProvider{name: config.ProviderGroq}
	proxy.RegisterProvider(groq)
	proxy.RegisterAvailableModel(config.LLMModel{ModelId: "llama3-8b-8192", Provider: config.ProviderGroq})
	proxy.RegisterAvailableModel(config.LLMModel{ModelId: "gpt-4o-mini", Provider: config.ProviderOpenAI})

	assert.True(t, proxy.IsClientRegistered("llama3-8b-8192"))
	assert.False(t, proxy.IsClientRegistered("gpt-4o-mini"))
	assert.False(t, proxy.IsClientRegistered("unknown"))
	assert.Equal(t, []string{"gpt-4o-mini", "llama3-8b-8192"}, proxy.ListModels())

	response, err := proxy.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{Model: "llama3-8b-8192"})
	require.NoError(t, err)
	assert.Equal(t, "llama3-8b-8192", response.Model)
	assert.Equal(t, 1, groq.calls)

	_, err = proxy.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{Model: "gpt-4o-mini"})
	assert.Error(t, err)
}

func TestProxyFromConfigRegistersKeyedProviders(t *testing.T) {
	cfg := config.Default()
	cfg.Models = append(cfg.Models, config.LLMModel{ModelId: "claude-3-5-haiku-latest", Provider: config.ProviderAnthropic})

	proxy := NewClientProxyFromConfig(cfg)
	assert.False(t, proxy.IsClientRegistered("llama3-8b-8192"))

	cfg.Answer.AnthropicAPIKey = "key"
	proxy = NewClientProxyFromConfig(cfg)
	assert.True(t, proxy.IsClientRegistered("claude-3-5-haiku-latest"))
	assert.False(t, proxy.IsClientRegistered("llama3-8b-8192"))
}
