package services

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/exp/slices"
	"vadimgribanov.com/holomentor/internal/adapters"
	"vadimgribanov.com/holomentor/internal/config"
	"vadimgribanov.com/holomentor/internal/vendors/anthropic"
)

// LLMClientProxy routes a completion request to the provider serving its model.
type LLMClientProxy struct {
	supportedModels map[string]config.LLMModel
	providers       map[string]ProviderClient
}

type ProviderClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	Provider() string
}

func NewLLMClientProxy() *LLMClientProxy {
	return &LLMClientProxy{supportedModels: make(map[string]config.LLMModel), providers: make(map[string]ProviderClient)}
}

// NewClientProxyFromConfig registers only the providers that have a credential.
func NewClientProxyFromConfig(cfg *config.Config) *LLMClientProxy {
	proxy := NewLLMClientProxy()
	answerCfg := cfg.Answer

	if key := answerCfg.APIKey(config.ProviderGroq); key != "" {
		baseURL := adapters.GroqBaseURL
		if answerCfg.BaseURL != "" {
			baseURL = answerCfg.BaseURL
		}
		proxy.RegisterProvider(adapters.NewOpenaiAdapter(adapters.NewOpenaiCompatibleClient(key, baseURL), config.ProviderGroq))
	}
	if key := answerCfg.APIKey(config.ProviderOpenAI); key != "" {
		proxy.RegisterProvider(adapters.NewOpenaiAdapter(adapters.NewOpenaiCompatibleClient(key, answerCfg.BaseURL), config.ProviderOpenAI))
	}
	if key := answerCfg.APIKey(config.ProviderAnthropic); key != "" {
		client := anthropic.NewClient(key)
		if answerCfg.BaseURL != "" {
			client = client.WithBaseURL(answerCfg.BaseURL)
		}
		proxy.RegisterProvider(adapters.NewAnthropicAdapter(client))
	}

	for _, model := range cfg.Models {
		proxy.RegisterAvailableModel(model)
	}
	return proxy
}

// IsClientRegistered reports whether modelId is known and its provider has a credential.
func (p *LLMClientProxy) IsClientRegistered(modelId string) bool {
	_, err := p.getClient(modelId)
	return err == nil
}

func (p *LLMClientProxy) ListModels() []string {
	models := make([]string, 0, len(p.supportedModels))
	for modelId := range p.supportedModels {
		models = append(models, modelId)
	}
	slices.Sort(models)
	return models
}

func (p *LLMClientProxy) RegisterProvider(client ProviderClient) {
	p.providers[client.Provider()] = client
}

func (p *LLMClientProxy) RegisterAvailableModel(modelConfig config.LLMModel) {
	p.supportedModels[modelConfig.ModelId] = modelConfig
}

func (p *LLMClientProxy) getClient(modelId string) (ProviderClient, error) {
	if _, ok := p.supportedModels[modelId]; !ok {
		return nil, fmt.Errorf("client with modelId %s not found", modelId)
	}
	if _, ok := p.providers[p.supportedModels[modelId].Provider]; !ok {
		return nil, fmt.Errorf("provider with name %s not found", p.supportedModels[modelId].Provider)
	}

	return p.providers[p.supportedModels[modelId].Provider], nil
}

func (p *LLMClientProxy) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	client, err := p.getClient(request.Model)
	if err != nil {
		return openai.ChatCompletionResponse{}, err
	}
	return client.CreateChatCompletion(ctx, request)
}
