package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/application.yaml"

// PathFromEnv returns CONFIG_PATH, or DefaultPath when it is unset.
func PathFromEnv() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return DefaultPath
}

const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type LLMModel struct {
	Name     string `yaml:"name"`
	ModelId  string `yaml:"model_id"`
	Provider string `yaml:"provider"`
}

type Config struct {
	Memory   MemoryConfig   `yaml:"memory"`
	Answer   AnswerConfig   `yaml:"answer"`
	Master   MasterConfig   `yaml:"master"`
	Telegram TelegramConfig `yaml:"telegram"`
	Models   []LLMModel     `yaml:"models"`
}

type MemoryConfig struct {
	Addr               string `yaml:"addr" env:"MEMORY_ADDR"`
	DatabasePath       string `yaml:"database_path" env:"DATABASE_PATH"`
	DefaultMemoryLimit int    `yaml:"default_memory_limit" env:"DEFAULT_MEMORY_LIMIT"`
	DefaultSearchLimit int    `yaml:"default_search_limit" env:"DEFAULT_SEARCH_LIMIT"`
}

type AnswerConfig struct {
	Addr        string  `yaml:"addr" env:"ANSWER_ADDR"`
	Model       string  `yaml:"model" env:"LLM_MODEL"`
	BaseURL     string  `yaml:"base_url" env:"LLM_BASE_URL"`
	Temperature float32 `yaml:"temperature" env:"LLM_TEMPERATURE"`
	MaxTokens   int     `yaml:"max_tokens" env:"LLM_MAX_TOKENS"`

	// Credentials are only read from the environment.
	GroqAPIKey      string `yaml:"-" env:"GROQ_API_KEY"`
	OpenAIAPIKey    string `yaml:"-" env:"OPENAI_API_KEY"`
	AnthropicAPIKey string `yaml:"-" env:"ANTHROPIC_API_KEY"`
}

type MasterConfig struct {
	Addr           string        `yaml:"addr" env:"MASTER_ADDR"`
	MemoryURL      string        `yaml:"memory_url" env:"MEMORY_AGENT_URL"`
	AnswerURL      string        `yaml:"answer_url" env:"ANSWER_AGENT_URL"`
	HTTPTimeout    time.Duration `yaml:"http_timeout" env:"HTTP_TIMEOUT"`
	HealthSchedule string        `yaml:"health_schedule" env:"HEALTH_SCHEDULE"`
	CORSOrigins    []string      `yaml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
}

type TelegramConfig struct {
	Token       string        `yaml:"-" env:"TELEGRAM_TOKEN"`
	MasterURL   string        `yaml:"master_url" env:"MASTER_AGENT_URL"`
	PollTimeout time.Duration `yaml:"poll_timeout" env:"TELEGRAM_POLL_TIMEOUT"`
}

// Default mirrors the ports and limits the agents have always used.
func Default() *Config {
	return &Config{
		Memory: MemoryConfig{
			Addr:               ":5001",
			DatabasePath:       "data/memory.db",
			DefaultMemoryLimit: 10,
			DefaultSearchLimit: 20,
		},
		Answer: AnswerConfig{
			Addr:        ":5002",
			Model:       "llama3-8b-8192",
			Temperature: 0.7,
			MaxTokens:   500,
		},
		Master: MasterConfig{
			Addr:           ":5000",
			MemoryURL:      "http://localhost:5001",
			AnswerURL:      "http://localhost:5002",
			HTTPTimeout:    30 * time.Second,
			HealthSchedule: "@every 30s",
			CORSOrigins:    []string{"*"},
		},
		Telegram: TelegramConfig{
			MasterURL:   "http://localhost:5000",
			PollTimeout: 10 * time.Second,
		},
		Models: []LLMModel{
			{Name: "Llama 3 8B", ModelId: "llama3-8b-8192", Provider: ProviderGroq},
		},
	}
}

// LoadConfig reads the YAML file (a missing file keeps the defaults) and then
// applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	config := Default()

	file, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	default:
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.Master.HTTPTimeout <= 0 {
		return fmt.Errorf("invalid http timeout: %s", c.Master.HTTPTimeout)
	}
	if c.Memory.DefaultMemoryLimit < 0 || c.Memory.DefaultSearchLimit < 0 {
		return errors.New("default limits must not be negative")
	}
	for _, model := range c.Models {
		switch model.Provider {
		case ProviderGroq, ProviderOpenAI, ProviderAnthropic:
		default:
			return fmt.Errorf("model %s has unknown provider %q", model.ModelId, model.Provider)
		}
	}
	return nil
}

// ModelConfig returns the configured entry for the answer model.
func (c *Config) ModelConfig() (LLMModel, bool) {
	for _, model := range c.Models {
		if model.ModelId == c.Answer.Model {
			return model, true
		}
	}
	return LLMModel{}, false
}

// APIKey returns the credential for a provider, empty if not configured.
func (c AnswerConfig) APIKey(provider string) string {
	switch provider {
	case ProviderGroq:
		return c.GroqAPIKey
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	default:
		return ""
	}
}
