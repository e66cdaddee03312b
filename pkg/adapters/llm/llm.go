// Package llm builds langchaingo chat models for the supported providers.
package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/skylark/pkg/domain"
	"github.com/aretw0/skylark/pkg/ports"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

type Provider string

const (
	ProviderGroq      Provider = "groq"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderOllama    Provider = "ollama"
	ProviderGemini    Provider = "gemini"
)

// GroqBaseURL is Groq's OpenAI-compatible endpoint.
const GroqBaseURL = "https://api.groq.com/openai/v1"

// Config selects and authenticates the model provider.
type Config struct {
	Provider  Provider `yaml:"provider" json:"provider"`
	Model     string   `yaml:"model" json:"model"`
	BaseURL   string   `yaml:"base_url" json:"base_url"`
	APIKeyEnv string   `yaml:"api_key_env" json:"api_key_env"`

	Temperature float64 `yaml:"temperature" json:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" json:"max_tokens"`

	// APIKey takes precedence over APIKeyEnv. It is never read from files.
	APIKey string `yaml:"-" json:"-"`
}

// DefaultConfig targets Llama 3.3 70B on Groq.
func DefaultConfig() Config {
	return Config{
		Provider:  ProviderGroq,
		Model:     "llama-3.3-70b-versatile",
		APIKeyEnv: "GROQ_API_KEY",
	}
}

func (c Config) apiKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if c.APIKeyEnv != "" {
		return os.Getenv(c.APIKeyEnv)
	}
	return ""
}

// CallOptions returns the per-call options implied by cfg.
func (c Config) CallOptions() []llms.CallOption {
	var opts []llms.CallOption
	if c.Temperature != 0 {
		opts = append(opts, llms.WithTemperature(c.Temperature))
	}
	if c.MaxTokens != 0 {
		opts = append(opts, llms.WithMaxTokens(c.MaxTokens))
	}
	return opts
}

// New creates the chat model described by cfg.
func New(ctx context.Context, cfg Config) (ports.ChatModel, error) {
	switch cfg.Provider {
	case ProviderGroq, ProviderOpenAI:
		opts := []openai.Option{openai.WithModel(cfg.Model)}
		baseURL := cfg.BaseURL
		if baseURL == "" && cfg.Provider == ProviderGroq {
			baseURL = GroqBaseURL
		}
		if baseURL != "" {
			opts = append(opts, openai.WithBaseURL(baseURL))
		}
		if key := cfg.apiKey(); key != "" {
			opts = append(opts, openai.WithToken(key))
		}
		return openai.New(opts...)
	case ProviderAnthropic:
		opts := []anthropic.Option{anthropic.WithModel(cfg.Model)}
		if key := cfg.apiKey(); key != "" {
			opts = append(opts, anthropic.WithToken(key))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		return anthropic.New(opts...)
	case ProviderOllama:
		opts := []ollama.Option{ollama.WithModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}
		return ollama.New(opts...)
	case ProviderGemini:
		model := cfg.Model
		if model == "" {
			model = googleai.DefaultOptions().DefaultModel
		}
		opts := []googleai.Option{googleai.WithDefaultModel(model)}
		if key := cfg.apiKey(); key != "" {
			opts = append(opts, googleai.WithAPIKey(key))
		}
		return googleai.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

// ToLLMTool converts a domain tool definition into a langchaingo function tool.
func ToLLMTool(t domain.Tool) llms.Tool {
	return llms.Tool{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		},
	}
}
