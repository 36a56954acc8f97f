package coach

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"
)

// Provider identifies the LLM provider to use.
type Provider string

// Provider constants
const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderOllama    Provider = "ollama"
	ProviderAnthropic Provider = "anthropic"

	// DefaultProvider is the default LLM provider
	DefaultProvider = ProviderGemini
)

// DefaultOllamaURL is the default URL for Ollama server
const DefaultOllamaURL = "http://localhost:11434"

// defaultModels maps each provider to the model used when none is configured.
var defaultModels = map[Provider]string{
	ProviderGemini:    "gemini-2.5-flash",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderOllama:    "llama3.2",
	ProviderAnthropic: "claude-3-5-haiku-latest",
}

// claudeMaxTokens caps replies; the Anthropic API requires a limit.
const claudeMaxTokens = 1024

// Config holds configuration for creating a chat model.
type Config struct {
	Provider Provider
	Model    string        // Empty uses the provider default
	APIKey   string        // Required for every provider except Ollama
	BaseURL  string        // Optional endpoint override
	Timeout  time.Duration // Per-call limit, zero means none
}

// DefaultModelForProvider returns the default model for p.
func DefaultModelForProvider(p Provider) string {
	return defaultModels[p]
}

// ValidateProvider checks if the given provider string is supported.
func ValidateProvider(p string) (Provider, error) {
	switch Provider(strings.ToLower(p)) {
	case ProviderGemini:
		return ProviderGemini, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderOllama:
		return ProviderOllama, nil
	case ProviderAnthropic:
		return ProviderAnthropic, nil
	default:
		return "", fmt.Errorf("unsupported provider: %s (supported: gemini, openai, ollama, anthropic)", p)
	}
}

// RequiresAPIKey reports whether p needs an API key to be usable.
func (p Provider) RequiresAPIKey() bool {
	return p != ProviderOllama
}

// NewChatModel creates a BaseChatModel for the configured provider.
func NewChatModel(ctx context.Context, cfg Config) (model.BaseChatModel, error) {
	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultModelForProvider(cfg.Provider)
	}
	if cfg.Provider.RequiresAPIKey() && cfg.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", cfg.Provider)
	}

	switch cfg.Provider {
	case ProviderGemini:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		return gemini.NewChatModel(ctx, &gemini.Config{
			Client: client,
			Model:  modelName,
		})

	case ProviderOpenAI:
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			Model:   modelName,
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
		})

	case ProviderOllama:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = DefaultOllamaURL
		}
		return ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: baseURL,
			Model:   modelName,
		})

	case ProviderAnthropic:
		c := &claude.Config{
			APIKey:    cfg.APIKey,
			Model:     modelName,
			MaxTokens: claudeMaxTokens,
		}
		if cfg.BaseURL != "" {
			c.BaseURL = &cfg.BaseURL
		}
		return claude.NewChatModel(ctx, c)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: gemini, openai, ollama, anthropic)", cfg.Provider)
	}
}
