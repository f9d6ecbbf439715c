package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"roomchat/pkg/ai"
	"roomchat/pkg/config"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

func init() {
	ai.RegisterProvider(ai.ProviderInfo{
		Type:        ai.ProviderOpenRouter,
		Name:        "OpenRouter",
		Description: "Access 400+ LLM models through OpenRouter API",
	}, NewOpenRouterProvider)
}

// OpenRouterProvider implements the Provider interface using the OpenRouter API.
type OpenRouterProvider struct {
	client             openai.Client
	defaultModel       string
	defaultTemperature float64
	defaultMaxTokens   int
}

// NewOpenRouterProvider creates a new OpenRouter provider from settings.
func NewOpenRouterProvider(settings ai.ProviderSettings) (ai.Provider, error) {
	cfg := settings.Config
	if strings.TrimSpace(settings.Credential) != "" {
		cfg.APIKey = settings.Credential
	}
	httpClient := &http.Client{Timeout: time.Duration(cfg.APITimeoutSeconds) * time.Second}
	return newOpenRouterProviderWithHTTPClient(cfg, httpClient)
}

func newOpenRouterProviderWithHTTPClient(cfg config.ProviderConfig, httpClient *http.Client) (*OpenRouterProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		slog.Debug("openrouter_provider_missing_key")
		return nil, fmt.Errorf("openrouter api_key is required")
	}
	if strings.TrimSpace(cfg.APIURL) == "" {
		return nil, fmt.Errorf("openrouter api_url is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("openrouter model is required")
	}
	if cfg.APITimeoutSeconds <= 0 {
		return nil, fmt.Errorf("openrouter api_timeout_seconds must be positive")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.APIURL),
	}

	if strings.TrimSpace(cfg.HTTPReferer) != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.HTTPReferer))
	}
	if strings.TrimSpace(cfg.XTitle) != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.XTitle))
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.APITimeoutSeconds) * time.Second}
	}
	opts = append(opts, option.WithHTTPClient(httpClient))

	client := openai.NewClient(opts...)

	slog.Debug("openrouter_provider_ready",
		"api_url", cfg.APIURL,
		"model", cfg.Model,
		"timeout_seconds", cfg.APITimeoutSeconds,
	)
	return &OpenRouterProvider{
		client:             client,
		defaultModel:       cfg.Model,
		defaultTemperature: cfg.Temperature,
		defaultMaxTokens:   cfg.MaxTokens,
	}, nil
}

// CreateChatCompletion sends a chat completion request.
func (p *OpenRouterProvider) CreateChatCompletion(ctx context.Context, req ai.ChatRequest) (ai.ChatResponse, error) {
	params, err := buildChatParams(req, p.defaultModel, p.defaultTemperature, p.defaultMaxTokens)
	if err != nil {
		return ai.ChatResponse{}, err
	}

	slog.Debug("openrouter_chat_request",
		"model", string(params.Model),
		"message_count", len(req.Messages),
	)
	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return ai.ChatResponse{}, err
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	return ai.ChatResponse{
		Content: content,
		Model:   resp.Model,
	}, nil
}

// Ensure interface compliance
var _ ai.Provider = (*OpenRouterProvider)(nil)
