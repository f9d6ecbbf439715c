package ai

import (
	"context"
	"time"

	"roomchat/pkg/chat"
	"roomchat/pkg/config"
)

// Completion adapts a Provider to the chat.Completer interface, carrying
// the configured model, sampling, and timeout along with every turn.
type Completion struct {
	provider    Provider
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration
}

// NewCompletion wraps a provider with per-turn request settings.
func NewCompletion(provider Provider, cfg config.ProviderConfig) *Completion {
	return &Completion{
		provider:    provider,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     time.Duration(cfg.APITimeoutSeconds) * time.Second,
	}
}

// Complete sends the ordered context and returns the single reply text.
func (c *Completion) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	req := ChatRequest{
		Model:    c.model,
		Messages: make([]Message, 0, len(messages)),
	}
	for _, msg := range messages {
		req.Messages = append(req.Messages, Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	temperature := c.temperature
	req.Temperature = &temperature
	if c.maxTokens > 0 {
		maxTokens := c.maxTokens
		req.MaxTokens = &maxTokens
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.provider.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// Ensure interface compliance
var _ chat.Completer = (*Completion)(nil)
