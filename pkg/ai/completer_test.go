package ai

import (
	"context"
	"errors"
	"testing"

	"roomchat/pkg/chat"
	"roomchat/pkg/config"
)

type recordingProvider struct {
	lastReq ChatRequest
	reply   string
	err     error
}

func (p *recordingProvider) CreateChatCompletion(_ context.Context, req ChatRequest) (ChatResponse, error) {
	p.lastReq = req
	return ChatResponse{Content: p.reply}, p.err
}

func TestCompletion_Complete(t *testing.T) {
	provider := &recordingProvider{reply: "Hi there!"}
	completion := NewCompletion(provider, config.ProviderConfig{
		Model:             "gpt-4o",
		Temperature:       0.5,
		MaxTokens:         200,
		APITimeoutSeconds: 5,
	})

	reply, err := completion.Complete(context.Background(), []chat.Message{
		{Role: chat.RoleSystem, Content: "persona"},
		{Role: chat.RoleUser, Content: "Hello"},
	})
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}

	if reply != "Hi there!" {
		t.Errorf("Expected reply 'Hi there!', got %q", reply)
	}
	if provider.lastReq.Model != "gpt-4o" {
		t.Errorf("Expected model forwarded, got %q", provider.lastReq.Model)
	}
	if provider.lastReq.Temperature == nil || *provider.lastReq.Temperature != 0.5 {
		t.Errorf("Expected temperature 0.5 forwarded, got %v", provider.lastReq.Temperature)
	}
	if provider.lastReq.MaxTokens == nil || *provider.lastReq.MaxTokens != 200 {
		t.Errorf("Expected max tokens 200 forwarded, got %v", provider.lastReq.MaxTokens)
	}
	if len(provider.lastReq.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(provider.lastReq.Messages))
	}
	if provider.lastReq.Messages[0].Role != "system" {
		t.Errorf("Expected role string 'system', got %q", provider.lastReq.Messages[0].Role)
	}
}

func TestCompletion_ErrorPassthrough(t *testing.T) {
	provider := &recordingProvider{err: errors.New("timeout")}
	completion := NewCompletion(provider, config.ProviderConfig{Model: "gpt-4o"})

	_, err := completion.Complete(context.Background(), []chat.Message{
		{Role: chat.RoleUser, Content: "Hello"},
	})
	if err == nil || err.Error() != "timeout" {
		t.Errorf("Expected provider error passthrough, got %v", err)
	}
}
