package ui

import (
	"strings"
	"testing"

	"roomchat/pkg/chat"
)

func TestRenderHistory(t *testing.T) {
	history := []chat.Message{
		{Role: chat.RoleAssistant, Content: "Hello! How can I assist you with general questions?"},
		{Role: chat.RoleUser, Content: "Hi"},
	}

	out := renderHistory(history, 80)

	if !strings.Contains(out, "Assistant: Hello! How can I assist you with general questions?") {
		t.Errorf("Expected assistant message with prefix, got:\n%s", out)
	}
	if !strings.Contains(out, "You: Hi") {
		t.Errorf("Expected user message with prefix, got:\n%s", out)
	}
}

func TestRenderHistory_WrapsLongMessages(t *testing.T) {
	history := []chat.Message{
		{Role: chat.RoleUser, Content: strings.Repeat("word ", 20)},
	}

	out := renderHistory(history, 24)

	if !strings.Contains(out, "\n") {
		t.Errorf("Expected long message to wrap, got:\n%s", out)
	}
}

func TestRenderHistory_ErrorReplyKeepsAssistantPrefix(t *testing.T) {
	history := []chat.Message{
		{Role: chat.RoleAssistant, Content: chat.ErrorReplyPrefix + "timeout"},
	}

	out := renderHistory(history, 80)

	if !strings.Contains(out, "Assistant: "+chat.ErrorReplyPrefix+"timeout") {
		t.Errorf("Expected error reply rendered as assistant message, got:\n%s", out)
	}
}

func TestRenderHistory_ZeroWidth(t *testing.T) {
	if out := renderHistory([]chat.Message{{Role: chat.RoleUser, Content: "x"}}, 0); out != "" {
		t.Errorf("Expected empty output at zero width, got %q", out)
	}
}
