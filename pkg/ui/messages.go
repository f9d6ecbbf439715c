package ui

import (
	"strings"

	"roomchat/pkg/chat"
	"roomchat/pkg/ui/styles"
)

const (
	userPrefix      = "You: "
	assistantPrefix = "Assistant: "
)

// renderHistory renders a room's messages as wrapped, styled lines for
// the message viewport.
func renderHistory(messages []chat.Message, width int) string {
	if width <= 0 {
		return ""
	}

	var sb strings.Builder
	for i, msg := range messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(renderMessage(msg, width))
	}
	return sb.String()
}

func renderMessage(msg chat.Message, width int) string {
	prefix, prefixStyle, bodyStyle := messageStyles(msg)

	body := msg.Content
	lines := wrapText(prefix+body, width)
	if len(lines) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		if i == 0 && strings.HasPrefix(line, prefix) {
			sb.WriteString(prefixStyle.Render(prefix))
			sb.WriteString(bodyStyle.Render(strings.TrimPrefix(line, prefix)))
			continue
		}
		sb.WriteString(bodyStyle.Render(line))
	}
	return sb.String()
}

func messageStyles(msg chat.Message) (string, styleRenderer, styleRenderer) {
	switch msg.Role {
	case chat.RoleUser:
		return userPrefix, styles.UserStyle, styles.TextStyle
	default:
		// Completion failures are stored as assistant messages; show them
		// in the error color but keep the assistant prefix.
		if strings.HasPrefix(msg.Content, chat.ErrorReplyPrefix) {
			return assistantPrefix, styles.AssistantStyle, styles.ErrorStyle
		}
		return assistantPrefix, styles.AssistantStyle, styles.TextStyle
	}
}

// styleRenderer is the subset of lipgloss.Style used when rendering
// messages.
type styleRenderer interface {
	Render(...string) string
}
