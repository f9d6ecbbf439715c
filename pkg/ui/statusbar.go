package ui

import (
	"fmt"
	"strings"

	"roomchat/pkg/ui/styles"
)

// renderStatusBar renders the bottom status line: active room, provider
// and model, credential state, and a pending indicator while a turn is
// in flight.
func renderStatusBar(room, provider, model string, hasCredential, pending bool, width int) string {
	keyState := "key: missing"
	if hasCredential {
		keyState = "key: set"
	}

	parts := []string{room, fmt.Sprintf("%s/%s", provider, model), keyState}
	if pending {
		parts = append(parts, "thinking...")
	}

	text := truncateToWidth(strings.Join(parts, " | "), width)
	return styles.StatusBarStyle.Width(width).Render(text)
}
