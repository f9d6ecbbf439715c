package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText word-wraps text to the given display width. Words wider than
// the width are split at cell boundaries.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{""}
	}

	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var lines []string
	for _, raw := range strings.Split(normalized, "\n") {
		lines = append(lines, wrapLine(raw, width)...)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func wrapLine(line string, width int) []string {
	if strings.TrimSpace(line) == "" {
		return []string{""}
	}

	var lines []string
	var sb strings.Builder
	lineWidth := 0

	flush := func() {
		lines = append(lines, sb.String())
		sb.Reset()
		lineWidth = 0
	}

	for _, word := range strings.Fields(line) {
		for _, part := range splitByWidth(word, width) {
			partWidth := runewidth.StringWidth(part)
			if lineWidth > 0 && lineWidth+1+partWidth > width {
				flush()
			}
			if lineWidth > 0 {
				sb.WriteString(" ")
				lineWidth++
			}
			sb.WriteString(part)
			lineWidth += partWidth
		}
	}

	if lineWidth > 0 {
		flush()
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func splitByWidth(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	if text == "" {
		return []string{""}
	}

	var parts []string
	var sb strings.Builder
	currentWidth := 0

	for _, r := range text {
		runeWidth := runewidth.RuneWidth(r)
		if currentWidth+runeWidth > width && currentWidth > 0 {
			parts = append(parts, sb.String())
			sb.Reset()
			currentWidth = 0
		}
		sb.WriteRune(r)
		currentWidth += runeWidth
	}

	if sb.Len() > 0 {
		parts = append(parts, sb.String())
	}

	if len(parts) == 0 {
		return []string{""}
	}
	return parts
}

// truncateToWidth shortens text to fit width, adding an ellipsis when
// something was cut.
func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width <= 3 {
		return trimToWidth(text, width)
	}
	return trimToWidth(text, width-3) + "..."
}

func trimToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	var sb strings.Builder
	currentWidth := 0
	for _, r := range text {
		runeWidth := runewidth.RuneWidth(r)
		if currentWidth+runeWidth > width {
			break
		}
		sb.WriteRune(r)
		currentWidth += runeWidth
	}
	return sb.String()
}
