package ui

import (
	"strings"

	"roomchat/pkg/ui/styles"
)

// renderRoomList renders the sidebar body: one room per line, the
// active room highlighted.
func renderRoomList(names []string, active string, width int) string {
	var sb strings.Builder
	sb.WriteString(styles.TitleStyle.Render(truncateToWidth("Rooms", width)))
	sb.WriteString("\n")

	for _, name := range names {
		sb.WriteString("\n")
		label := truncateToWidth(name, width)
		if name == active {
			sb.WriteString(styles.SelectedStyle.Render(label))
		} else {
			sb.WriteString(styles.TextStyle.Render(label))
		}
	}
	return sb.String()
}

// cycleRoom returns the room adjacent to active in creation order,
// wrapping around at either end. Step is +1 for next, -1 for previous.
func cycleRoom(names []string, active string, step int) string {
	if len(names) == 0 {
		return active
	}

	idx := -1
	for i, name := range names {
		if name == active {
			idx = i
			break
		}
	}
	if idx == -1 {
		return names[0]
	}

	next := (idx + step + len(names)) % len(names)
	return names[next]
}
