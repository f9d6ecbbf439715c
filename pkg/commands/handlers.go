package commands

import (
	"fmt"
	"strings"
)

// NewRoomHandler creates a chat room and switches to it.
type NewRoomHandler struct{}

func (h *NewRoomHandler) Name() string        { return "/new" }
func (h *NewRoomHandler) Description() string { return "Create a chat room: /new <name>" }

func (h *NewRoomHandler) Execute(args string, ctx *Context) *Result {
	name := strings.TrimSpace(args)
	if name == "" {
		return &Result{Title: "Error", Content: "Usage: /new <name>"}
	}
	if err := ctx.Store.CreateRoom(name); err != nil {
		return &Result{Title: "Error", Content: err.Error(), Error: err}
	}
	return &Result{Title: "Rooms", Content: fmt.Sprintf("Created room %q", name)}
}

// SwitchHandler changes the active room.
type SwitchHandler struct{}

func (h *SwitchHandler) Name() string        { return "/switch" }
func (h *SwitchHandler) Description() string { return "Switch to a room: /switch <name>" }

func (h *SwitchHandler) Execute(args string, ctx *Context) *Result {
	name := strings.TrimSpace(args)
	if name == "" {
		return &Result{Title: "Error", Content: "Usage: /switch <name>"}
	}
	if err := ctx.Store.SelectRoom(name); err != nil {
		return &Result{Title: "Error", Content: err.Error(), Error: err}
	}
	return &Result{Title: "Rooms", Content: fmt.Sprintf("Switched to %q", name)}
}

// ClearHandler resets the active room's history.
type ClearHandler struct{}

func (h *ClearHandler) Name() string        { return "/clear" }
func (h *ClearHandler) Description() string { return "Clear the current room" }

func (h *ClearHandler) Execute(_ string, ctx *Context) *Result {
	room := ctx.Store.ActiveRoom()
	if err := ctx.Store.ClearRoom(room); err != nil {
		return &Result{Title: "Error", Content: err.Error(), Error: err}
	}
	return &Result{Title: "Rooms", Content: fmt.Sprintf("Cleared %q", room)}
}

// RoomsHandler lists rooms in creation order.
type RoomsHandler struct{}

func (h *RoomsHandler) Name() string        { return "/rooms" }
func (h *RoomsHandler) Description() string { return "List chat rooms" }

func (h *RoomsHandler) Execute(_ string, ctx *Context) *Result {
	var sb strings.Builder
	for _, name := range ctx.Store.ListRooms() {
		if name == ctx.Store.ActiveRoom() {
			sb.WriteString("* ")
		} else {
			sb.WriteString("  ")
		}
		sb.WriteString(name)
		sb.WriteString("\n")
	}
	return &Result{Title: "Rooms", Content: strings.TrimRight(sb.String(), "\n")}
}

// KeyHandler asks the UI to open the credential prompt.
type KeyHandler struct{}

func (h *KeyHandler) Name() string        { return "/key" }
func (h *KeyHandler) Description() string { return "Set the API key" }

func (h *KeyHandler) Execute(_ string, _ *Context) *Result {
	return &Result{Title: "API Key", Action: ActionPromptCredential}
}

// HelpHandler lists the available commands.
type HelpHandler struct {
	dispatcher *Dispatcher
}

func (h *HelpHandler) Name() string        { return "/help" }
func (h *HelpHandler) Description() string { return "Show available commands" }

func (h *HelpHandler) Execute(_ string, _ *Context) *Result {
	var sb strings.Builder
	for _, handler := range h.dispatcher.Handlers() {
		sb.WriteString(fmt.Sprintf("%-10s %s\n", handler.Name(), handler.Description()))
	}
	return &Result{Title: "Help", Content: strings.TrimRight(sb.String(), "\n")}
}

// QuitHandler exits the application.
type QuitHandler struct{}

func (h *QuitHandler) Name() string        { return "/quit" }
func (h *QuitHandler) Description() string { return "Exit roomchat" }

func (h *QuitHandler) Execute(_ string, _ *Context) *Result {
	return &Result{Title: "Quit", Action: ActionQuit}
}
