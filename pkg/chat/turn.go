package chat

import (
	"context"
	"log/slog"
	"strings"
)

// ErrorReplyPrefix is prepended to completion failures before they are
// stored as assistant messages.
const ErrorReplyPrefix = "Sorry, I encountered an error: "

// ContextMode selects how much conversation context is sent per turn.
type ContextMode string

const (
	// ContextFullHistory sends an optional system message followed by the
	// room's entire history.
	ContextFullHistory ContextMode = "full"

	// ContextLatestOnly sends just the newest user message with no system
	// message and no history.
	ContextLatestOnly ContextMode = "latest"
)

// ParseContextMode maps a config string to a ContextMode, defaulting to
// full history.
func ParseContextMode(s string) ContextMode {
	if ContextMode(strings.ToLower(strings.TrimSpace(s))) == ContextLatestOnly {
		return ContextLatestOnly
	}
	return ContextFullHistory
}

// Completer maps an ordered message context to one generated reply.
// Implemented by the ai providers and by test stubs.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, messages []Message) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, messages []Message) (string, error) {
	return f(ctx, messages)
}

// TurnController runs one user turn against the active room: append the
// user message, assemble context, call the completer, append the reply.
// Turns are strictly sequential; the caller must not overlap Submit calls
// on the same store.
type TurnController struct {
	completer    Completer
	mode         ContextMode
	systemPrompt string
}

// NewTurnController creates a controller with full-history context and no
// system prompt.
func NewTurnController(completer Completer) *TurnController {
	return &TurnController{completer: completer, mode: ContextFullHistory}
}

// SetContextMode changes the context assembly strategy.
func (tc *TurnController) SetContextMode(mode ContextMode) {
	tc.mode = mode
}

// SetSystemPrompt sets the persona instruction prepended in full-history
// mode. Blank disables it.
func (tc *TurnController) SetSystemPrompt(prompt string) {
	tc.systemPrompt = strings.TrimSpace(prompt)
}

// Submit runs one turn for the store's active room and returns the
// messages appended during the turn, in order.
//
// A missing credential fails with ErrMissingCredential before any state
// changes. Blank input is a silent no-op. Completion failures do not fail
// the turn: the error text is stored as an assistant message so the
// conversation shows what happened.
func (tc *TurnController) Submit(ctx context.Context, store *Store, userText string) ([]Message, error) {
	if !store.HasCredential() {
		return nil, ErrMissingCredential
	}

	userText = strings.TrimSpace(userText)
	if userText == "" {
		return nil, nil
	}

	roomName := store.ActiveRoom()
	userMsg := Message{Role: RoleUser, Content: userText}
	if err := store.AppendMessage(roomName, userMsg); err != nil {
		return nil, err
	}

	messages, err := tc.buildContext(store, roomName, userMsg)
	if err != nil {
		return nil, err
	}

	slog.Debug("turn_submit",
		"room", roomName,
		"context_mode", string(tc.mode),
		"context_messages", len(messages),
	)

	reply, err := tc.completer.Complete(ctx, messages)

	var assistantMsg Message
	if err != nil {
		// The failure becomes part of the conversation instead of
		// propagating. Future turns will carry this text as context.
		slog.Warn("turn_completion_failed", "room", roomName, "error", err)
		assistantMsg = Message{Role: RoleAssistant, Content: ErrorReplyPrefix + err.Error()}
	} else {
		assistantMsg = Message{Role: RoleAssistant, Content: reply}
	}

	if err := store.AppendMessage(roomName, assistantMsg); err != nil {
		return nil, err
	}

	return []Message{userMsg, assistantMsg}, nil
}

func (tc *TurnController) buildContext(store *Store, roomName string, userMsg Message) ([]Message, error) {
	if tc.mode == ContextLatestOnly {
		return []Message{userMsg}, nil
	}

	history, err := store.History(roomName)
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(history)+1)
	if tc.systemPrompt != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: tc.systemPrompt})
	}
	messages = append(messages, history...)
	return messages, nil
}
