// Package commands routes slash commands typed into the chat input to
// their handlers.
package commands

import "strings"

// ResultAction tells the UI what to do after a command runs.
type ResultAction int

const (
	ActionNone ResultAction = iota
	ActionQuit
	ActionPromptCredential
)

// Result represents the result of a command execution
type Result struct {
	Title   string
	Content string
	Action  ResultAction
	Error   error
}

// Handler is the interface for command handlers
type Handler interface {
	Execute(args string, ctx *Context) *Result
	Name() string
	Description() string
}

// Dispatcher routes commands to their handlers
type Dispatcher struct {
	handlers map[string]Handler
	order    []string
}

// NewDispatcher creates a dispatcher with the default handlers registered.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]Handler),
	}

	d.Register(&NewRoomHandler{})
	d.Register(&SwitchHandler{})
	d.Register(&ClearHandler{})
	d.Register(&RoomsHandler{})
	d.Register(&KeyHandler{})
	d.Register(&HelpHandler{dispatcher: d})
	d.Register(&QuitHandler{})

	return d
}

// Register adds a handler to the dispatcher
func (d *Dispatcher) Register(h Handler) {
	if _, exists := d.handlers[h.Name()]; !exists {
		d.order = append(d.order, h.Name())
	}
	d.handlers[h.Name()] = h
}

// IsCommand reports whether the input line is a slash command.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// Dispatch parses an input line like "/new Ideas" and executes the
// matching handler with the remainder as arguments.
func (d *Dispatcher) Dispatch(input string, ctx *Context) *Result {
	fields := strings.Fields(strings.TrimSpace(input))
	if len(fields) == 0 {
		return &Result{Title: "Error", Content: "Empty command"}
	}

	name := fields[0]
	args := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), name))

	handler, ok := d.handlers[name]
	if !ok {
		return &Result{
			Title:   "Error",
			Content: "Unknown command: " + name,
		}
	}

	return handler.Execute(args, ctx)
}

// Handlers returns the registered handlers in registration order.
func (d *Dispatcher) Handlers() []Handler {
	out := make([]Handler, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.handlers[name])
	}
	return out
}
