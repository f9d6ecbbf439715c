// Package chat owns the in-memory conversation state: named rooms with
// isolated, append-only message histories, the active room selection, and
// the credential used for completion calls. State lives for the session
// only; nothing is persisted.
package chat

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a single chat message. Messages are never modified after
// being appended to a room.
type Message struct {
	Role    Role
	Content string
}

// Store errors. Callers match with errors.Is.
var (
	ErrDuplicateRoom     = errors.New("room already exists")
	ErrUnknownRoom       = errors.New("unknown room")
	ErrInvalidCredential = errors.New("credential must not be blank")
	ErrMissingCredential = errors.New("no credential set")
)

// room holds one conversation thread. History ordering is chronological
// and only ever grows, except for ClearRoom which replaces it wholesale.
type room struct {
	name    string
	history []Message
}

// Store maps room names to conversation histories and tracks the active
// room. Room listing preserves creation order. Methods are safe for
// concurrent use; turns themselves are serialized by the caller.
type Store struct {
	mu         sync.RWMutex
	rooms      map[string]*room
	order      []string
	activeRoom string
	credential string
}

// NewStore creates an empty store with no rooms and no active room.
func NewStore() *Store {
	return &Store{rooms: make(map[string]*room)}
}

// NewDefaultStore creates a store seeded with the stock rooms, with
// "General" active.
func NewDefaultStore() *Store {
	s := NewStore()
	seeds := []struct{ name, greeting string }{
		{"General", "Hello! How can I assist you with general questions?"},
		{"Technical Support", "Hello! How can I help you with technical issues?"},
		{"Ideas", "Hello! What ideas would you like to discuss?"},
	}
	for _, seed := range seeds {
		s.insertRoom(seed.name, seed.greeting)
	}
	s.activeRoom = "General"
	return s
}

// CreateRoom adds a room seeded with a greeting and makes it active.
// The name must be non-blank and not already taken.
func (s *Store) CreateRoom(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrDuplicateRoom)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateRoom, name)
	}
	s.insertRoom(name, fmt.Sprintf("Hello! Welcome to %s. How can I help you?", name))
	s.activeRoom = name
	return nil
}

// SelectRoom changes the active room. No other state is touched.
func (s *Store) SelectRoom(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRoom, name)
	}
	s.activeRoom = name
	return nil
}

// ClearRoom replaces a room's history with a single fresh greeting.
// The active room selection is left alone.
func (s *Store) ClearRoom(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRoom, name)
	}
	r.history = []Message{{
		Role:    RoleAssistant,
		Content: fmt.Sprintf("Chat cleared. How can I help you with %s?", name),
	}}
	return nil
}

// AppendMessage appends one message to the named room's history. This is
// the only way a history grows; there is no cap or eviction.
func (s *Store) AppendMessage(name string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRoom, name)
	}
	r.history = append(r.history, msg)
	return nil
}

// ListRooms returns room names in creation order.
func (s *Store) ListRooms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// ActiveRoom returns the name of the active room, or "" when the store
// has no rooms yet.
func (s *Store) ActiveRoom() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeRoom
}

// History returns a copy of the named room's messages in chronological
// order.
func (s *Store) History(name string) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoom, name)
	}
	history := make([]Message, len(r.history))
	copy(history, r.history)
	return history, nil
}

// SetCredential stores the completion credential. Blank values are
// rejected; setting the same value twice is fine. A credential is never
// cleared once set.
func (s *Store) SetCredential(value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrInvalidCredential
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = value
	return nil
}

// Credential returns the stored credential, or "" when none is set.
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// HasCredential reports whether a usable credential is present.
func (s *Store) HasCredential() bool {
	return strings.TrimSpace(s.Credential()) != ""
}

func (s *Store) insertRoom(name, greeting string) {
	s.rooms[name] = &room{
		name:    name,
		history: []Message{{Role: RoleAssistant, Content: greeting}},
	}
	s.order = append(s.order, name)
}
