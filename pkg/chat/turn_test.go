package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// stubCompleter records the context it was called with and returns a
// canned reply or error.
type stubCompleter struct {
	reply    string
	err      error
	calls    int
	lastSeen []Message
}

func (c *stubCompleter) Complete(_ context.Context, messages []Message) (string, error) {
	c.calls++
	c.lastSeen = messages
	return c.reply, c.err
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewDefaultStore()
	if err := s.SetCredential("sk-test"); err != nil {
		t.Fatalf("SetCredential() failed: %v", err)
	}
	return s
}

func TestSubmit_Success(t *testing.T) {
	s := newTestStore(t)
	completer := &stubCompleter{reply: "Hi there!"}
	tc := NewTurnController(completer)

	appended, err := tc.Submit(context.Background(), s, "Hello")
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	if len(appended) != 2 {
		t.Fatalf("Expected 2 appended messages, got %d", len(appended))
	}

	history, err := s.History("General")
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("Expected history [seed, user, assistant], got %d messages", len(history))
	}
	if history[1].Role != RoleUser || history[1].Content != "Hello" {
		t.Errorf("Unexpected user message: %+v", history[1])
	}
	if history[2].Role != RoleAssistant || history[2].Content != "Hi there!" {
		t.Errorf("Unexpected assistant message: %+v", history[2])
	}
}

func TestSubmit_CompletionFailureBecomesMessage(t *testing.T) {
	s := newTestStore(t)
	completer := &stubCompleter{err: errors.New("timeout")}
	tc := NewTurnController(completer)

	appended, err := tc.Submit(context.Background(), s, "Hello")
	if err != nil {
		t.Fatalf("Submit() must not fail on completion errors, got %v", err)
	}
	if len(appended) != 2 {
		t.Fatalf("Expected 2 appended messages, got %d", len(appended))
	}

	history, _ := s.History("General")
	if len(history) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(history))
	}
	want := "Sorry, I encountered an error: timeout"
	if history[2].Role != RoleAssistant || history[2].Content != want {
		t.Errorf("Expected error reply %q, got %+v", want, history[2])
	}
}

func TestSubmit_BlankInputIsNoOp(t *testing.T) {
	s := newTestStore(t)
	completer := &stubCompleter{reply: "never"}
	tc := NewTurnController(completer)

	for _, input := range []string{"", "   ", "\n\t  "} {
		appended, err := tc.Submit(context.Background(), s, input)
		if err != nil {
			t.Fatalf("Submit(%q) failed: %v", input, err)
		}
		if appended != nil {
			t.Errorf("Submit(%q): expected no appended messages, got %d", input, len(appended))
		}
	}

	if completer.calls != 0 {
		t.Errorf("Completer called %d times for blank input", completer.calls)
	}

	history, _ := s.History("General")
	if len(history) != 1 {
		t.Errorf("Expected history untouched (1 message), got %d", len(history))
	}
}

func TestSubmit_MissingCredential(t *testing.T) {
	s := NewDefaultStore()
	completer := &stubCompleter{reply: "never"}
	tc := NewTurnController(completer)

	_, err := tc.Submit(context.Background(), s, "Hello")
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("Expected ErrMissingCredential, got %v", err)
	}

	if completer.calls != 0 {
		t.Errorf("Completer called %d times without a credential", completer.calls)
	}

	history, _ := s.History("General")
	if len(history) != 1 {
		t.Errorf("Expected no mutation, got %d messages", len(history))
	}
}

func TestSubmit_FullHistoryContext(t *testing.T) {
	s := newTestStore(t)
	completer := &stubCompleter{reply: "ok"}
	tc := NewTurnController(completer)

	if _, err := tc.Submit(context.Background(), s, "first"); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if _, err := tc.Submit(context.Background(), s, "second"); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	// Second turn context: seed, first, ok, second.
	if len(completer.lastSeen) != 4 {
		t.Fatalf("Expected 4 context messages, got %d", len(completer.lastSeen))
	}
	last := completer.lastSeen[len(completer.lastSeen)-1]
	if last.Role != RoleUser || last.Content != "second" {
		t.Errorf("Expected context to end with the new user message, got %+v", last)
	}
}

func TestSubmit_FullHistoryWithSystemPrompt(t *testing.T) {
	s := newTestStore(t)
	completer := &stubCompleter{reply: "ok"}
	tc := NewTurnController(completer)
	tc.SetSystemPrompt("You are a helpful class assistant.")

	if _, err := tc.Submit(context.Background(), s, "Hello"); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	if len(completer.lastSeen) != 3 {
		t.Fatalf("Expected [system, seed, user], got %d messages", len(completer.lastSeen))
	}
	if completer.lastSeen[0].Role != RoleSystem {
		t.Errorf("Expected system message first, got %+v", completer.lastSeen[0])
	}
}

func TestSubmit_LatestOnlyContext(t *testing.T) {
	s := newTestStore(t)
	completer := &stubCompleter{reply: "ok"}
	tc := NewTurnController(completer)
	tc.SetContextMode(ContextLatestOnly)
	tc.SetSystemPrompt("ignored in latest-only mode")

	if _, err := tc.Submit(context.Background(), s, "first"); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if _, err := tc.Submit(context.Background(), s, "second"); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	if len(completer.lastSeen) != 1 {
		t.Fatalf("Expected 1 context message, got %d", len(completer.lastSeen))
	}
	if completer.lastSeen[0].Content != "second" {
		t.Errorf("Expected latest user message, got %q", completer.lastSeen[0].Content)
	}
}

func TestSubmit_TargetsActiveRoom(t *testing.T) {
	s := newTestStore(t)
	completer := &stubCompleter{reply: "ok"}
	tc := NewTurnController(completer)

	if err := s.SelectRoom("Ideas"); err != nil {
		t.Fatalf("SelectRoom() failed: %v", err)
	}
	if _, err := tc.Submit(context.Background(), s, "brainstorm"); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	ideas, _ := s.History("Ideas")
	if len(ideas) != 3 {
		t.Errorf("Expected 3 messages in Ideas, got %d", len(ideas))
	}
	general, _ := s.History("General")
	if len(general) != 1 {
		t.Errorf("Expected General untouched, got %d messages", len(general))
	}
}

func TestSubmit_ErrorReplyPollutesNextContext(t *testing.T) {
	// The swallowed error is stored as a normal assistant message, so the
	// next full-history turn carries it along.
	s := newTestStore(t)
	completer := &stubCompleter{err: errors.New("quota exceeded")}
	tc := NewTurnController(completer)

	if _, err := tc.Submit(context.Background(), s, "Hello"); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	completer.err = nil
	completer.reply = "ok"
	if _, err := tc.Submit(context.Background(), s, "again"); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	found := false
	for _, msg := range completer.lastSeen {
		if msg.Content == ErrorReplyPrefix+"quota exceeded" {
			found = true
		}
	}
	if !found {
		t.Error("Expected the stored error reply in the next turn's context")
	}
}

func TestParseContextMode(t *testing.T) {
	cases := []struct {
		in   string
		want ContextMode
	}{
		{"full", ContextFullHistory},
		{"latest", ContextLatestOnly},
		{" Latest ", ContextLatestOnly},
		{"", ContextFullHistory},
		{"bogus", ContextFullHistory},
	}
	for _, tt := range cases {
		if got := ParseContextMode(tt.in); got != tt.want {
			t.Errorf("ParseContextMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompleterFunc(t *testing.T) {
	var got int
	f := CompleterFunc(func(_ context.Context, messages []Message) (string, error) {
		got = len(messages)
		return fmt.Sprintf("%d", len(messages)), nil
	})

	reply, err := f.Complete(context.Background(), []Message{{Role: RoleUser, Content: "x"}})
	if err != nil {
		t.Fatalf("Complete() failed: %v", err)
	}
	if reply != "1" || got != 1 {
		t.Errorf("CompleterFunc did not pass through, reply=%q n=%d", reply, got)
	}
}
