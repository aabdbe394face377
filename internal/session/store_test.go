package session

import (
	"testing"

	"legalai-review/internal/ai"
)

func TestStore_Lifecycle(t *testing.T) {
	store := NewStore()

	if _, ok := store.Get(1); ok {
		t.Fatalf("a fresh store must have no sessions")
	}
	if store.AppendTurns(1, ai.ChatMessage{Role: ai.RoleUser, Content: "q"}) {
		t.Fatalf("AppendTurns must report false without an active session")
	}

	store.Start(1, "lease.txt", "document text", "report")
	sess, ok := store.Get(1)
	if !ok || sess.Filename != "lease.txt" || sess.DocumentText != "document text" || sess.LastReport != "report" {
		t.Fatalf("unexpected session %+v", sess)
	}
	if sess.StartedAt.IsZero() {
		t.Fatalf("session must record its start time")
	}

	if !store.AppendTurns(1,
		ai.ChatMessage{Role: ai.RoleUser, Content: "q"},
		ai.ChatMessage{Role: ai.RoleAssistant, Content: "a"},
	) {
		t.Fatalf("AppendTurns must succeed on an active session")
	}
	sess, _ = store.Get(1)
	if len(sess.Transcript) != 2 {
		t.Fatalf("expected 2 transcript turns, got %d", len(sess.Transcript))
	}

	store.Clear(1)
	if _, ok := store.Get(1); ok {
		t.Fatalf("Clear must drop the session")
	}
}

func TestStore_StartReplacesSession(t *testing.T) {
	store := NewStore()

	store.Start(1, "first.txt", "first text", "")
	store.AppendTurns(1, ai.ChatMessage{Role: ai.RoleUser, Content: "old question"})

	store.Start(1, "second.txt", "second text", "second report")
	sess, ok := store.Get(1)
	if !ok || sess.Filename != "second.txt" {
		t.Fatalf("Start must replace the previous session")
	}
	if len(sess.Transcript) != 0 {
		t.Fatalf("a replaced session must not inherit the old transcript")
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Start(1, "lease.txt", "text", "")
	store.AppendTurns(1, ai.ChatMessage{Role: ai.RoleUser, Content: "original"})

	sess, _ := store.Get(1)
	sess.Transcript[0].Content = "mutated"
	sess.Filename = "mutated.txt"

	again, _ := store.Get(1)
	if again.Transcript[0].Content != "original" || again.Filename != "lease.txt" {
		t.Fatalf("mutating a returned session must not affect the store")
	}
}

func TestStore_SessionsAreIndependent(t *testing.T) {
	store := NewStore()
	store.Start(1, "alice.txt", "a", "")
	store.Start(2, "bob.txt", "b", "")

	store.Clear(1)
	if _, ok := store.Get(2); !ok {
		t.Fatalf("clearing one user must not touch another's session")
	}
}
