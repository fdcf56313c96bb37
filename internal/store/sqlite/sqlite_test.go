package sqlite

import (
	"context"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice, err := s.CreateUser(ctx, "alice", "hash-a")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if alice.ID == 0 || alice.Username != "alice" {
		t.Fatalf("unexpected user: %+v", alice)
	}

	byName, err := s.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if byName.ID != alice.ID || byName.PasswordHash != "hash-a" {
		t.Fatalf("unexpected user by name: %+v", byName)
	}

	if _, err := s.GetUserByUsername(ctx, "ghost"); err == nil {
		t.Fatalf("expected error for missing user")
	}

	// Duplicate usernames violate the UNIQUE constraint.
	if _, err := s.CreateUser(ctx, "alice", "hash-b"); err == nil {
		t.Fatalf("expected duplicate username error")
	}
}

func TestListUsersExcludesCaller(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var aliceID int64
	for _, name := range []string{"charlie", "alice", "bob"} {
		u, err := s.CreateUser(ctx, name, "hash")
		if err != nil {
			t.Fatalf("create user %s: %v", name, err)
		}
		if name == "alice" {
			aliceID = u.ID
		}
	}

	users, err := s.ListUsers(ctx, aliceID)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}

	var names []string
	for _, u := range users {
		names = append(names, u.Username)
	}
	want := []string{"bob", "charlie"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestAppendAndListConversation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice, _ := s.CreateUser(ctx, "alice", "hash")
	bob, _ := s.CreateUser(ctx, "bob", "hash")
	charlie, _ := s.CreateUser(ctx, "charlie", "hash")

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := s.AppendMessage(ctx, alice.ID, bob.ID, "hi bob", base)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	second, err := s.AppendMessage(ctx, bob.ID, alice.ID, "hi alice", base.Add(time.Minute))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := s.AppendMessage(ctx, alice.ID, charlie.ID, "hi charlie", base.Add(2*time.Minute)); err != nil {
		t.Fatalf("append: %v", err)
	}

	if first.ID == 0 || second.ID == first.ID {
		t.Fatalf("expected distinct store-assigned ids, got %d and %d", first.ID, second.ID)
	}

	// Both directions, ascending, and nothing from the charlie thread.
	msgs, err := s.ListConversation(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("list conversation: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Body != "hi bob" || msgs[1].Body != "hi alice" {
		t.Fatalf("unexpected order: %q then %q", msgs[0].Body, msgs[1].Body)
	}

	// The pair is unordered: reversing the arguments returns the same thread.
	reversed, err := s.ListConversation(ctx, bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("list conversation reversed: %v", err)
	}
	if len(reversed) != 2 || reversed[0].ID != msgs[0].ID {
		t.Fatalf("expected same conversation for reversed pair")
	}
}
