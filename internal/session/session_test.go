package session_test

import (
	"testing"

	"github.com/edenlabs/edenbot/internal/session"
)

func TestPutReplacesExistingSession(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()

	first := session.NewSession(1, session.FlowProject, 2)
	first.Fields["token_name"] = "Dogecoin"
	store.Put(first)

	second := session.NewSession(1, session.FlowRaid, 1)
	second.ProjectID = 7
	store.Put(second)

	got, ok := store.Get(1)
	if !ok {
		t.Fatal("session missing after Put")
	}
	if got.Flow != session.FlowRaid {
		t.Errorf("Flow = %q, want raid flow to replace project flow", got.Flow)
	}
	if got.ProjectID != 7 {
		t.Errorf("ProjectID = %d, want 7", got.ProjectID)
	}
	if _, ok := got.Fields["token_name"]; ok {
		t.Error("replaced session retained fields from discarded conversation")
	}
}

func TestGetReturnsIsolatedCopy(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()

	sess := session.NewSession(1, session.FlowProject, 1)
	sess.Fields["token_name"] = "Dogecoin"
	store.Put(sess)

	// Mutating the original after Put must not leak into the store.
	sess.Fields["token_name"] = "Mutated"

	got, ok := store.Get(1)
	if !ok {
		t.Fatal("session missing")
	}
	if got.Fields["token_name"] != "Dogecoin" {
		t.Errorf("stored field = %q, want value at Put time", got.Fields["token_name"])
	}

	// Mutating a Get result must not leak either.
	got.Fields["token_name"] = "AlsoMutated"

	again, _ := store.Get(1)
	if again.Fields["token_name"] != "Dogecoin" {
		t.Errorf("stored field = %q after mutating a Get result", again.Fields["token_name"])
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()

	store.Delete(1)

	store.Put(session.NewSession(1, session.FlowProject, 1))
	store.Delete(1)
	store.Delete(1)

	if _, ok := store.Get(1); ok {
		t.Error("session still present after Delete")
	}
}

func TestGetMissingSession(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()

	if sess, ok := store.Get(42); ok || sess != nil {
		t.Errorf("Get on empty store = (%v, %v), want (nil, false)", sess, ok)
	}
}

func TestPutSetsUpdatedAt(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	store.Put(session.NewSession(1, session.FlowProject, 1))

	got, _ := store.Get(1)
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set on Put")
	}
}
