package store

import (
	"testing"
)

func TestPushCreateUpsertsByEndpoint(t *testing.T) {
	db := setupTestDB(t)
	s := NewPushStore(db)

	sub, err := s.Create("https://push.example/ep1", "p256dh-a", "auth-a", "phone")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sub.DeviceName != "phone" {
		t.Errorf("device name = %s, want phone", sub.DeviceName)
	}

	// Re-subscribing from the same endpoint replaces the keys, not the row.
	updated, err := s.Create("https://push.example/ep1", "p256dh-b", "auth-b", "phone-renamed")
	if err != nil {
		t.Fatalf("re-create: %v", err)
	}
	if updated.ID != sub.ID {
		t.Errorf("upsert changed id: %d -> %d", sub.ID, updated.ID)
	}
	if updated.P256dhKey != "p256dh-b" {
		t.Errorf("p256dh = %s, want replaced key", updated.P256dhKey)
	}

	subs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 1 {
		t.Errorf("subscriptions = %d, want 1", len(subs))
	}
}

func TestPushGetByEndpointMissing(t *testing.T) {
	db := setupTestDB(t)
	s := NewPushStore(db)

	sub, err := s.GetByEndpoint("https://push.example/none")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sub != nil {
		t.Errorf("missing endpoint = %+v, want nil", sub)
	}
}

func TestPushDeleteByEndpoint(t *testing.T) {
	db := setupTestDB(t)
	s := NewPushStore(db)

	if _, err := s.Create("https://push.example/ep1", "k", "a", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create("https://push.example/ep2", "k", "a", ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.DeleteByEndpoint("https://push.example/ep1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	subs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 1 || subs[0].Endpoint != "https://push.example/ep2" {
		t.Errorf("remaining = %+v, want only ep2", subs)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	subs, err = s.List()
	if err != nil {
		t.Fatalf("list after clear: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("subscriptions after clear = %d, want 0", len(subs))
	}
}
