package kv

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	if err := store.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Failed to overwrite: %v", err)
	}

	v, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("Expected v2, got %q ok=%v err=%v", v, ok, err)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Expected idempotent delete, got %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Error("Expected key gone after delete")
	}
}

func TestMemoryFaultInjection(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	boom := errors.New("disk on fire")
	store.FailSet = func(key string) error {
		if key == "bad" {
			return boom
		}
		return nil
	}

	if err := store.Set(ctx, "good", "v"); err != nil {
		t.Fatalf("Unexpected error on healthy key: %v", err)
	}
	if err := store.Set(ctx, "bad", "v"); !errors.Is(err, boom) {
		t.Fatalf("Expected injected error, got %v", err)
	}

	store.FailGet = func(string) error { return boom }
	if _, _, err := store.Get(ctx, "good"); !errors.Is(err, boom) {
		t.Fatalf("Expected injected read error, got %v", err)
	}
}
