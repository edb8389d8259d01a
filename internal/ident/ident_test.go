// Package ident provides unit tests for identifier generation.
package ident

import (
	"strings"
	"testing"
	"time"
)

func TestNewIsValidAndUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		if !IsValid(id) {
			t.Fatalf("Generated id is not valid: %q", id)
		}
		if seen[id] {
			t.Fatalf("Generated duplicate id: %q", id)
		}
		seen[id] = true
	}
}

func TestNewAt(t *testing.T) {
	at := time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC)
	id := NewAt(at)
	if !strings.HasPrefix(id, "1699920000000-") {
		t.Errorf("Expected millisecond prefix, got %q", id)
	}
	if !IsValid(id) {
		t.Errorf("Generated id is not valid: %q", id)
	}
}

func TestIsValid(t *testing.T) {
	cases := []struct {
		id    string
		valid bool
	}{
		{"1699920000000-a1b2c3d4", true},
		{"1699920000000", true}, // legacy bare-timestamp id
		{"", false},
		{"a1b2c3d4", false},
		{"1699920000000-XYZ", false},
		{"not-an-id", false},
	}
	for _, c := range cases {
		if got := IsValid(c.id); got != c.valid {
			t.Errorf("IsValid(%q) = %v, want %v", c.id, got, c.valid)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(New()); err != nil {
		t.Errorf("Expected generated id to validate: %v", err)
	}
	if err := Validate("junk"); err == nil {
		t.Error("Expected error for junk id")
	}
}
