// Package ident provides identifier generation for checklists, items and photos.
package ident

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Generated ids are a unix-millisecond prefix plus a random suffix:
// the prefix keeps ids roughly creation-ordered, the suffix removes
// collisions under rapid successive creation. Ordering is best-effort
// only; callers must not rely on ids being strictly monotonic.
var idRegex = regexp.MustCompile(`^[0-9]{10,16}-[0-9a-f]{8}$`)

// New generates a new time-derived identifier.
func New() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// NewAt generates an identifier for a fixed instant. Used by tests and
// by callers that stamp a batch of records with one clock reading.
func NewAt(t time.Time) string {
	return fmt.Sprintf("%d-%s", t.UnixMilli(), uuid.NewString()[:8])
}

// IsValid checks if a string is a well-formed generated identifier.
// Ids from legacy records (bare millisecond timestamps) are also accepted.
func IsValid(s string) bool {
	if idRegex.MatchString(s) {
		return true
	}
	return legacyIDRegex.MatchString(s)
}

// older records carry bare millisecond-timestamp ids with no suffix
var legacyIDRegex = regexp.MustCompile(`^[0-9]{10,16}$`)

// Validate returns an error if the string is not a valid identifier.
func Validate(s string) error {
	if !IsValid(s) {
		return fmt.Errorf("invalid identifier: %q", s)
	}
	return nil
}
