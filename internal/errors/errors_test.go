// Package errors provides unit tests for the AppError type.
package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrNotFound, "checklist abc not found")
	if !strings.Contains(err.Error(), "NOT_FOUND") {
		t.Errorf("Expected code in message, got %q", err.Error())
	}

	cause := stderrors.New("disk read failed")
	wrapped := Wrap(ErrStorageRead, "failed to read checklist", cause)
	if !strings.Contains(wrapped.Error(), "disk read failed") {
		t.Errorf("Expected cause in message, got %q", wrapped.Error())
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := stderrors.New("boom")
	wrapped := Wrap(ErrStorageWrite, "failed to write", cause)
	if !stderrors.Is(wrapped, cause) {
		t.Error("Expected errors.Is to find the cause through Unwrap")
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrInvalidPassword, "wrong password")
	if !Is(err, ErrInvalidPassword) {
		t.Error("Expected Is to match the code")
	}
	if Is(err, ErrNotFound) {
		t.Error("Expected Is to reject a different code")
	}
	if Is(stderrors.New("plain"), ErrNotFound) {
		t.Error("Expected Is to reject a plain error")
	}
}

func TestCodeOf(t *testing.T) {
	if code := CodeOf(New(ErrDecode, "bad json")); code != ErrDecode {
		t.Errorf("Expected DECODE_FAILED, got %s", code)
	}
	if code := CodeOf(stderrors.New("plain")); code != ErrInternal {
		t.Errorf("Expected INTERNAL_ERROR fallback, got %s", code)
	}
}
