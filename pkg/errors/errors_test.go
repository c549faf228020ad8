package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidModID, "bad id: %s", "a/b")

	if err.Code != ErrCodeInvalidModID {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidModID)
	}

	if err.Message != "bad id: a/b" {
		t.Errorf("Message = %v, want %v", err.Message, "bad id: a/b")
	}

	expected := "INVALID_MOD_ID: bad id: a/b"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("toml: line 3: expected '='")
	err := Wrap(ErrCodeInvalidManifest, cause, "parse %s", "mod.toml")

	if err.Code != ErrCodeInvalidManifest {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidManifest)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "INVALID_MANIFEST: parse mod.toml: toml: line 3: expected '='"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeDuplicateMod,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeInvalidManifest, New(ErrCodeInvalidModID, "inner"), "outer"),
			code:     ErrCodeInvalidManifest,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("load: %w", New(ErrCodeProfileNotFound, "missing")),
			code:     ErrCodeProfileNotFound,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeDuplicateMod, "test"), ErrCodeDuplicateMod},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		err        error
		validation bool
		notFound   bool
	}{
		{New(ErrCodeInvalidModID, "x"), true, false},
		{New(ErrCodeDuplicateMod, "x"), true, false},
		{New(ErrCodeInvalidProfile, "x"), true, false},
		{New(ErrCodeProfileNotFound, "x"), false, true},
		{New(ErrCodeNotFound, "x"), false, true},
		{New(ErrCodeInternal, "x"), false, false},
		{errors.New("plain"), false, false},
	}

	for _, tt := range tests {
		if got := IsValidation(tt.err); got != tt.validation {
			t.Errorf("IsValidation(%v) = %v, want %v", tt.err, got, tt.validation)
		}
		if got := IsNotFound(tt.err); got != tt.notFound {
			t.Errorf("IsNotFound(%v) = %v, want %v", tt.err, got, tt.notFound)
		}
	}
}
