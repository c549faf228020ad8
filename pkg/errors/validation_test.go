package errors

import (
	"strings"
	"testing"
)

func TestValidateModID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "coremod", false},
		{"valid with dash", "better-ui", false},
		{"valid with underscore", "better_ui", false},
		{"valid with dot", "author.mod", false},
		{"valid mixed case", "BetterUI", false},
		{"valid digits", "3dmap", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"leading dash", "-mod", true},
		{"space", "my mod", true},
		{"path traversal", "..", true},
		{"slash", "a/b", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateModID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateModID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidModID) {
				t.Errorf("ValidateModID(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateProfileName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"default", false},
		{"survival run 2", false},
		{"", true},
		{".hidden", true},
		{"../etc", true},
		{"a/b", true},
	}

	for _, tt := range tests {
		err := ValidateProfileName(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateProfileName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidProfile) {
			t.Errorf("ValidateProfileName(%q) returned wrong error code: %v", tt.input, err)
		}
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidModID,
		ErrCodeInvalidManifest,
		ErrCodeDuplicateMod,
		ErrCodeInvalidProfile,
		ErrCodeNotFound,
		ErrCodeProfileNotFound,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
