package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxIDLength bounds mod ids and profile names.
const maxIDLength = 128

// ValidateName applies the rules shared by every user-supplied identifier:
//   - No empty names
//   - No control characters or null bytes
//   - No path traversal sequences or separators
//   - Maximum length of 128 characters
//
// Both mod ids and profile names end up as path components or database keys,
// so the rules are conservative.
func ValidateName(kind string, code Code, name string) error {
	if name == "" {
		return New(code, "%s cannot be empty", kind)
	}

	if len(name) > maxIDLength {
		return New(code, "%s too long (max %d characters)", kind, maxIDLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(code, "%s contains invalid control characters", kind)
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(code, "%s contains invalid characters: %q", kind, pattern)
		}
	}

	return nil
}

// modIDRegex matches mod ids: letters, digits, dot, dash and underscore,
// starting with a letter or digit.
var modIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateModID validates a mod id as declared in a manifest or a profile.
func ValidateModID(id string) error {
	if err := ValidateName("mod id", ErrCodeInvalidModID, id); err != nil {
		return err
	}

	if !modIDRegex.MatchString(id) {
		return New(ErrCodeInvalidModID, "invalid mod id: %q", id)
	}

	return nil
}

// ValidateProfileName validates a load-order profile name.
func ValidateProfileName(name string) error {
	if err := ValidateName("profile name", ErrCodeInvalidProfile, name); err != nil {
		return err
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidProfile, "profile name cannot start with a dot")
	}

	return nil
}
