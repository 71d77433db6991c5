package errors

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	maxPrefixLength   = 64
	maxTemplateLength = 2048
)

// ValidatePrefix validates a label prefix.
//
// The validation rules are intentionally conservative:
//   - Maximum length of 64 characters
//   - No control characters or null bytes
//
// An empty prefix is valid; labels are then plain numbers.
func ValidatePrefix(prefix string) error {
	if len(prefix) > maxPrefixLength {
		return New(ErrCodeInvalidConfig, "prefix too long (max %d characters)", maxPrefixLength)
	}
	for _, r := range prefix {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "prefix contains invalid control characters")
		}
	}
	return nil
}

// ValidateTemplate validates a QR data template.
// The template may omit the {label} placeholder, in which case every label
// carries the same static payload.
func ValidateTemplate(tpl string) error {
	if len(tpl) > maxTemplateLength {
		return New(ErrCodeInvalidConfig, "qr template too long (max %d characters)", maxTemplateLength)
	}
	if strings.ContainsRune(tpl, '\x00') {
		return New(ErrCodeInvalidConfig, "qr template contains a null byte")
	}
	return nil
}

// formatIDRegex matches registry identifiers such as "avery-l4731".
var formatIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateFormatID validates a label format identifier.
func ValidateFormatID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidConfig, "format identifier cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidConfig, "format identifier too long (max 64 characters)")
	}
	if !formatIDRegex.MatchString(id) {
		return New(ErrCodeInvalidConfig, "invalid format identifier: %q", id)
	}
	return nil
}

// ValidateNonNegative validates that a named integer setting is not negative.
func ValidateNonNegative(name string, v int) error {
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s must be >= 0, got %d", name, v)
	}
	return nil
}
