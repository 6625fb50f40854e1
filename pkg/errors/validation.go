package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// Column bounds offered by the section palette.
const (
	MinColumns = 1
	MaxColumns = 12
)

// ValidateColumnCount checks that n is a column count a section may have.
// The engine itself treats non-positive counts as a no-op; this gives
// callers a readable error instead.
func ValidateColumnCount(n int) error {
	if n < MinColumns || n > MaxColumns {
		return New(ErrCodeInvalidInput, "column count must be between %d and %d, got %d", MinColumns, MaxColumns, n)
	}
	return nil
}

// ValidateDimension validates a canvas sizing token such as "600px" or "auto".
// Tokens are free-form; only emptiness and control characters are rejected.
func ValidateDimension(v string) error {
	if strings.TrimSpace(v) == "" {
		return New(ErrCodeInvalidDimension, "dimension cannot be empty")
	}
	for _, r := range v {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDimension, "dimension contains invalid control characters")
		}
	}
	return nil
}

// ValidateTemplateName validates a template display name.
//
// The validation rules:
//   - No empty or whitespace-only names
//   - No control characters
//   - Maximum length of 200 characters
func ValidateTemplateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "template name cannot be empty")
	}
	if len(name) > 200 {
		return New(ErrCodeInvalidInput, "template name too long (max 200 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "template name contains invalid control characters")
		}
	}
	return nil
}

// templateIDRegex matches identifiers safe to use as file names and keys.
var templateIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateTemplateID validates a template or section identifier for use as a
// storage key. It rejects anything that could escape a store directory.
func ValidateTemplateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "id too long (max 128 characters)")
	}
	if !templateIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid id: %q", id)
	}
	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateURL validates a link or media target. Relative references
// ("images/logo.png", "#top", "/about") and any scheme that cannot run
// script pass, cid: inline parts included. javascript: and vbscript: are
// rejected, as is data: unless it carries an image.
func ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	scheme := URLScheme(rawURL)
	switch {
	case scheme == "javascript", scheme == "vbscript":
		return New(ErrCodeInvalidInput, "URL scheme %s: is not allowed", scheme)
	case scheme == "data" && !strings.HasPrefix(strings.ToLower(strings.TrimSpace(rawURL)), "data:image/"):
		return New(ErrCodeInvalidInput, "data: URLs must carry an image")
	}
	return nil
}

// URLScheme returns the lower-cased scheme of rawURL, or "" for a relative
// reference. Whitespace and control characters are ignored the way browsers
// ignore them, so "java\tscript:" reports "javascript".
func URLScheme(rawURL string) string {
	var b strings.Builder
	for _, r := range rawURL {
		switch {
		case r == ':':
			return strings.ToLower(b.String())
		case r == '/' || r == '?' || r == '#':
			return ""
		case unicode.IsSpace(r) || unicode.IsControl(r):
			continue
		}
		b.WriteRune(r)
	}
	return ""
}
