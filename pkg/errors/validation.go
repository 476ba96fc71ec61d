package errors

import (
	"strings"
	"unicode"
)

// ValidateElementID validates a scene element identifier.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 256 characters
//
// Identifiers are free-form otherwise; scenes generated from UUIDs, class
// names, or file paths all pass.
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidScene, "element id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidScene, "element id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "element id contains invalid control characters")
		}
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
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

// ValidateCanvas validates canvas dimensions for an arrange request.
// Zero values are allowed (the engine substitutes its defaults); negative
// dimensions are rejected since no strategy can target them.
func ValidateCanvas(width, height float64) error {
	if width < 0 || height < 0 {
		return New(ErrCodeInvalidConfig, "canvas dimensions cannot be negative (%gx%g)", width, height)
	}
	return nil
}

// ValidateColor validates a free-form color tag. The layout engine never
// interprets colors, but render sinks embed them verbatim in SVG, so reject
// anything that could break out of an attribute.
func ValidateColor(color string) error {
	if strings.ContainsAny(color, `"<>`) {
		return New(ErrCodeInvalidScene, "color contains invalid characters: %q", color)
	}
	return nil
}
