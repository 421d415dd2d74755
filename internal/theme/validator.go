// internal/theme/validator.go
package theme

import (
	"fmt"
	"strings"

	"github.com/velvetlane/storefront/internal/models"
)

// ValidationResult is the outcome of validating a token set. A result with an
// empty error list is "ok".
type ValidationResult struct {
	Errors []FieldError
}

func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Err returns a *ValidationError carrying the collected field errors, or nil
// when the result is ok.
func (r ValidationResult) Err() error {
	if r.OK() {
		return nil
	}
	return &ValidationError{Fields: r.Errors}
}

// Validate checks a token set against the schema. It is pure and collects
// every problem rather than stopping at the first, so a caller can report all
// offending fields at once.
func Validate(tokens models.DesignTokens) ValidationResult {
	var result ValidationResult

	for _, l := range tokenLeaves {
		value := strings.TrimSpace(*l.field(&tokens))
		if value == "" {
			if !l.optional {
				result.add(l.path, "is required")
			}
			continue
		}

		switch l.kind {
		case kindColor:
			if !models.IsColor(value) {
				result.add(l.path, "must be a hex, rgb(), or hsl() color string")
			}
		case kindSpacingPreset:
			switch value {
			case models.SpacingPresetCompact, models.SpacingPresetNormal, models.SpacingPresetSpacious:
			default:
				result.add(l.path, fmt.Sprintf("must be one of %q, %q, %q",
					models.SpacingPresetCompact, models.SpacingPresetNormal, models.SpacingPresetSpacious))
			}
		}
	}

	if tokens.Gradient != nil {
		for _, name := range sortedPresetNames(tokens.Gradient.Presets) {
			if strings.TrimSpace(name) == "" {
				result.add("gradient.presets", "preset names must not be empty")
				continue
			}
			if strings.TrimSpace(tokens.Gradient.Presets[name]) == "" {
				result.add("gradient.presets."+name, "must not be empty")
			}
		}
	}

	return result
}

func (r *ValidationResult) add(path, reason string) {
	r.Errors = append(r.Errors, FieldError{Path: path, Reason: reason})
}
