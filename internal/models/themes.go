// internal/models/themes.go
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const maxThemeNameLength = 64
const maxDisplayNameLength = 100

var themeNameRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
var rgbColorRegex = regexp.MustCompile(`^rgba?\(\s*[\d.]+%?\s*,\s*[\d.]+%?\s*,\s*[\d.]+%?\s*(?:,\s*[\d.]+%?\s*)?\)$`)
var hslColorRegex = regexp.MustCompile(`^hsla?\(\s*[\d.]+(?:deg)?\s*,\s*[\d.]+%\s*,\s*[\d.]+%\s*(?:,\s*[\d.]+%?\s*)?\)$`)

// IsColor reports whether value matches the accepted color-string grammar:
// hex (#RGB, #RRGGBB, #RRGGBBAA), rgb()/rgba(), or hsl()/hsla(). The value is
// validated syntactically, never interpreted.
func IsColor(value string) bool {
	value = strings.TrimSpace(value)
	return hexColorRegex.MatchString(value) ||
		rgbColorRegex.MatchString(value) ||
		hslColorRegex.MatchString(value)
}

// Theme is a persisted, named token set. Tokens hold only this theme's own
// values; inherited values come from walking ParentThemeID at resolve time.
// CSS is the compiled stylesheet of the resolved tokens, denormalized for
// fast serving.
type Theme struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	DisplayName   string       `json:"displayName"`
	Description   string       `json:"description,omitempty"`
	Tokens        DesignTokens `json:"tokens"`
	CSS           string       `json:"css"`
	IsActive      bool         `json:"isActive"`
	IsSystemTheme bool         `json:"isSystemTheme"`
	Version       int64        `json:"version"`
	ParentThemeID *int64       `json:"parentThemeId,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// ThemePreset is a read-only catalog entry. Instantiating a preset copies its
// tokens into a new independent theme; presets are never mutated.
type ThemePreset struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Description string       `json:"description,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Tokens      DesignTokens `json:"tokens"`
}

// FontLibraryItem is a catalog entry referenced by family name from
// typography.fontFamily. The reference is by value; an unknown family is a
// soft warning, not an error.
type FontLibraryItem struct {
	ID       int64    `json:"id"`
	Family   string   `json:"family"`
	Source   string   `json:"source"`
	Category string   `json:"category"`
	Weights  []string `json:"weights"`
	Styles   []string `json:"styles"`
}

// ValidateMeta checks the theme's naming fields. Token validation is the
// engine validator's job.
func (t Theme) ValidateMeta() error {
	if err := ValidateThemeName(t.Name); err != nil {
		return err
	}
	displayName := strings.TrimSpace(t.DisplayName)
	if displayName == "" {
		return fmt.Errorf("displayName is required")
	}
	if len(displayName) > maxDisplayNameLength {
		return fmt.Errorf("displayName must be %d characters or fewer", maxDisplayNameLength)
	}
	return nil
}

func ValidateThemeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxThemeNameLength {
		return fmt.Errorf("name must be %d characters or fewer", maxThemeNameLength)
	}
	if !themeNameRegex.MatchString(name) {
		return fmt.Errorf("name must be a lowercase slug like %q", "forest-dark")
	}
	return nil
}

func (p ThemePreset) Validate() error {
	if err := ValidateThemeName(p.Name); err != nil {
		return err
	}
	if strings.TrimSpace(p.DisplayName) == "" {
		return fmt.Errorf("displayName is required")
	}
	if dup := firstDuplicate(p.Tags); dup != "" {
		return fmt.Errorf("tags contains duplicate %q", dup)
	}
	return nil
}

func (f FontLibraryItem) Validate() error {
	if strings.TrimSpace(f.Family) == "" {
		return fmt.Errorf("family is required")
	}
	if strings.TrimSpace(f.Source) == "" {
		return fmt.Errorf("source is required")
	}
	if strings.TrimSpace(f.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if dup := firstDuplicate(f.Weights); dup != "" {
		return fmt.Errorf("weights contains duplicate %q", dup)
	}
	if dup := firstDuplicate(f.Styles); dup != "" {
		return fmt.Errorf("styles contains duplicate %q", dup)
	}
	return nil
}

func firstDuplicate(values []string) string {
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			return value
		}
		seen[value] = struct{}{}
	}
	return ""
}
