// internal/theme/errors.go
package theme

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput         = errors.New("invalid theme input")
	ErrNotFound             = errors.New("theme not found")
	ErrPresetNotFound       = errors.New("theme preset not found")
	ErrNameTaken            = errors.New("theme name already exists")
	ErrStaleVersion         = errors.New("theme version is stale")
	ErrSystemThemeImmutable = errors.New("system themes are read-only")
	ErrThemeIsActive        = errors.New("theme is active")
	ErrThemeHasChildren     = errors.New("theme is the parent of other themes")
)

// FieldError reports one offending token field by its dotted path.
type FieldError struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// ValidationError carries the complete ordered list of field errors collected
// by the validator, never just the first failure.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "token validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		parts = append(parts, field.Error())
	}
	return fmt.Sprintf("token validation failed: %s", strings.Join(parts, "; "))
}

// CycleError is returned when a theme's parent chain loops back on itself.
type CycleError struct {
	ThemeID int64
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("theme inheritance cycle detected at theme %d", e.ThemeID)
}

// DanglingParentError is returned when a parentThemeId points at a theme that
// does not exist.
type DanglingParentError struct {
	ParentID int64
}

func (e *DanglingParentError) Error() string {
	return fmt.Sprintf("parent theme %d does not exist", e.ParentID)
}

// ChainDepthError is returned when a parent chain exceeds the resolution
// depth cap.
type ChainDepthError struct {
	ThemeID  int64
	MaxDepth int
}

func (e *ChainDepthError) Error() string {
	return fmt.Sprintf("theme %d inheritance chain exceeds max depth %d", e.ThemeID, e.MaxDepth)
}
