// internal/theme/repository.go
package theme

import (
	"context"

	"github.com/velvetlane/storefront/internal/models"
)

// Repository is the persistence surface the engine needs. internal/db
// implements it over SQLite. Implementations return ErrNotFound (wrapped or
// bare) for unknown ids, ErrStaleVersion when an expected version does not
// match, and perform ActivateTheme as a single transaction.
type Repository interface {
	GetTheme(ctx context.Context, id int64) (models.Theme, error)
	GetThemeByName(ctx context.Context, name string) (models.Theme, error)
	ListThemes(ctx context.Context) ([]models.Theme, error)
	ListChildThemes(ctx context.Context, parentID int64) ([]models.Theme, error)
	InsertTheme(ctx context.Context, theme models.Theme) (models.Theme, error)
	// UpdateTheme persists the mutable fields of theme and bumps its version,
	// but only while the stored version still equals expectedVersion.
	UpdateTheme(ctx context.Context, theme models.Theme, expectedVersion int64) (models.Theme, error)
	// UpdateThemeCSS rewrites only the stored compiled CSS. The CSS column is
	// derived data, so this neither bumps the version nor touches tokens.
	UpdateThemeCSS(ctx context.Context, id int64, css string) error
	DeleteTheme(ctx context.Context, id int64) error
	// ActivateTheme atomically clears the previous active flag and sets it on
	// id; at no observable point are zero or two themes active.
	ActivateTheme(ctx context.Context, id int64) error
	GetActiveTheme(ctx context.Context) (models.Theme, error)

	GetPreset(ctx context.Context, id int64) (models.ThemePreset, error)
	ListPresets(ctx context.Context) ([]models.ThemePreset, error)
	ListFonts(ctx context.Context) ([]models.FontLibraryItem, error)
}
