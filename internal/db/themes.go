// internal/db/themes.go
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/velvetlane/storefront/internal/models"
	"github.com/velvetlane/storefront/internal/theme"
)

const themeColumns = `id, name, display_name, description, tokens, css,
	is_active, is_system, version, parent_theme_id, created_at, updated_at`

// Repo implements theme.Repository over SQLite.
type Repo struct {
	db *DB
}

func NewRepo(database *DB) *Repo {
	return &Repo{db: database}
}

var _ theme.Repository = (*Repo)(nil)

func (r *Repo) GetTheme(ctx context.Context, id int64) (models.Theme, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+themeColumns+` FROM themes WHERE id = ?`, id)
	t, err := scanTheme(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Theme{}, fmt.Errorf("theme %d: %w", id, theme.ErrNotFound)
		}
		return models.Theme{}, fmt.Errorf("get theme %d: %w", id, err)
	}
	return t, nil
}

func (r *Repo) GetThemeByName(ctx context.Context, name string) (models.Theme, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+themeColumns+` FROM themes WHERE name = ?`, name)
	t, err := scanTheme(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Theme{}, fmt.Errorf("theme %q: %w", name, theme.ErrNotFound)
		}
		return models.Theme{}, fmt.Errorf("get theme %q: %w", name, err)
	}
	return t, nil
}

func (r *Repo) ListThemes(ctx context.Context) ([]models.Theme, error) {
	return r.queryThemes(ctx,
		`SELECT `+themeColumns+` FROM themes ORDER BY is_system DESC, name`)
}

func (r *Repo) ListChildThemes(ctx context.Context, parentID int64) ([]models.Theme, error) {
	return r.queryThemes(ctx,
		`SELECT `+themeColumns+` FROM themes WHERE parent_theme_id = ? ORDER BY name`, parentID)
}

func (r *Repo) InsertTheme(ctx context.Context, t models.Theme) (models.Theme, error) {
	tokens, err := json.Marshal(t.Tokens)
	if err != nil {
		return models.Theme{}, fmt.Errorf("marshal tokens: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO themes (name, display_name, description, tokens, css, is_system, version, parent_theme_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Name, t.DisplayName, t.Description, string(tokens), t.CSS,
		t.IsSystemTheme, t.Version, toNullInt64(t.ParentThemeID))
	if err != nil {
		if isUniqueViolation(err) {
			return models.Theme{}, fmt.Errorf("%w: %s", theme.ErrNameTaken, t.Name)
		}
		if isForeignKeyViolation(err) {
			return models.Theme{}, &theme.DanglingParentError{ParentID: derefInt64(t.ParentThemeID)}
		}
		return models.Theme{}, fmt.Errorf("insert theme %q: %w", t.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Theme{}, fmt.Errorf("insert theme %q: %w", t.Name, err)
	}
	return r.GetTheme(ctx, id)
}

// UpdateTheme persists the mutable fields and bumps version, guarded by the
// optimistic version check in the WHERE clause so concurrent edits never
// silently overwrite each other.
func (r *Repo) UpdateTheme(ctx context.Context, t models.Theme, expectedVersion int64) (models.Theme, error) {
	tokens, err := json.Marshal(t.Tokens)
	if err != nil {
		return models.Theme{}, fmt.Errorf("marshal tokens: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE themes
		 SET display_name = ?, description = ?, tokens = ?, css = ?,
		     version = version + 1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND version = ?`,
		t.DisplayName, t.Description, string(tokens), t.CSS, t.ID, expectedVersion)
	if err != nil {
		return models.Theme{}, fmt.Errorf("update theme %d: %w", t.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Theme{}, fmt.Errorf("update theme %d: %w", t.ID, err)
	}
	if affected == 0 {
		current, getErr := r.GetTheme(ctx, t.ID)
		if getErr != nil {
			return models.Theme{}, getErr
		}
		return models.Theme{}, fmt.Errorf("%w: have %d, want %d", theme.ErrStaleVersion, expectedVersion, current.Version)
	}

	return r.GetTheme(ctx, t.ID)
}

// UpdateThemeCSS rewrites the denormalized css column without bumping the
// version; resyncing derived CSS after an ancestor edit is not a concurrent
// edit of the theme itself.
func (r *Repo) UpdateThemeCSS(ctx context.Context, id int64, css string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE themes SET css = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, css, id)
	if err != nil {
		return fmt.Errorf("update theme %d css: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update theme %d css: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("theme %d: %w", id, theme.ErrNotFound)
	}
	return nil
}

func (r *Repo) DeleteTheme(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM themes WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: theme %d", theme.ErrThemeHasChildren, id)
		}
		return fmt.Errorf("delete theme %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete theme %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("theme %d: %w", id, theme.ErrNotFound)
	}
	return nil
}

// ActivateTheme flips the active flag in one transaction. The partial unique
// index on is_active backs the exactly-one-active invariant at the schema
// level.
func (r *Repo) ActivateTheme(ctx context.Context, id int64) error {
	return r.db.RunInTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE themes SET is_active = 0 WHERE is_active = 1`); err != nil {
			return fmt.Errorf("clear active theme: %w", err)
		}
		result, err := tx.ExecContext(ctx,
			`UPDATE themes SET is_active = 1 WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("set active theme %d: %w", id, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("set active theme %d: %w", id, err)
		}
		if affected == 0 {
			return fmt.Errorf("theme %d: %w", id, theme.ErrNotFound)
		}
		return nil
	})
}

func (r *Repo) GetActiveTheme(ctx context.Context) (models.Theme, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+themeColumns+` FROM themes WHERE is_active = 1`)
	t, err := scanTheme(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Theme{}, fmt.Errorf("active theme: %w", theme.ErrNotFound)
		}
		return models.Theme{}, fmt.Errorf("get active theme: %w", err)
	}
	return t, nil
}

func (r *Repo) GetPreset(ctx context.Context, id int64) (models.ThemePreset, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, display_name, description, tags, tokens FROM theme_presets WHERE id = ?`, id)
	p, err := scanPreset(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ThemePreset{}, fmt.Errorf("preset %d: %w", id, theme.ErrPresetNotFound)
		}
		return models.ThemePreset{}, fmt.Errorf("get preset %d: %w", id, err)
	}
	return p, nil
}

func (r *Repo) ListPresets(ctx context.Context) ([]models.ThemePreset, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, display_name, description, tags, tokens FROM theme_presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	presets := []models.ThemePreset{}
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("list presets: %w", err)
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

func (r *Repo) ListFonts(ctx context.Context) ([]models.FontLibraryItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, family, source, category, weights, styles FROM font_library ORDER BY family`)
	if err != nil {
		return nil, fmt.Errorf("list fonts: %w", err)
	}
	defer rows.Close()

	fonts := []models.FontLibraryItem{}
	for rows.Next() {
		var f models.FontLibraryItem
		var weights, styles string
		if err := rows.Scan(&f.ID, &f.Family, &f.Source, &f.Category, &weights, &styles); err != nil {
			return nil, fmt.Errorf("list fonts: %w", err)
		}
		if err := json.Unmarshal([]byte(weights), &f.Weights); err != nil {
			return nil, fmt.Errorf("font %q weights: %w", f.Family, err)
		}
		if err := json.Unmarshal([]byte(styles), &f.Styles); err != nil {
			return nil, fmt.Errorf("font %q styles: %w", f.Family, err)
		}
		fonts = append(fonts, f)
	}
	return fonts, rows.Err()
}

func (r *Repo) queryThemes(ctx context.Context, query string, args ...any) ([]models.Theme, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	defer rows.Close()

	themes := []models.Theme{}
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, fmt.Errorf("list themes: %w", err)
		}
		themes = append(themes, t)
	}
	return themes, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTheme(row rowScanner) (models.Theme, error) {
	var t models.Theme
	var tokens string
	var parentID sql.NullInt64
	var createdAt, updatedAt time.Time

	err := row.Scan(&t.ID, &t.Name, &t.DisplayName, &t.Description, &tokens, &t.CSS,
		&t.IsActive, &t.IsSystemTheme, &t.Version, &parentID, &createdAt, &updatedAt)
	if err != nil {
		return models.Theme{}, err
	}

	if err := json.Unmarshal([]byte(tokens), &t.Tokens); err != nil {
		return models.Theme{}, fmt.Errorf("unmarshal tokens for theme %d: %w", t.ID, err)
	}
	if parentID.Valid {
		id := parentID.Int64
		t.ParentThemeID = &id
	}
	t.CreatedAt = createdAt.UTC()
	t.UpdatedAt = updatedAt.UTC()
	return t, nil
}

func scanPreset(row rowScanner) (models.ThemePreset, error) {
	var p models.ThemePreset
	var tags, tokens string
	if err := row.Scan(&p.ID, &p.Name, &p.DisplayName, &p.Description, &tags, &tokens); err != nil {
		return models.ThemePreset{}, err
	}
	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		return models.ThemePreset{}, fmt.Errorf("unmarshal tags for preset %d: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(tokens), &p.Tokens); err != nil {
		return models.ThemePreset{}, fmt.Errorf("unmarshal tokens for preset %d: %w", p.ID, err)
	}
	return p, nil
}

func toNullInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

func derefInt64(value *int64) int64 {
	if value == nil {
		return 0
	}
	return *value
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
