// internal/db/seed.go
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/velvetlane/storefront/assets"
	"github.com/velvetlane/storefront/internal/models"
	"github.com/velvetlane/storefront/internal/theme"
)

// SeedTheme is one entry of the embedded system-theme catalog. IsDefault
// marks the theme activated on first boot; exactly one entry may carry it.
type SeedTheme struct {
	Name        string              `json:"name"`
	DisplayName string              `json:"displayName"`
	Description string              `json:"description"`
	IsDefault   bool                `json:"isDefault"`
	Tokens      models.DesignTokens `json:"tokens"`
}

// ParseSeedThemes reads and validates the embedded system themes.
func ParseSeedThemes() ([]SeedTheme, error) {
	data, err := assets.SeedFS.ReadFile(assets.ThemesPath)
	if err != nil {
		return nil, fmt.Errorf("read embedded themes: %w", err)
	}

	var seeds []SeedTheme
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse embedded themes: %w", err)
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("embedded themes file is empty")
	}

	defaultName := ""
	for _, seed := range seeds {
		if err := models.ValidateThemeName(seed.Name); err != nil {
			return nil, fmt.Errorf("seed theme %q: %w", seed.Name, err)
		}
		if err := theme.Validate(seed.Tokens).Err(); err != nil {
			return nil, fmt.Errorf("seed theme %q: %w", seed.Name, err)
		}
		if seed.IsDefault {
			if defaultName != "" {
				return nil, fmt.Errorf("multiple default themes: %q and %q", defaultName, seed.Name)
			}
			defaultName = seed.Name
		}
	}
	if defaultName == "" {
		return nil, fmt.Errorf("no default theme marked in embedded themes")
	}

	return seeds, nil
}

// ParseSeedPresets reads and validates the embedded preset gallery.
func ParseSeedPresets() ([]models.ThemePreset, error) {
	data, err := assets.SeedFS.ReadFile(assets.PresetsPath)
	if err != nil {
		return nil, fmt.Errorf("read embedded presets: %w", err)
	}

	var presets []models.ThemePreset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("parse embedded presets: %w", err)
	}
	for _, preset := range presets {
		if err := preset.Validate(); err != nil {
			return nil, fmt.Errorf("seed preset %q: %w", preset.Name, err)
		}
		if err := theme.Validate(preset.Tokens).Err(); err != nil {
			return nil, fmt.Errorf("seed preset %q: %w", preset.Name, err)
		}
	}
	return presets, nil
}

// ParseSeedFonts reads and validates the embedded font library.
func ParseSeedFonts() ([]models.FontLibraryItem, error) {
	data, err := assets.SeedFS.ReadFile(assets.FontsPath)
	if err != nil {
		return nil, fmt.Errorf("read embedded fonts: %w", err)
	}

	var fonts []models.FontLibraryItem
	if err := json.Unmarshal(data, &fonts); err != nil {
		return nil, fmt.Errorf("parse embedded fonts: %w", err)
	}
	for _, font := range fonts {
		if err := font.Validate(); err != nil {
			return nil, fmt.Errorf("seed font %q: %w", font.Family, err)
		}
	}
	return fonts, nil
}

// Seed populates empty catalogs from the embedded assets. Each table is
// seeded only when empty, so repeated boots are no-ops and operator edits
// are never clobbered.
func Seed(ctx context.Context, database *DB) error {
	repo := NewRepo(database)

	if err := seedThemes(ctx, database, repo); err != nil {
		return err
	}
	if err := seedPresets(ctx, database); err != nil {
		return err
	}
	if err := seedFonts(ctx, database); err != nil {
		return err
	}
	return nil
}

func seedThemes(ctx context.Context, database *DB, repo *Repo) error {
	var count int64
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM themes`).Scan(&count); err != nil {
		return fmt.Errorf("count themes: %w", err)
	}
	if count > 0 {
		return nil
	}

	seeds, err := ParseSeedThemes()
	if err != nil {
		return err
	}

	for _, seed := range seeds {
		t := models.Theme{
			Name:          seed.Name,
			DisplayName:   seed.DisplayName,
			Description:   seed.Description,
			Tokens:        seed.Tokens,
			CSS:           theme.Compile(seed.Tokens),
			IsSystemTheme: true,
			Version:       1,
		}
		created, err := repo.InsertTheme(ctx, t)
		if err != nil {
			return fmt.Errorf("seed theme %q: %w", seed.Name, err)
		}
		if seed.IsDefault {
			if err := repo.ActivateTheme(ctx, created.ID); err != nil {
				return fmt.Errorf("activate seed theme %q: %w", seed.Name, err)
			}
		}
	}

	log.Info().Int("themes", len(seeds)).Msg("Seeded system themes")
	return nil
}

func seedPresets(ctx context.Context, database *DB) error {
	var count int64
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM theme_presets`).Scan(&count); err != nil {
		return fmt.Errorf("count presets: %w", err)
	}
	if count > 0 {
		return nil
	}

	presets, err := ParseSeedPresets()
	if err != nil {
		return err
	}

	for _, preset := range presets {
		tags, err := json.Marshal(tagsOrEmpty(preset.Tags))
		if err != nil {
			return fmt.Errorf("seed preset %q: %w", preset.Name, err)
		}
		tokens, err := json.Marshal(preset.Tokens)
		if err != nil {
			return fmt.Errorf("seed preset %q: %w", preset.Name, err)
		}
		_, err = database.ExecContext(ctx,
			`INSERT INTO theme_presets (name, display_name, description, tags, tokens) VALUES (?, ?, ?, ?, ?)`,
			preset.Name, preset.DisplayName, preset.Description, string(tags), string(tokens))
		if err != nil {
			return fmt.Errorf("seed preset %q: %w", preset.Name, err)
		}
	}

	log.Info().Int("presets", len(presets)).Msg("Seeded theme presets")
	return nil
}

func seedFonts(ctx context.Context, database *DB) error {
	var count int64
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM font_library`).Scan(&count); err != nil {
		return fmt.Errorf("count fonts: %w", err)
	}
	if count > 0 {
		return nil
	}

	fonts, err := ParseSeedFonts()
	if err != nil {
		return err
	}

	for _, font := range fonts {
		weights, err := json.Marshal(tagsOrEmpty(font.Weights))
		if err != nil {
			return fmt.Errorf("seed font %q: %w", font.Family, err)
		}
		styles, err := json.Marshal(tagsOrEmpty(font.Styles))
		if err != nil {
			return fmt.Errorf("seed font %q: %w", font.Family, err)
		}
		_, err = database.ExecContext(ctx,
			`INSERT INTO font_library (family, source, category, weights, styles) VALUES (?, ?, ?, ?, ?)`,
			font.Family, font.Source, font.Category, string(weights), string(styles))
		if err != nil {
			return fmt.Errorf("seed font %q: %w", font.Family, err)
		}
	}

	log.Info().Int("fonts", len(fonts)).Msg("Seeded font library")
	return nil
}

func tagsOrEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
