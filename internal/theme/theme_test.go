package theme

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/velvetlane/storefront/internal/models"
)

// validTokens returns a complete token set that passes validation.
func validTokens() models.DesignTokens {
	return models.DesignTokens{
		Color: models.ColorTokens{
			Brand:       models.BrandColors{Primary: "#2563eb", Secondary: "#7c3aed", Accent: "#f59e0b"},
			Background:  models.BackgroundColors{Primary: "#ffffff", Secondary: "#f9fafb", Elevated: "#ffffff", Overlay: "rgba(17, 24, 39, 0.5)"},
			Text:        models.TextColors{Primary: "#111827", Secondary: "#4b5563", Tertiary: "#9ca3af", Inverse: "#ffffff"},
			Border:      models.BorderColors{Default: "#e5e7eb", Strong: "#9ca3af"},
			Interactive: models.InteractiveColors{Default: "#2563eb", Hover: "#1d4ed8", Active: "#1e40af", Disabled: "#93c5fd"},
			Feedback:    models.FeedbackColors{Success: "#16a34a", Warning: "#d97706", Error: "#dc2626", Info: "#0284c7"},
		},
		Typography: models.TypographyTokens{
			FontFamily: models.FontFamily{Display: `"Inter", sans-serif`, Body: `"Inter", sans-serif`, Mono: `"JetBrains Mono", monospace`},
			FontSize: models.FontSizes{
				XS: "0.75rem", SM: "0.875rem", Base: "1rem", LG: "1.125rem", XL: "1.25rem",
				XXL: "1.5rem", X3L: "1.875rem", X4L: "2.25rem",
			},
			FontWeight:    models.FontWeights{Normal: "400", Medium: "500", Semibold: "600", Bold: "700"},
			LineHeight:    models.LineHeights{Tight: "1.25", Normal: "1.5", Relaxed: "1.625"},
			LetterSpacing: models.LetterSpacing{Tight: "-0.025em", Normal: "0em", Wide: "0.025em"},
		},
		Spacing: models.SpacingTokens{
			Preset: models.SpacingPresetNormal,
			Scale: models.SpacingScale{
				XS: "0.25rem", SM: "0.5rem", MD: "1rem", LG: "1.5rem", XL: "2rem", XXL: "3rem", X3L: "4rem",
			},
		},
		Border: models.BorderTokens{
			Width: models.BorderWidths{Thin: "1px", Medium: "2px", Thick: "4px"},
			Radius: models.BorderRadii{
				SM: "0.125rem", MD: "0.375rem", LG: "0.5rem", XL: "0.75rem",
				XXL: "1rem", X3L: "1.5rem", Full: "9999px",
			},
		},
		Shadow: models.ShadowTokens{
			SM: "0 1px 2px 0 rgba(0, 0, 0, 0.05)",
			MD: "0 4px 6px -1px rgba(0, 0, 0, 0.1)",
			LG: "0 10px 15px -3px rgba(0, 0, 0, 0.1)",
			XL: "0 20px 25px -5px rgba(0, 0, 0, 0.1)",
		},
	}
}

// fakeRepo is an in-memory Repository for engine tests.
type fakeRepo struct {
	mu      sync.Mutex
	nextID  int64
	themes  map[int64]models.Theme
	presets map[int64]models.ThemePreset
	fonts   []models.FontLibraryItem
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		nextID:  1,
		themes:  make(map[int64]models.Theme),
		presets: make(map[int64]models.ThemePreset),
	}
}

func (f *fakeRepo) addTheme(t models.Theme) models.Theme {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == 0 {
		t.ID = f.nextID
		f.nextID++
	} else if t.ID >= f.nextID {
		f.nextID = t.ID + 1
	}
	if t.Version == 0 {
		t.Version = 1
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	t.UpdatedAt = t.CreatedAt
	f.themes[t.ID] = t
	return t
}

func (f *fakeRepo) addPreset(p models.ThemePreset) models.ThemePreset {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == 0 {
		p.ID = f.nextID
		f.nextID++
	}
	f.presets[p.ID] = p
	return p
}

func (f *fakeRepo) GetTheme(ctx context.Context, id int64) (models.Theme, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.themes[id]
	if !ok {
		return models.Theme{}, fmt.Errorf("theme %d: %w", id, ErrNotFound)
	}
	return t, nil
}

func (f *fakeRepo) GetThemeByName(ctx context.Context, name string) (models.Theme, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.themes {
		if t.Name == name {
			return t, nil
		}
	}
	return models.Theme{}, fmt.Errorf("theme %q: %w", name, ErrNotFound)
}

func (f *fakeRepo) ListThemes(ctx context.Context) ([]models.Theme, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	themes := make([]models.Theme, 0, len(f.themes))
	for _, t := range f.themes {
		themes = append(themes, t)
	}
	return themes, nil
}

func (f *fakeRepo) ListChildThemes(ctx context.Context, parentID int64) ([]models.Theme, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	children := []models.Theme{}
	for _, t := range f.themes {
		if t.ParentThemeID != nil && *t.ParentThemeID == parentID {
			children = append(children, t)
		}
	}
	return children, nil
}

func (f *fakeRepo) InsertTheme(ctx context.Context, t models.Theme) (models.Theme, error) {
	_ = ctx
	return f.addTheme(t), nil
}

func (f *fakeRepo) UpdateTheme(ctx context.Context, t models.Theme, expectedVersion int64) (models.Theme, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	current, ok := f.themes[t.ID]
	if !ok {
		return models.Theme{}, fmt.Errorf("theme %d: %w", t.ID, ErrNotFound)
	}
	if current.Version != expectedVersion {
		return models.Theme{}, fmt.Errorf("%w: have %d, want %d", ErrStaleVersion, expectedVersion, current.Version)
	}
	current.DisplayName = t.DisplayName
	current.Description = t.Description
	current.Tokens = t.Tokens
	current.CSS = t.CSS
	current.Version++
	current.UpdatedAt = time.Now().UTC()
	f.themes[t.ID] = current
	return current, nil
}

func (f *fakeRepo) UpdateThemeCSS(ctx context.Context, id int64, css string) error {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.themes[id]
	if !ok {
		return fmt.Errorf("theme %d: %w", id, ErrNotFound)
	}
	t.CSS = css
	t.UpdatedAt = time.Now().UTC()
	f.themes[id] = t
	return nil
}

func (f *fakeRepo) DeleteTheme(ctx context.Context, id int64) error {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.themes[id]; !ok {
		return fmt.Errorf("theme %d: %w", id, ErrNotFound)
	}
	delete(f.themes, id)
	return nil
}

func (f *fakeRepo) ActivateTheme(ctx context.Context, id int64) error {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.themes[id]; !ok {
		return fmt.Errorf("theme %d: %w", id, ErrNotFound)
	}
	for themeID, t := range f.themes {
		t.IsActive = themeID == id
		f.themes[themeID] = t
	}
	return nil
}

func (f *fakeRepo) GetActiveTheme(ctx context.Context) (models.Theme, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.themes {
		if t.IsActive {
			return t, nil
		}
	}
	return models.Theme{}, fmt.Errorf("active theme: %w", ErrNotFound)
}

func (f *fakeRepo) GetPreset(ctx context.Context, id int64) (models.ThemePreset, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.presets[id]
	if !ok {
		return models.ThemePreset{}, fmt.Errorf("preset %d: %w", id, ErrPresetNotFound)
	}
	return p, nil
}

func (f *fakeRepo) ListPresets(ctx context.Context) ([]models.ThemePreset, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	presets := make([]models.ThemePreset, 0, len(f.presets))
	for _, p := range f.presets {
		presets = append(presets, p)
	}
	return presets, nil
}

func (f *fakeRepo) ListFonts(ctx context.Context) ([]models.FontLibraryItem, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fonts, nil
}
