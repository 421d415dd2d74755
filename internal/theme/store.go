// internal/theme/store.go
package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/velvetlane/storefront/internal/models"
)

// CreateThemeInput describes a new theme. Tokens may be sparse when
// ParentThemeID is set; missing leaves fall through to the parent chain.
type CreateThemeInput struct {
	Name          string              `json:"name"`
	DisplayName   string              `json:"displayName"`
	Description   string              `json:"description,omitempty"`
	Tokens        models.DesignTokens `json:"tokens"`
	ParentThemeID *int64              `json:"parentThemeId,omitempty"`
}

// UpdateThemeInput is a patch. Nil fields are left unchanged; Tokens merges
// leaf-by-leaf into the theme's own tokens. Version, when supplied, is the
// version the caller last read and enables the optimistic-concurrency check.
type UpdateThemeInput struct {
	DisplayName *string              `json:"displayName,omitempty"`
	Description *string              `json:"description,omitempty"`
	Tokens      *models.DesignTokens `json:"tokens,omitempty"`
	Version     *int64               `json:"version,omitempty"`
}

// InstantiatePresetInput names the theme created from a preset. Overrides,
// when present, are merged over the preset's copied tokens.
type InstantiatePresetInput struct {
	Name        string               `json:"name"`
	DisplayName string               `json:"displayName"`
	Description string               `json:"description,omitempty"`
	Overrides   *models.DesignTokens `json:"overrides,omitempty"`
}

// CloneThemeInput names the independent copy of an existing theme.
type CloneThemeInput struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
}

// Store is the theme lifecycle manager. Every mutation flows through it:
// validate, resolve inheritance, compile CSS, persist, then invalidate the
// active-CSS cache when the write can affect what the active theme renders.
type Store struct {
	repo     Repository
	resolver *Resolver
	cache    *Cache
}

func NewStore(repo Repository) *Store {
	resolver := NewResolver(repo)
	return &Store{
		repo:     repo,
		resolver: resolver,
		cache:    NewCache(repo, resolver),
	}
}

func (s *Store) Resolver() *Resolver { return s.resolver }

func (s *Store) Cache() *Cache { return s.cache }

// Create validates, compiles, and persists a new theme at version 1.
func (s *Store) Create(ctx context.Context, input CreateThemeInput) (models.Theme, error) {
	t := models.Theme{
		Name:          input.Name,
		DisplayName:   input.DisplayName,
		Description:   input.Description,
		Tokens:        input.Tokens.Clone(),
		ParentThemeID: input.ParentThemeID,
		Version:       1,
	}
	if err := t.ValidateMeta(); err != nil {
		return models.Theme{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.repo.GetThemeByName(ctx, input.Name); err == nil {
		return models.Theme{}, fmt.Errorf("%w: %s", ErrNameTaken, input.Name)
	} else if !errors.Is(err, ErrNotFound) {
		return models.Theme{}, err
	}

	resolved := t.Tokens
	if input.ParentThemeID != nil {
		parentTokens, err := s.resolver.Resolve(ctx, *input.ParentThemeID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return models.Theme{}, &DanglingParentError{ParentID: *input.ParentThemeID}
			}
			return models.Theme{}, err
		}
		resolved = Merge(parentTokens, t.Tokens)
	}

	if err := Validate(resolved).Err(); err != nil {
		return models.Theme{}, err
	}
	s.warnUnknownFonts(ctx, resolved)
	t.CSS = Compile(resolved)

	created, err := s.repo.InsertTheme(ctx, t)
	if err != nil {
		return models.Theme{}, err
	}
	return created, nil
}

// Update applies a patch, revalidates the resolved tokens, recompiles, and
// bumps the version. A stale caller-supplied version fails with
// ErrStaleVersion without touching stored state.
func (s *Store) Update(ctx context.Context, id int64, input UpdateThemeInput) (models.Theme, error) {
	existing, err := s.repo.GetTheme(ctx, id)
	if err != nil {
		return models.Theme{}, err
	}
	if existing.IsSystemTheme {
		return models.Theme{}, fmt.Errorf("%w: %s", ErrSystemThemeImmutable, existing.Name)
	}

	expectedVersion := existing.Version
	if input.Version != nil {
		if *input.Version != existing.Version {
			return models.Theme{}, fmt.Errorf("%w: have %d, want %d", ErrStaleVersion, *input.Version, existing.Version)
		}
		expectedVersion = *input.Version
	}

	updated := existing
	if input.DisplayName != nil {
		updated.DisplayName = *input.DisplayName
	}
	if input.Description != nil {
		updated.Description = *input.Description
	}
	if input.Tokens != nil {
		updated.Tokens = Merge(existing.Tokens, *input.Tokens)
	}
	if err := updated.ValidateMeta(); err != nil {
		return models.Theme{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	resolved := updated.Tokens
	if updated.ParentThemeID != nil {
		parentTokens, err := s.resolver.Resolve(ctx, *updated.ParentThemeID)
		if err != nil {
			return models.Theme{}, err
		}
		resolved = Merge(parentTokens, updated.Tokens)
	}
	if err := Validate(resolved).Err(); err != nil {
		return models.Theme{}, err
	}
	s.warnUnknownFonts(ctx, resolved)
	updated.CSS = Compile(resolved)

	persisted, err := s.repo.UpdateTheme(ctx, updated, expectedVersion)
	if err != nil {
		return models.Theme{}, err
	}

	if err := s.recompileDescendants(ctx, id); err != nil {
		// The update itself persisted; a stale descendant css column is
		// corrected by the next edit or recompile.
		log.Ctx(ctx).Error().Err(err).Int64("theme_id", id).Msg("Failed to recompile descendant themes")
	}
	s.invalidateIfAffectsActive(ctx, id)
	return persisted, nil
}

// recompileDescendants re-derives the stored CSS of every theme inheriting
// from changedID, transitively, so Theme.CSS reads stay consistent with the
// resolved chain after an ancestor edit.
func (s *Store) recompileDescendants(ctx context.Context, changedID int64) error {
	children, err := s.repo.ListChildThemes(ctx, changedID)
	if err != nil {
		return err
	}
	for _, child := range children {
		resolved, err := s.resolver.Resolve(ctx, child.ID)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateThemeCSS(ctx, child.ID, Compile(resolved)); err != nil {
			return err
		}
		if err := s.recompileDescendants(ctx, child.ID); err != nil {
			return err
		}
	}
	return nil
}

// Activate flips the single active flag to id in one transaction.
func (s *Store) Activate(ctx context.Context, id int64) error {
	if _, err := s.repo.GetTheme(ctx, id); err != nil {
		return err
	}
	if err := s.repo.ActivateTheme(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

// Delete removes a theme. Active and system themes are protected, and a
// theme that other themes inherit from is rejected rather than reparented.
func (s *Store) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.GetTheme(ctx, id)
	if err != nil {
		return err
	}
	if existing.IsSystemTheme {
		return fmt.Errorf("%w: %s", ErrSystemThemeImmutable, existing.Name)
	}
	if existing.IsActive {
		return fmt.Errorf("%w: %s", ErrThemeIsActive, existing.Name)
	}

	children, err := s.repo.ListChildThemes(ctx, id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return fmt.Errorf("%w: %s has %d dependent theme(s)", ErrThemeHasChildren, existing.Name, len(children))
	}

	return s.repo.DeleteTheme(ctx, id)
}

// InstantiateFromPreset copies a preset's tokens into a new independent root
// theme. The copy is by value; later edits never touch the preset.
func (s *Store) InstantiateFromPreset(ctx context.Context, presetID int64, input InstantiatePresetInput) (models.Theme, error) {
	preset, err := s.repo.GetPreset(ctx, presetID)
	if err != nil {
		return models.Theme{}, err
	}

	tokens := preset.Tokens.Clone()
	if input.Overrides != nil {
		tokens = Merge(tokens, *input.Overrides)
	}

	displayName := input.DisplayName
	if strings.TrimSpace(displayName) == "" {
		displayName = preset.DisplayName
	}
	description := input.Description
	if description == "" {
		description = preset.Description
	}

	return s.Create(ctx, CreateThemeInput{
		Name:        input.Name,
		DisplayName: displayName,
		Description: description,
		Tokens:      tokens,
	})
}

// Clone copies an existing theme's resolved tokens into a new independent
// root theme, flattening any inheritance the source had.
func (s *Store) Clone(ctx context.Context, id int64, input CloneThemeInput) (models.Theme, error) {
	source, err := s.repo.GetTheme(ctx, id)
	if err != nil {
		return models.Theme{}, err
	}
	resolved, err := s.resolver.Resolve(ctx, id)
	if err != nil {
		return models.Theme{}, err
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = fmt.Sprintf("Copy of %s", source.DisplayName)
	}

	return s.Create(ctx, CreateThemeInput{
		Name:        input.Name,
		DisplayName: displayName,
		Description: source.Description,
		Tokens:      resolved,
	})
}

func (s *Store) Get(ctx context.Context, id int64) (models.Theme, error) {
	return s.repo.GetTheme(ctx, id)
}

func (s *Store) List(ctx context.Context) ([]models.Theme, error) {
	return s.repo.ListThemes(ctx)
}

// Active returns the currently active theme, or ErrNotFound when nothing has
// been activated yet.
func (s *Store) Active(ctx context.Context) (models.Theme, error) {
	return s.repo.GetActiveTheme(ctx)
}

func (s *Store) ListPresets(ctx context.Context) ([]models.ThemePreset, error) {
	return s.repo.ListPresets(ctx)
}

func (s *Store) ListFonts(ctx context.Context) ([]models.FontLibraryItem, error) {
	return s.repo.ListFonts(ctx)
}

// invalidateIfAffectsActive drops the cached active CSS when the changed
// theme is the active theme or one of its ancestors; an inherited leaf edit
// propagates to every descendant that never overrode it. Any doubt (walk
// errors) invalidates.
func (s *Store) invalidateIfAffectsActive(ctx context.Context, changedID int64) {
	active, err := s.repo.GetActiveTheme(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.cache.Invalidate()
		}
		return
	}
	chain, err := s.resolver.Chain(ctx, active.ID)
	if err != nil {
		s.cache.Invalidate()
		return
	}
	for _, ancestor := range chain {
		if ancestor.ID == changedID {
			s.cache.Invalidate()
			return
		}
	}
}

// warnUnknownFonts soft-checks typography.fontFamily against the font
// library. Fonts are referenced by value, so a miss is only logged.
func (s *Store) warnUnknownFonts(ctx context.Context, tokens models.DesignTokens) {
	fonts, err := s.repo.ListFonts(ctx)
	if err != nil {
		return
	}
	known := make(map[string]struct{}, len(fonts))
	for _, font := range fonts {
		known[font.Family] = struct{}{}
	}

	families := map[string]string{
		"display": tokens.Typography.FontFamily.Display,
		"body":    tokens.Typography.FontFamily.Body,
		"mono":    tokens.Typography.FontFamily.Mono,
	}
	for slot, family := range families {
		family = strings.TrimSpace(family)
		if family == "" {
			continue
		}
		if _, ok := known[primaryFamily(family)]; !ok {
			log.Ctx(ctx).Warn().
				Str("slot", slot).
				Str("family", family).
				Msg("Font family not in font library")
		}
	}
}

// primaryFamily extracts the first family from a CSS font stack like
// `"Inter", sans-serif`.
func primaryFamily(stack string) string {
	first := stack
	if i := strings.IndexByte(stack, ','); i >= 0 {
		first = stack[:i]
	}
	return strings.Trim(strings.TrimSpace(first), `"'`)
}
