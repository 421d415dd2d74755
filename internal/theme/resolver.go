// internal/theme/resolver.go
package theme

import (
	"context"
	"errors"

	"github.com/velvetlane/storefront/internal/models"
)

// MaxChainDepth bounds inheritance resolution cost. Chains deeper than this
// fail with ChainDepthError.
const MaxChainDepth = 16

// Resolver flattens a theme's inheritance chain into one token set. The
// parent link is plain data (a foreign key), so resolution is an explicit
// graph walk with cycle detection.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve walks from themeID to its root and deep-merges each ancestor's
// tokens in root-to-leaf order, so a child's explicit leaf always overrides
// an ancestor's and absent leaves fall through to the nearest ancestor that
// defines them.
func (r *Resolver) Resolve(ctx context.Context, themeID int64) (models.DesignTokens, error) {
	chain, err := r.Chain(ctx, themeID)
	if err != nil {
		return models.DesignTokens{}, err
	}

	resolved := chain[0].Tokens.Clone()
	for _, descendant := range chain[1:] {
		resolved = Merge(resolved, descendant.Tokens)
	}
	return resolved, nil
}

// Chain returns the theme's ancestor chain ordered root first, leaf (the
// requested theme) last.
func (r *Resolver) Chain(ctx context.Context, themeID int64) ([]models.Theme, error) {
	visited := make(map[int64]struct{})
	var chain []models.Theme

	current := themeID
	for {
		if _, ok := visited[current]; ok {
			return nil, &CycleError{ThemeID: current}
		}
		visited[current] = struct{}{}
		if len(visited) > MaxChainDepth {
			return nil, &ChainDepthError{ThemeID: themeID, MaxDepth: MaxChainDepth}
		}

		t, err := r.repo.GetTheme(ctx, current)
		if err != nil {
			if current != themeID && errors.Is(err, ErrNotFound) {
				return nil, &DanglingParentError{ParentID: current}
			}
			return nil, err
		}

		// Prepend: ancestors accumulate root first.
		chain = append([]models.Theme{t}, chain...)

		if t.ParentThemeID == nil {
			return chain, nil
		}
		if *t.ParentThemeID == t.ID {
			return nil, &CycleError{ThemeID: t.ID}
		}
		current = *t.ParentThemeID
	}
}
