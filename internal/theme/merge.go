// internal/theme/merge.go
package theme

import "github.com/velvetlane/storefront/internal/models"

// Merge lays overlay on top of base, leaf by leaf. A non-empty overlay leaf
// always wins; an empty one falls through to base. Leaf values are replaced
// wholesale, never merged internally. Gradient presets merge per preset name.
func Merge(base, overlay models.DesignTokens) models.DesignTokens {
	merged := base.Clone()

	for _, l := range tokenLeaves {
		if value := *l.field(&overlay); value != "" {
			*l.field(&merged) = value
		}
	}

	if overlay.Gradient != nil {
		if merged.Gradient == nil {
			merged.Gradient = &models.GradientTokens{}
		}
		if overlay.Gradient.Brand != "" {
			merged.Gradient.Brand = overlay.Gradient.Brand
		}
		if len(overlay.Gradient.Presets) > 0 {
			if merged.Gradient.Presets == nil {
				merged.Gradient.Presets = make(map[string]string, len(overlay.Gradient.Presets))
			}
			for name, value := range overlay.Gradient.Presets {
				merged.Gradient.Presets[name] = value
			}
		}
	}

	return merged
}
