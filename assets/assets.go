// assets/assets.go
package assets

import "embed"

// SeedFS holds the seed catalogs applied on first boot: system themes, the
// preset gallery, and the font library.
//
//go:embed themes.json presets.json fonts.json
var SeedFS embed.FS

const (
	ThemesPath  = "themes.json"
	PresetsPath = "presets.json"
	FontsPath   = "fonts.json"
)
