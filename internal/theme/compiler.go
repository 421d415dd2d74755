// internal/theme/compiler.go
package theme

import (
	"sort"
	"strings"

	"github.com/velvetlane/storefront/internal/models"
)

// Compile renders a resolved token set as a stylesheet of custom-property
// declarations. It is pure and deterministic: identical input yields a
// byte-identical string, so the output can be cache-keyed and diffed. Leaves
// are emitted in the fixed schema order (color, typography, spacing, border,
// shadow, gradient); absent optional leaves are omitted, never defaulted.
func Compile(tokens models.DesignTokens) string {
	var b strings.Builder
	b.WriteString(":root {\n")

	for _, l := range tokenLeaves {
		value := strings.TrimSpace(*l.field(&tokens))
		if value == "" {
			continue
		}
		writeDeclaration(&b, cssVarName(l.path), value)
	}

	if tokens.Gradient != nil {
		if brand := strings.TrimSpace(tokens.Gradient.Brand); brand != "" {
			writeDeclaration(&b, "--gradient-brand", brand)
		}
		for _, name := range sortedPresetNames(tokens.Gradient.Presets) {
			value := strings.TrimSpace(tokens.Gradient.Presets[name])
			if name == "" || value == "" {
				continue
			}
			writeDeclaration(&b, cssVarName("gradient.presets."+name), value)
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func writeDeclaration(b *strings.Builder, name, value string) {
	b.WriteString("  ")
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString(";\n")
}

func sortedPresetNames(presets map[string]string) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
