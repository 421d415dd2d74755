// internal/theme/schema.go
package theme

import (
	"strings"

	"github.com/velvetlane/storefront/internal/models"
)

// leafKind selects the syntactic rule applied to a leaf token value.
type leafKind int

const (
	kindValue leafKind = iota
	kindColor
	kindSpacingPreset
)

// leaf describes one addressable token value: its dotted path (matching the
// JSON shape), whether it may be absent, and how to reach the field inside a
// DesignTokens value. One fixed ordered table drives validation, merging, and
// compilation so all three agree on the schema and on output order.
type leaf struct {
	path     string
	kind     leafKind
	optional bool
	field    func(*models.DesignTokens) *string
}

var tokenLeaves = []leaf{
	// color
	{path: "color.brand.primary", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Brand.Primary }},
	{path: "color.brand.secondary", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Brand.Secondary }},
	{path: "color.brand.accent", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Brand.Accent }},
	{path: "color.background.primary", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Background.Primary }},
	{path: "color.background.secondary", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Background.Secondary }},
	{path: "color.background.elevated", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Background.Elevated }},
	{path: "color.background.overlay", kind: kindColor, optional: true, field: func(t *models.DesignTokens) *string { return &t.Color.Background.Overlay }},
	{path: "color.text.primary", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Text.Primary }},
	{path: "color.text.secondary", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Text.Secondary }},
	{path: "color.text.tertiary", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Text.Tertiary }},
	{path: "color.text.inverse", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Text.Inverse }},
	{path: "color.border.default", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Border.Default }},
	{path: "color.border.strong", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Border.Strong }},
	{path: "color.interactive.default", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Interactive.Default }},
	{path: "color.interactive.hover", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Interactive.Hover }},
	{path: "color.interactive.active", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Interactive.Active }},
	{path: "color.interactive.disabled", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Interactive.Disabled }},
	{path: "color.feedback.success", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Feedback.Success }},
	{path: "color.feedback.warning", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Feedback.Warning }},
	{path: "color.feedback.error", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Feedback.Error }},
	{path: "color.feedback.info", kind: kindColor, field: func(t *models.DesignTokens) *string { return &t.Color.Feedback.Info }},

	// typography
	{path: "typography.fontFamily.display", field: func(t *models.DesignTokens) *string { return &t.Typography.FontFamily.Display }},
	{path: "typography.fontFamily.body", field: func(t *models.DesignTokens) *string { return &t.Typography.FontFamily.Body }},
	{path: "typography.fontFamily.mono", field: func(t *models.DesignTokens) *string { return &t.Typography.FontFamily.Mono }},
	{path: "typography.fontSize.xs", field: func(t *models.DesignTokens) *string { return &t.Typography.FontSize.XS }},
	{path: "typography.fontSize.sm", field: func(t *models.DesignTokens) *string { return &t.Typography.FontSize.SM }},
	{path: "typography.fontSize.base", field: func(t *models.DesignTokens) *string { return &t.Typography.FontSize.Base }},
	{path: "typography.fontSize.lg", field: func(t *models.DesignTokens) *string { return &t.Typography.FontSize.LG }},
	{path: "typography.fontSize.xl", field: func(t *models.DesignTokens) *string { return &t.Typography.FontSize.XL }},
	{path: "typography.fontSize.2xl", field: func(t *models.DesignTokens) *string { return &t.Typography.FontSize.XXL }},
	{path: "typography.fontSize.3xl", field: func(t *models.DesignTokens) *string { return &t.Typography.FontSize.X3L }},
	{path: "typography.fontSize.4xl", field: func(t *models.DesignTokens) *string { return &t.Typography.FontSize.X4L }},
	{path: "typography.fontSize.5xl", optional: true, field: func(t *models.DesignTokens) *string { return &t.Typography.FontSize.X5L }},
	{path: "typography.fontSize.6xl", optional: true, field: func(t *models.DesignTokens) *string { return &t.Typography.FontSize.X6L }},
	{path: "typography.fontSize.7xl", optional: true, field: func(t *models.DesignTokens) *string { return &t.Typography.FontSize.X7L }},
	{path: "typography.fontSize.8xl", optional: true, field: func(t *models.DesignTokens) *string { return &t.Typography.FontSize.X8L }},
	{path: "typography.fontSize.9xl", optional: true, field: func(t *models.DesignTokens) *string { return &t.Typography.FontSize.X9L }},
	{path: "typography.fontWeight.light", optional: true, field: func(t *models.DesignTokens) *string { return &t.Typography.FontWeight.Light }},
	{path: "typography.fontWeight.normal", field: func(t *models.DesignTokens) *string { return &t.Typography.FontWeight.Normal }},
	{path: "typography.fontWeight.medium", field: func(t *models.DesignTokens) *string { return &t.Typography.FontWeight.Medium }},
	{path: "typography.fontWeight.semibold", field: func(t *models.DesignTokens) *string { return &t.Typography.FontWeight.Semibold }},
	{path: "typography.fontWeight.bold", field: func(t *models.DesignTokens) *string { return &t.Typography.FontWeight.Bold }},
	{path: "typography.lineHeight.tight", field: func(t *models.DesignTokens) *string { return &t.Typography.LineHeight.Tight }},
	{path: "typography.lineHeight.normal", field: func(t *models.DesignTokens) *string { return &t.Typography.LineHeight.Normal }},
	{path: "typography.lineHeight.relaxed", field: func(t *models.DesignTokens) *string { return &t.Typography.LineHeight.Relaxed }},
	{path: "typography.lineHeight.loose", optional: true, field: func(t *models.DesignTokens) *string { return &t.Typography.LineHeight.Loose }},
	{path: "typography.letterSpacing.tight", field: func(t *models.DesignTokens) *string { return &t.Typography.LetterSpacing.Tight }},
	{path: "typography.letterSpacing.normal", field: func(t *models.DesignTokens) *string { return &t.Typography.LetterSpacing.Normal }},
	{path: "typography.letterSpacing.wide", field: func(t *models.DesignTokens) *string { return &t.Typography.LetterSpacing.Wide }},

	// spacing
	{path: "spacing.preset", kind: kindSpacingPreset, field: func(t *models.DesignTokens) *string { return &t.Spacing.Preset }},
	{path: "spacing.scale.xs", field: func(t *models.DesignTokens) *string { return &t.Spacing.Scale.XS }},
	{path: "spacing.scale.sm", field: func(t *models.DesignTokens) *string { return &t.Spacing.Scale.SM }},
	{path: "spacing.scale.md", field: func(t *models.DesignTokens) *string { return &t.Spacing.Scale.MD }},
	{path: "spacing.scale.lg", field: func(t *models.DesignTokens) *string { return &t.Spacing.Scale.LG }},
	{path: "spacing.scale.xl", field: func(t *models.DesignTokens) *string { return &t.Spacing.Scale.XL }},
	{path: "spacing.scale.2xl", field: func(t *models.DesignTokens) *string { return &t.Spacing.Scale.XXL }},
	{path: "spacing.scale.3xl", field: func(t *models.DesignTokens) *string { return &t.Spacing.Scale.X3L }},

	// border
	{path: "border.width.none", optional: true, field: func(t *models.DesignTokens) *string { return &t.Border.Width.None }},
	{path: "border.width.thin", field: func(t *models.DesignTokens) *string { return &t.Border.Width.Thin }},
	{path: "border.width.medium", field: func(t *models.DesignTokens) *string { return &t.Border.Width.Medium }},
	{path: "border.width.thick", field: func(t *models.DesignTokens) *string { return &t.Border.Width.Thick }},
	{path: "border.radius.sm", field: func(t *models.DesignTokens) *string { return &t.Border.Radius.SM }},
	{path: "border.radius.md", field: func(t *models.DesignTokens) *string { return &t.Border.Radius.MD }},
	{path: "border.radius.lg", field: func(t *models.DesignTokens) *string { return &t.Border.Radius.LG }},
	{path: "border.radius.xl", field: func(t *models.DesignTokens) *string { return &t.Border.Radius.XL }},
	{path: "border.radius.2xl", field: func(t *models.DesignTokens) *string { return &t.Border.Radius.XXL }},
	{path: "border.radius.3xl", field: func(t *models.DesignTokens) *string { return &t.Border.Radius.X3L }},
	{path: "border.radius.full", field: func(t *models.DesignTokens) *string { return &t.Border.Radius.Full }},

	// shadow
	{path: "shadow.sm", field: func(t *models.DesignTokens) *string { return &t.Shadow.SM }},
	{path: "shadow.md", field: func(t *models.DesignTokens) *string { return &t.Shadow.MD }},
	{path: "shadow.lg", field: func(t *models.DesignTokens) *string { return &t.Shadow.LG }},
	{path: "shadow.xl", field: func(t *models.DesignTokens) *string { return &t.Shadow.XL }},
	{path: "shadow.2xl", optional: true, field: func(t *models.DesignTokens) *string { return &t.Shadow.XXL }},
	{path: "shadow.inner", optional: true, field: func(t *models.DesignTokens) *string { return &t.Shadow.Inner }},
}

// cssVarName turns a dotted leaf path into a custom-property name:
// "typography.fontSize.2xl" -> "--typography-font-size-2xl".
func cssVarName(path string) string {
	var b strings.Builder
	b.WriteString("--")
	for i, r := range path {
		switch {
		case r == '.':
			b.WriteByte('-')
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
