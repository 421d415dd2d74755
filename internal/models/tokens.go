// internal/models/tokens.go
package models

// DesignTokens is the full themeable token set for the storefront UI.
// Five categories are mandatory; gradient is optional. Values are stored as
// CSS-ready strings, so an "absent" leaf is the empty string and optional
// categories are nil pointers.
type DesignTokens struct {
	Color      ColorTokens      `json:"color"`
	Typography TypographyTokens `json:"typography"`
	Spacing    SpacingTokens    `json:"spacing"`
	Border     BorderTokens     `json:"border"`
	Shadow     ShadowTokens     `json:"shadow"`
	Gradient   *GradientTokens  `json:"gradient,omitempty"`
}

type ColorTokens struct {
	Brand       BrandColors       `json:"brand"`
	Background  BackgroundColors  `json:"background"`
	Text        TextColors        `json:"text"`
	Border      BorderColors      `json:"border"`
	Interactive InteractiveColors `json:"interactive"`
	Feedback    FeedbackColors    `json:"feedback"`
}

type BrandColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

type BackgroundColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Elevated  string `json:"elevated"`
	Overlay   string `json:"overlay,omitempty"`
}

type TextColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Tertiary  string `json:"tertiary"`
	Inverse   string `json:"inverse"`
}

type BorderColors struct {
	Default string `json:"default"`
	Strong  string `json:"strong"`
}

type InteractiveColors struct {
	Default  string `json:"default"`
	Hover    string `json:"hover"`
	Active   string `json:"active"`
	Disabled string `json:"disabled"`
}

type FeedbackColors struct {
	Success string `json:"success"`
	Warning string `json:"warning"`
	Error   string `json:"error"`
	Info    string `json:"info"`
}

type TypographyTokens struct {
	FontFamily    FontFamily    `json:"fontFamily"`
	FontSize      FontSizes     `json:"fontSize"`
	FontWeight    FontWeights   `json:"fontWeight"`
	LineHeight    LineHeights   `json:"lineHeight"`
	LetterSpacing LetterSpacing `json:"letterSpacing"`
}

type FontFamily struct {
	Display string `json:"display"`
	Body    string `json:"body"`
	Mono    string `json:"mono"`
}

// FontSizes is a fixed ordered scale. xs through 4xl are required,
// 5xl through 9xl are optional extensions for display-heavy themes.
type FontSizes struct {
	XS   string `json:"xs"`
	SM   string `json:"sm"`
	Base string `json:"base"`
	LG   string `json:"lg"`
	XL   string `json:"xl"`
	XXL  string `json:"2xl"`
	X3L  string `json:"3xl"`
	X4L  string `json:"4xl"`
	X5L  string `json:"5xl,omitempty"`
	X6L  string `json:"6xl,omitempty"`
	X7L  string `json:"7xl,omitempty"`
	X8L  string `json:"8xl,omitempty"`
	X9L  string `json:"9xl,omitempty"`
}

type FontWeights struct {
	Light    string `json:"light,omitempty"`
	Normal   string `json:"normal"`
	Medium   string `json:"medium"`
	Semibold string `json:"semibold"`
	Bold     string `json:"bold"`
}

type LineHeights struct {
	Tight   string `json:"tight"`
	Normal  string `json:"normal"`
	Relaxed string `json:"relaxed"`
	Loose   string `json:"loose,omitempty"`
}

type LetterSpacing struct {
	Tight  string `json:"tight"`
	Normal string `json:"normal"`
	Wide   string `json:"wide"`
}

// Spacing presets name the overall density; the scale carries the values.
const (
	SpacingPresetCompact  = "compact"
	SpacingPresetNormal   = "normal"
	SpacingPresetSpacious = "spacious"
)

type SpacingTokens struct {
	Preset string       `json:"preset"`
	Scale  SpacingScale `json:"scale"`
}

type SpacingScale struct {
	XS  string `json:"xs"`
	SM  string `json:"sm"`
	MD  string `json:"md"`
	LG  string `json:"lg"`
	XL  string `json:"xl"`
	XXL string `json:"2xl"`
	X3L string `json:"3xl"`
}

type BorderTokens struct {
	Width  BorderWidths `json:"width"`
	Radius BorderRadii  `json:"radius"`
}

type BorderWidths struct {
	None   string `json:"none,omitempty"`
	Thin   string `json:"thin"`
	Medium string `json:"medium"`
	Thick  string `json:"thick"`
}

type BorderRadii struct {
	SM   string `json:"sm"`
	MD   string `json:"md"`
	LG   string `json:"lg"`
	XL   string `json:"xl"`
	XXL  string `json:"2xl"`
	X3L  string `json:"3xl"`
	Full string `json:"full"`
}

type ShadowTokens struct {
	SM    string `json:"sm"`
	MD    string `json:"md"`
	LG    string `json:"lg"`
	XL    string `json:"xl"`
	XXL   string `json:"2xl,omitempty"`
	Inner string `json:"inner,omitempty"`
}

type GradientTokens struct {
	Brand   string            `json:"brand,omitempty"`
	Presets map[string]string `json:"presets,omitempty"`
}

// Clone returns a deep copy. Theme edits and preset instantiation must never
// alias the gradient preset map of the source.
func (t DesignTokens) Clone() DesignTokens {
	out := t
	if t.Gradient != nil {
		gradient := GradientTokens{Brand: t.Gradient.Brand}
		if t.Gradient.Presets != nil {
			gradient.Presets = make(map[string]string, len(t.Gradient.Presets))
			for name, value := range t.Gradient.Presets {
				gradient.Presets[name] = value
			}
		}
		out.Gradient = &gradient
	}
	return out
}
