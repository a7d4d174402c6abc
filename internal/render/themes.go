package render

// Markdown styles understood by Options.Style. Anything else is treated as a
// path to a glamour JSON style file.
const (
	StyleDark       = "dark"
	StyleLight      = "light"
	StyleTokyoNight = "tokyonight"
	StyleDracula    = "dracula"
	StylePink       = "pink"
	StyleNoTTY      = "notty"
	StyleASCII      = "ascii"
)

// StyleInfo describes a markdown style for `folio config show`
type StyleInfo struct {
	Name        string
	Description string
}

// MarkdownStyles lists the named markdown styles
func MarkdownStyles() []StyleInfo {
	return []StyleInfo{
		{Name: StyleDark, Description: "Dark theme (default)"},
		{Name: StyleTokyoNight, Description: "Tokyo Night color scheme"},
		{Name: StyleDracula, Description: "Dracula color scheme"},
		{Name: StylePink, Description: "Pink accents"},
		{Name: StyleLight, Description: "Light theme for bright terminals"},
		{Name: StyleNoTTY, Description: "Plain text (no styling)"},
		{Name: StyleASCII, Description: "ASCII-only output"},
	}
}

// IsNamedStyle reports whether style is one of MarkdownStyles
func IsNamedStyle(style string) bool {
	for _, s := range MarkdownStyles() {
		if s.Name == style {
			return true
		}
	}
	return false
}

// glamourStyle maps folio's style names onto glamour's standard style names
func glamourStyle(style string) string {
	switch style {
	case "":
		return StyleDark
	case StyleTokyoNight:
		return "tokyo-night"
	default:
		return style
	}
}
