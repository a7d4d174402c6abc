package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/folio/internal/models"
)

// TUITheme is the colour set the portfolio screens are drawn with
type TUITheme struct {
	Name        string
	Description string

	Background lipgloss.Color
	Surface    lipgloss.Color // cards, widget panel
	Border     lipgloss.Color

	Primary   lipgloss.Color // tabs, links, focus
	Secondary lipgloss.Color // success, strong skills
	Accent    lipgloss.Color // hero gradient, AI badge
	Warning   lipgloss.Color
	Error     lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// palette lists colours in struct order: background, surface, border,
// primary, secondary, accent, warning, error, text, dim, mute
func palette(name, desc string, c ...string) TUITheme {
	col := func(i int) lipgloss.Color { return lipgloss.Color(c[i]) }
	return TUITheme{
		Name: name, Description: desc,
		Background: col(0), Surface: col(1), Border: col(2),
		Primary: col(3), Secondary: col(4), Accent: col(5), Warning: col(6), Error: col(7),
		Text: col(8), TextDim: col(9), TextMute: col(10),
	}
}

var (
	// MidnightTheme follows the site itself: gray-900 page, indigo accents, pink highlights
	MidnightTheme = palette("midnight", "Midnight - gray and indigo, the portfolio site colours",
		"#111827", "#1f2937", "#374151",
		"#6366f1", "#34d399", "#db2777", "#fbbf24", "#f87171",
		"#f3f4f6", "#9ca3af", "#4b5563")

	TokyoNightTheme = palette("tokyonight", "Tokyo Night - dark theme with blue accents",
		"#1a1b26", "#24283b", "#414868",
		"#7aa2f7", "#9ece6a", "#bb9af7", "#e0af68", "#f7768e",
		"#c0caf5", "#565f89", "#3b4261")

	NordTheme = palette("nord", "Nord - arctic, cool tones",
		"#2e3440", "#3b4252", "#4c566a",
		"#88c0d0", "#a3be8c", "#b48ead", "#ebcb8b", "#bf616a",
		"#eceff4", "#7b88a1", "#4c566a")

	DraculaTheme = palette("dracula", "Dracula - vibrant dark theme",
		"#282a36", "#44475a", "#6272a4",
		"#8be9fd", "#50fa7b", "#ff79c6", "#f1fa8c", "#ff5555",
		"#f8f8f2", "#6272a4", "#44475a")
)

var tuiThemes = []TUITheme{MidnightTheme, TokyoNightTheme, NordTheme, DraculaTheme}

// CategoryColor returns the badge colour for a project category
func (t TUITheme) CategoryColor(c models.Category) lipgloss.Color {
	switch c {
	case models.CategoryWeb:
		return t.Primary
	case models.CategoryMobile:
		return t.Secondary
	case models.CategoryAI:
		return t.Accent
	case models.CategoryDesign:
		return t.Warning
	default:
		return t.TextDim
	}
}

// LevelColor grades a skill level: strong skills use the secondary colour,
// mid-range the primary, the rest the warning colour
func (t TUITheme) LevelColor(level int) lipgloss.Color {
	switch {
	case level >= 90:
		return t.Secondary
	case level >= 80:
		return t.Primary
	default:
		return t.Warning
	}
}

var currentTUITheme = MidnightTheme

// GetTUITheme returns the active theme
func GetTUITheme() TUITheme {
	return currentTUITheme
}

// SetTUITheme activates the named theme. Unknown names keep the
// current theme and report false.
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if ok {
		currentTUITheme = theme
	}
	return ok
}

func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, t := range tuiThemes {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// AvailableTUIThemes returns the built-in themes, default first
func AvailableTUIThemes() []TUITheme {
	return append([]TUITheme(nil), tuiThemes...)
}

func TUIThemeNames() []string {
	names := make([]string, len(tuiThemes))
	for i, t := range tuiThemes {
		names[i] = t.Name
	}
	return names
}
