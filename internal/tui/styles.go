// Package tui provides the terminal user interface for folio.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/folio/internal/errors"
	"github.com/diogo/folio/internal/render"
)

// Color variables (updated from theme)
var (
	// Base colors
	colorSurface lipgloss.Color
	colorBorder  lipgloss.Color

	// Accent colors
	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color

	// Text colors
	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	// Header with brand and tabs
	headerStyle    lipgloss.Style
	brandStyle     lipgloss.Style
	tabStyle       lipgloss.Style
	activeTabStyle lipgloss.Style

	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	// Page body
	bodyStyle    lipgloss.Style
	heroStyle    lipgloss.Style
	heroTitle    lipgloss.Style
	sectionTitle lipgloss.Style

	// Library grid
	cardStyle         lipgloss.Style
	selectedCardStyle lipgloss.Style
	cardTitleStyle    lipgloss.Style
	filterStyle       lipgloss.Style
	activeFilterStyle lipgloss.Style

	// Project overlay
	overlayStyle lipgloss.Style
	noticeStyle  lipgloss.Style

	// Assistant widget
	widgetStyle         lipgloss.Style
	widgetTitleStyle    lipgloss.Style
	userBubbleStyle     lipgloss.Style
	userLabelStyle      lipgloss.Style
	assistantLabelStyle lipgloss.Style
	inputPanelStyle     lipgloss.Style
	inputLabelStyle     lipgloss.Style
	loadingStyle        lipgloss.Style

	// Contact form
	fieldLabelStyle   lipgloss.Style
	focusedLabelStyle lipgloss.Style
	buttonStyle       lipgloss.Style
	activeButtonStyle lipgloss.Style
	successStyle      lipgloss.Style

	// Modal alert
	alertStyle lipgloss.Style

	// Status bar styles
	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style

	errorStyle lipgloss.Style
)

// Gradient colors for the thinking animation (fixed colors)
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ff6b6b"), // Red
	lipgloss.Color("#feca57"), // Yellow
	lipgloss.Color("#48dbfb"), // Cyan
	lipgloss.Color("#ff9ff3"), // Pink
	lipgloss.Color("#54a0ff"), // Blue
	lipgloss.Color("#5f27cd"), // Purple
	lipgloss.Color("#00d2d3"), // Teal
	lipgloss.Color("#1dd1a1"), // Green
}

func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorSurface = theme.Surface
	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorWarning = theme.Warning
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles()
}

// rebuildStyles creates all lipgloss styles with current color values
func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)

	brandStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	tabStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
		Foreground(colorSurface).
		Background(colorPrimary).
		Bold(true).
		Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	bodyStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	heroStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2).
		Align(lipgloss.Center)

	heroTitle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		MarginBottom(1)

	sectionTitle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true).
		MarginTop(1)

	cardStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Foreground(colorText).
		Padding(0, 1)

	selectedCardStyle = cardStyle.
		BorderForeground(colorAccent)

	cardTitleStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	filterStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Padding(0, 1)

	activeFilterStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true).
		Underline(true).
		Padding(0, 1)

	overlayStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1)

	noticeStyle = lipgloss.NewStyle().
		Foreground(colorWarning).
		Italic(true)

	widgetStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(0, 1)

	widgetTitleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	userBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorSecondary).
		Padding(0, 1).
		MarginLeft(2)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true).
		MarginLeft(2)

	assistantLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	fieldLabelStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	focusedLabelStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	buttonStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Background(colorBorder).
		Padding(0, 2)

	activeButtonStyle = buttonStyle.
		Foreground(colorSurface).
		Background(colorAccent).
		Bold(true)

	successStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSecondary).
		Foreground(colorSecondary).
		Padding(1, 2)

	alertStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(colorError).
		Foreground(colorText).
		Padding(1, 3)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)
}

// FormatError returns a styled error message with additional context.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	errStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := errors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	switch {
	case errors.IsAuthError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check GEMINI_API_KEY in your environment or ~/.folio/.env"))
	case errors.IsRateLimitError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: You've hit the usage limit. Try again later or use a different model"))
	case errors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check your internet connection and try again"))
	}

	return sb.String()
}
