package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/folio/internal/navigation"
	"github.com/diogo/folio/internal/render"
)

const (
	ownerName    = "Debabrata Mal"
	ownerTagline = "Web Developer • Voice Assistant Developer • Creative Coding"
	ownerEmail   = "debabratamal868@gmail.com"
	ownerHandle  = "@itzs_debabrata"
	featuredMax  = 3
)

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	header := m.renderHeader()
	body := bodyStyle.
		Width(m.body.Width + 2).
		Height(m.body.Height).
		Render(m.body.View())
	if m.widget.IsOpen() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderWidget())
	}

	screen := lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderStatusBar())

	if text := m.alertText(); text != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			alertStyle.Render(text+"\n\n"+hintStyle.Render("enter to dismiss")))
	}
	return screen
}

func (m Model) alertText() string {
	if m.alert != "" {
		return m.alert
	}
	return m.contact.Alert()
}

// renderHeader renders the brand and the view tabs
func (m Model) renderHeader() string {
	active := m.nav.Active()

	tabs := []string{brandStyle.Render("✦ " + ownerName), hintStyle.Render("  ")}
	for i, v := range navigation.Views() {
		label := fmt.Sprintf("%d %s", i+1, v.Title())
		if v == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	launcher := tabStyle.Render("ctrl+a Ask AI")
	if m.widget.IsOpen() {
		launcher = activeTabStyle.Render("ctrl+a Close AI")
	}
	tabs = append(tabs, hintStyle.Render("  "), launcher)

	return headerStyle.
		Width(max(m.width-2, 20)).
		Render(lipgloss.JoinHorizontal(lipgloss.Center, tabs...))
}

// renderView renders the active view's body content
func (m Model) renderView() string {
	switch m.nav.Active() {
	case navigation.About:
		return m.renderAbout()
	case navigation.Library:
		return m.renderLibrary()
	case navigation.Contact:
		return m.renderContact()
	default:
		return m.renderHome()
	}
}

// renderHome renders the landing view with the featured works
func (m Model) renderHome() string {
	width := m.body.Width - 2

	hero := heroStyle.Width(width).Render(lipgloss.JoinVertical(
		lipgloss.Center,
		heroTitle.Render(ownerName),
		subtitleStyle.Render(ownerTagline),
		"",
		hintStyle.Render("enter explore the library  •  c get in touch"),
	))

	var b strings.Builder
	b.WriteString(hero)
	b.WriteString("\n")
	b.WriteString(sectionTitle.Render("Featured Works"))
	b.WriteString("\n")

	projects := m.registry.Projects()
	if len(projects) > featuredMax {
		projects = projects[:featuredMax]
	}
	for _, p := range projects {
		b.WriteString(m.renderCard(p, width, false))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("View all →  press 3"))

	return b.String()
}

// renderAbout renders the skills grouped by category
func (m Model) renderAbout() string {
	width := m.body.Width - 2
	theme := render.GetTUITheme()

	var b strings.Builder
	b.WriteString(heroTitle.Render("About"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Foreground(colorText).Render(
		"My expertise spans the entire development lifecycle, from high-level architecture to pixel-perfect frontend execution."))
	b.WriteString("\n")

	labelWidth := 18
	barWidth := max(min(width-labelWidth-8, 40), 10)

	for _, group := range m.registry.SkillsByCategory() {
		b.WriteString(sectionTitle.Render(string(group.Category)))
		b.WriteString("\n")
		for _, s := range group.Skills {
			bar := progress.New(
				progress.WithSolidFill(string(theme.LevelColor(s.Level))),
				progress.WithoutPercentage(),
				progress.WithWidth(barWidth),
			)
			label := lipgloss.NewStyle().Width(labelWidth).Foreground(colorText).Render(s.Icon + " " + s.Name)
			pct := subtitleStyle.Render(fmt.Sprintf(" %3d%%", s.Level))
			b.WriteString(label + bar.ViewAs(float64(s.Level)/100) + pct + "\n")
		}
	}

	return b.String()
}

// renderStatusBar renders the bottom status bar with shortcuts for the
// current context
func (m Model) renderStatusBar() string {
	type shortcut struct {
		key  string
		desc string
	}
	var shortcuts []shortcut

	switch {
	case m.widget.IsOpen():
		send := shortcut{"Enter", "Send"}
		if !m.widget.CanSubmit() {
			send = shortcut{"Enter", "(waiting)"}
		}
		shortcuts = []shortcut{send, {"Esc", "Close"}, {"PgUp/PgDn", "Scroll"}}
	case m.nav.Active() == navigation.Library && m.library.IsOpen():
		shortcuts = []shortcut{{"←→", "Prev/Next"}, {"p", "Preview"}, {"y", "Copy link"}, {"b", "Back"}, {"Esc", "Close"}}
	case m.nav.Active() == navigation.Library:
		shortcuts = []shortcut{{"Tab", "Filter"}, {"Arrows", "Move"}, {"Enter", "Open"}}
	case m.nav.Active() == navigation.Contact:
		shortcuts = []shortcut{{"Tab", "Next field"}, {"ctrl+s", "Send"}, {"Esc", "Leave form"}}
	default:
		shortcuts = []shortcut{{"1-4", "Views"}, {"↑↓", "Scroll"}, {"q", "Quit"}}
	}
	shortcuts = append(shortcuts, shortcut{"ctrl+a", "Assistant"})

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	bar := strings.Join(items, statusDescStyle.Render("  │  "))
	if m.notice != "" {
		bar = subtitleStyle.Render(m.notice) + statusDescStyle.Render("  │  ") + bar
	}
	return statusBarStyle.Width(max(m.width, 20)).Align(lipgloss.Center).Render(bar)
}
