package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/folio/internal/content"
	"github.com/diogo/folio/internal/library"
	"github.com/diogo/folio/internal/models"
	"github.com/diogo/folio/internal/navigation"
	"github.com/diogo/folio/internal/render"
)

const (
	cardWidth    = 36
	relatedCount = 2
)

var errNoFetcher = errors.New("live preview is not available")

// gridColumns is how many cards fit on one row
func (m Model) gridColumns() int {
	return max(m.body.Width/(cardWidth+2), 1)
}

// updateLibrary handles keys on the library view
func (m Model) updateLibrary(key string) (Model, tea.Cmd, bool) {
	if m.library.IsOpen() {
		return m.updateOverlay(key)
	}

	switch key {
	case "tab":
		m.library.CycleFilter(1)
	case "shift+tab":
		m.library.CycleFilter(-1)
	case "left", "h":
		m.library.MoveCursor(-1)
	case "right", "l":
		m.library.MoveCursor(1)
	case "up", "k":
		m.library.MoveCursor(-m.gridColumns())
	case "down", "j":
		m.library.MoveCursor(m.gridColumns())
	case "enter":
		if err := m.library.OpenSelected(); err != nil {
			return m, nil, true
		}
		m.page, m.pageErr = nil, nil
		m.body.GotoTop()
	default:
		return m, nil, false
	}
	return m, nil, true
}

// updateOverlay handles keys while a project is open
func (m Model) updateOverlay(key string) (Model, tea.Cmd, bool) {
	if m.library.HandleKey(key) {
		m.body.GotoTop()
		return m, nil, true
	}

	switch key {
	case "p":
		err := m.library.TogglePreview()
		if errors.Is(err, library.ErrDemoUnavailable) {
			m.alert = "Live demo is not available for this project."
			return m, nil, true
		}
		if m.library.Preview() == library.PreviewLoading {
			p, _ := m.library.Current()
			m.page, m.pageErr = nil, nil
			m.animationFrame = 0
			return m, tea.Batch(m.fetchPreview(p.DemoURL), m.spinner.Tick, animationTick()), true
		}
	case "y":
		m.copyLink()
	case "b":
		m.library.BackToLibrary()
		m.navigate(navigation.Library)
	default:
		return m, nil, false
	}
	return m, nil, true
}

// copyLink copies the current project's demo URL, or its source URL when it
// has no demo.
func (m *Model) copyLink() {
	p, ok := m.library.Current()
	if !ok {
		return
	}
	link := p.GithubURL
	if p.HasDemo() {
		link = p.DemoURL
	}
	if link == "" {
		m.notice = "Nothing to copy"
		return
	}
	if err := m.copy(link); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		m.notice = "Clipboard unavailable"
		return
	}
	m.notice = "Copied " + link
}

// renderLibrary renders the filter bar and the project grid, or the overlay
func (m Model) renderLibrary() string {
	if m.library.IsOpen() {
		return m.renderOverlay()
	}

	var filters []string
	for _, f := range content.Filters() {
		if f == m.library.Filter() {
			filters = append(filters, activeFilterStyle.Render(string(f)))
		} else {
			filters = append(filters, filterStyle.Render(string(f)))
		}
	}

	var b strings.Builder
	b.WriteString(heroTitle.Render("Library"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, filters...))
	b.WriteString("\n\n")

	visible := m.library.Visible()
	if len(visible) == 0 {
		b.WriteString(hintStyle.Render("No projects in this category yet."))
		return b.String()
	}

	cols := m.gridColumns()
	var rows []string
	for start := 0; start < len(visible); start += cols {
		end := min(start+cols, len(visible))
		var cards []string
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(visible[i], cardWidth, i == m.library.Cursor()))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))

	return b.String()
}

// renderCard renders a project summary card
func (m Model) renderCard(p models.Project, width int, selected bool) string {
	theme := render.GetTUITheme()
	badge := lipgloss.NewStyle().
		Foreground(theme.CategoryColor(p.Category)).
		Bold(true).
		Render(strings.ToUpper(string(p.Category)))

	stack := subtitleStyle.Render(strings.Join(p.TechStack, " · "))

	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	return style.Width(width).Render(lipgloss.JoinVertical(
		lipgloss.Left,
		badge,
		cardTitleStyle.Render(p.Title),
		lipgloss.NewStyle().Foreground(colorText).Render(p.Description),
		stack,
	))
}

// renderOverlay renders the open project's detail, or its live preview
func (m Model) renderOverlay() string {
	p, ok := m.library.Current()
	if !ok {
		return ""
	}
	width := m.body.Width - 4

	position := subtitleStyle.Render(fmt.Sprintf("%d / %d", m.library.Index()+1, len(m.library.Visible())))

	var inner string
	if m.library.InPreview() {
		inner = m.renderPreview(p, width)
	} else {
		md := render.ProjectMarkdown(p, m.library.Related(relatedCount))
		inner = render.Reply(md, width, m.renderOpt)
	}

	return overlayStyle.Width(width + 2).Render(lipgloss.JoinVertical(lipgloss.Left, position, inner))
}

// renderPreview renders the fetched demo page
func (m Model) renderPreview(p models.Project, width int) string {
	header := cardTitleStyle.Render("Live preview  ") + subtitleStyle.Render(p.DemoURL)

	switch m.library.Preview() {
	case library.PreviewLoading:
		return lipgloss.JoinVertical(lipgloss.Left, header, "",
			m.spinner.View()+loadingStyle.Render(" Establishing Secure Tunnel..."))
	case library.PreviewFailed:
		return lipgloss.JoinVertical(lipgloss.Left, header, "",
			noticeStyle.Render("The demo could not be loaded. Press esc to go back."),
			FormatError(m.pageErr))
	}

	page := m.page
	if page == nil || page.URL != p.DemoURL {
		return header
	}

	text := lipgloss.NewStyle().Width(width).Foreground(colorText)
	parts := []string{header, ""}
	if page.Title != "" {
		parts = append(parts, heroTitle.Render(page.Title))
	}
	if page.Description != "" {
		parts = append(parts, subtitleStyle.Width(width).Render(page.Description), "")
	}
	for _, para := range page.Paragraphs {
		parts = append(parts, text.Render(para), "")
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
