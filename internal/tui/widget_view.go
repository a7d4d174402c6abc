package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/folio/internal/models"
	"github.com/diogo/folio/internal/render"
)

// renderWidget renders the assistant panel: messages, then either the input
// or the thinking indicator.
func (m Model) renderWidget() string {
	width := m.widgetWidth()

	title := lipgloss.JoinHorizontal(lipgloss.Center,
		widgetTitleStyle.Render("✦ "+models.AssistantName),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.modelName),
	)

	var input string
	if m.widget.Awaiting() {
		input = m.renderThinking()
	} else {
		input = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.input.View(),
		)
	}

	return widgetStyle.
		Width(width - 2).
		Height(m.body.Height).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			title,
			m.chat.View(),
			inputPanelStyle.Width(width-6).Render(input),
		))
}

// renderThinking renders the animated indicator shown while a reply is
// outstanding
func (m Model) renderThinking() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

	frame := m.animationFrame

	spinIdx := frame % len(chars)
	spinColor := gradientColors[frame%len(gradientColors)]
	spin := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	var dots strings.Builder
	numDots := (frame / 3) % 4
	for i := 0; i < numDots; i++ {
		dotColor := gradientColors[(frame+i)%len(gradientColors)]
		dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
	}
	for i := numDots; i < 3; i++ {
		dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Thinking... ")

	return fmt.Sprintf("%s%s%s", spin, text, dots.String())
}

// refreshChat refreshes the chat viewport with styled messages
func (m *Model) refreshChat() {
	if !m.ready || !m.widget.IsOpen() {
		return
	}

	var content strings.Builder
	bubbleWidth := max(m.chat.Width-4, 10)

	for i, msg := range m.widget.Messages() {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.Role == models.RoleUser {
			content.WriteString(userLabelStyle.Render("● You"))
			content.WriteString("\n")
			content.WriteString(userBubbleStyle.Width(bubbleWidth).Render(msg.Content))
		} else {
			content.WriteString(assistantLabelStyle.Render("✦ " + models.AssistantName))
			content.WriteString("\n")
			content.WriteString(render.Reply(msg.Content, bubbleWidth, m.renderOpt))
		}
		content.WriteString("\n")
	}

	m.chat.SetContent(content.String())
	m.chat.GotoBottom()
}
