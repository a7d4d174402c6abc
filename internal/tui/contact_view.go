package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/folio/internal/contact"
)

// Form focus positions. focusNone lets number keys switch views.
const (
	focusNone = iota - 1
	focusName
	focusEmail
	focusMessage
	focusSend
	focusCount
)

// contactForm holds the input widgets behind contact.Session
type contactForm struct {
	name    textinput.Model
	email   textinput.Model
	message textarea.Model
	focus   int
	err     error // last validation error
}

func newContactForm() contactForm {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 120

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254

	msg := textarea.New()
	msg.Placeholder = "Tell me about your project..."
	msg.ShowLineNumbers = false
	msg.CharLimit = 4000
	msg.SetHeight(5)
	msg.FocusedStyle.CursorLine = lipgloss.NewStyle()

	f := contactForm{name: name, email: email, message: msg, focus: focusNone}
	return f
}

// value returns the entered fields
func (f contactForm) value() contact.Form {
	return contact.Form{
		Name:    f.name.Value(),
		Email:   f.email.Value(),
		Message: f.message.Value(),
	}
}

// setFocus moves focus to field i, blurring the others
func (f *contactForm) setFocus(i int) tea.Cmd {
	f.focus = i
	f.name.Blur()
	f.email.Blur()
	f.message.Blur()

	switch i {
	case focusName:
		return f.name.Focus()
	case focusEmail:
		return f.email.Focus()
	case focusMessage:
		return f.message.Focus()
	}
	return nil
}

func (f *contactForm) clear() {
	f.name.Reset()
	f.email.Reset()
	f.message.Reset()
	f.err = nil
	f.setFocus(focusNone)
}

// update forwards non-key messages (cursor blink) to the focused field
func (f contactForm) update(msg tea.Msg) (contactForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case focusName:
		f.name, cmd = f.name.Update(msg)
	case focusEmail:
		f.email, cmd = f.email.Update(msg)
	case focusMessage:
		f.message, cmd = f.message.Update(msg)
	}
	return f, cmd
}

// updateContact handles keys on the contact view
func (m Model) updateContact(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	key := msg.String()

	switch m.contact.State() {
	case contact.Submitting:
		return m, nil, false
	case contact.Sent:
		if key == "enter" {
			m.contact.Reset()
			cmd := m.form.setFocus(focusName)
			return m, cmd, true
		}
		return m, nil, false
	}

	switch key {
	case "tab", "down":
		if key == "down" && m.form.focus == focusMessage {
			break
		}
		cmd := m.form.setFocus((m.form.focus + 1) % focusCount)
		return m, cmd, true
	case "shift+tab", "up":
		if key == "up" && m.form.focus == focusMessage {
			break
		}
		next := m.form.focus - 1
		if next < 0 {
			next = focusCount - 1
		}
		cmd := m.form.setFocus(next)
		return m, cmd, true
	case "esc":
		if m.form.focus == focusNone {
			return m, nil, false
		}
		cmd := m.form.setFocus(focusNone)
		return m, cmd, true
	case "ctrl+s":
		cmd := m.submitContact()
		return m, cmd, true
	case "enter":
		switch m.form.focus {
		case focusNone:
			cmd := m.form.setFocus(focusName)
			return m, cmd, true
		case focusSend:
			cmd := m.submitContact()
			return m, cmd, true
		case focusName, focusEmail:
			cmd := m.form.setFocus(m.form.focus + 1)
			return m, cmd, true
		}
	}

	if m.form.focus == focusNone || m.form.focus == focusSend {
		return m, nil, false
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	m.contact.SetForm(m.form.value())
	return m, cmd, true
}

// submitContact validates the form and starts delivery
func (m *Model) submitContact() tea.Cmd {
	m.contact.SetForm(m.form.value())
	form, err := m.contact.Begin()
	if err != nil {
		m.form.err = err
		return nil
	}
	m.form.err = nil
	m.form.setFocus(focusNone)
	return tea.Batch(m.sendMail(form), m.spinner.Tick)
}

// renderContact renders the contact form or the confirmation panel
func (m Model) renderContact() string {
	width := m.body.Width - 2

	var b strings.Builder
	b.WriteString(heroTitle.Render("Contact"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Direct Email  ") + lipgloss.NewStyle().Foreground(colorText).Render(ownerEmail))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Social        ") + lipgloss.NewStyle().Foreground(colorText).Render(ownerHandle))
	b.WriteString("\n\n")

	if m.contact.State() == contact.Sent {
		b.WriteString(successStyle.Width(min(width, 60)).Render(
			"MESSAGE RECEIVED\n\nI've received your transmission. Expect a response within 24 standard hours."))
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render("enter send another message"))
		return b.String()
	}

	fieldWidth := min(width-4, 60)
	m.form.name.Width = fieldWidth
	m.form.email.Width = fieldWidth
	m.form.message.SetWidth(fieldWidth)

	field := func(i int, label, view string) {
		style := fieldLabelStyle
		if m.form.focus == i {
			style = focusedLabelStyle
		}
		b.WriteString(style.Render(label))
		b.WriteString("\n")
		b.WriteString(view)
		b.WriteString("\n\n")
	}
	field(focusName, "Name", m.form.name.View())
	field(focusEmail, "Email Address", m.form.email.View())
	field(focusMessage, "Message", m.form.message.View())

	button := buttonStyle.Render("Send Message")
	if m.form.focus == focusSend {
		button = activeButtonStyle.Render("Send Message")
	}
	if m.contact.State() == contact.Submitting {
		button = m.spinner.View() + loadingStyle.Render(" Sending...")
	}
	b.WriteString(button)

	if m.form.err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("✗ " + m.form.err.Error()))
	}
	if m.form.focus == focusNone && m.contact.State() == contact.Editing {
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render("enter or tab to start typing"))
	}

	return b.String()
}
