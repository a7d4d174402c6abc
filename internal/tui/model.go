package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/folio/internal/assistant"
	"github.com/diogo/folio/internal/clock"
	"github.com/diogo/folio/internal/contact"
	"github.com/diogo/folio/internal/content"
	apierrors "github.com/diogo/folio/internal/errors"
	"github.com/diogo/folio/internal/library"
	"github.com/diogo/folio/internal/models"
	"github.com/diogo/folio/internal/navigation"
	"github.com/diogo/folio/internal/preview"
	"github.com/diogo/folio/internal/render"
	"github.com/diogo/folio/internal/widget"
)

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	// replyMsg carries the assistant's answer to the request with id
	replyMsg struct {
		id   string
		text string
	}
	// previewMsg is the outcome of fetching a demo page
	previewMsg struct {
		url  string
		page *preview.Page
		err  error
	}
	// sentMsg is the outcome of delivering the contact form
	sentMsg struct {
		err error
	}
	// idleMsg runs widget timer work on the event loop
	idleMsg struct {
		fn func()
	}
)

// Assistant answers questions asked in the widget
type Assistant interface {
	Send(ctx context.Context, userText string, priorHistory []models.Turn) string
}

// PageFetcher loads a demo page for the live preview
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*preview.Page, error)
}

// Options wires the application together
type Options struct {
	Registry  *content.Registry
	Assistant Assistant
	Fetcher   PageFetcher
	Mailer    contact.Mailer
	Location  navigation.Location
	Clock     clock.Clock

	// IdleTimeout auto-closes the assistant. Zero disables it.
	IdleTimeout time.Duration
	Dispatch    widget.Dispatcher

	Render    render.Options
	Logger    *zap.Logger
	ModelName string

	// Copy writes to the clipboard. Nil uses the system clipboard.
	Copy func(string) error
}

// Model represents the TUI state
type Model struct {
	registry  *content.Registry
	assistant Assistant
	fetcher   PageFetcher
	mailer    contact.Mailer
	logger    *zap.Logger
	renderOpt render.Options
	modelName string
	copy      func(string) error

	nav     *navigation.Controller
	widget  *widget.Widget
	library *library.Library
	contact *contact.Session

	// UI components
	body    viewport.Model
	chat    viewport.Model
	input   textarea.Model
	spinner spinner.Model
	form    contactForm

	// State
	page           *preview.Page
	pageErr        error
	alert          string
	notice         string
	scrollSeq      uint64
	widgetShown    bool
	animationFrame int
	ready          bool

	// Dimensions
	width  int
	height int
}

// New creates the application model
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Registry == nil {
		opts.Registry = content.Default()
	}
	if opts.Assistant == nil {
		opts.Assistant = assistant.NewClient(assistant.Static{}, "")
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Render.Width == 0 {
		opts.Render = render.DefaultOptions()
	}
	if opts.ModelName == "" {
		opts.ModelName = models.DefaultModel.Name
	}

	nav := navigation.New(opts.Location)
	w := widget.New(widget.Options{
		Clock:       opts.Clock,
		IdleTimeout: opts.IdleTimeout,
		Dispatch:    opts.Dispatch,
		Navigator:   nav,
	})
	logger := opts.Logger
	w.OnClose(func(reason widget.CloseReason) {
		logger.Debug("assistant closed", zap.String("reason", string(reason)))
	})

	ta := textarea.New()
	ta.Placeholder = "Ask about projects, skills..."
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	m := Model{
		registry:  opts.Registry,
		assistant: opts.Assistant,
		fetcher:   opts.Fetcher,
		mailer:    opts.Mailer,
		logger:    logger,
		renderOpt: opts.Render,
		modelName: opts.ModelName,
		copy:      opts.Copy,
		nav:       nav,
		widget:    w,
		library:   library.New(opts.Registry),
		contact:   contact.NewSession(),
		body:      viewport.New(0, 0),
		chat:      viewport.New(0, 0),
		input:     ta,
		spinner:   s,
		form:      newContactForm(),
		scrollSeq: nav.ScrollSeq(),
	}
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()

	case tea.MouseMsg:
		m.widget.Activity()
		var cmd tea.Cmd
		if m.widget.IsOpen() && msg.X >= m.width-m.widgetWidth() {
			m.chat, cmd = m.chat.Update(msg)
		} else {
			m.body, cmd = m.body.Update(msg)
		}
		return m, cmd

	case tea.KeyMsg:
		m.widget.Activity()
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)

	case replyMsg:
		if m.widget.Settle(msg.id, msg.text) {
			m.refreshChat()
		}

	case previewMsg:
		if m.library.PreviewLoaded(msg.url, msg.err == nil) {
			m.page, m.pageErr = msg.page, msg.err
			if msg.err != nil {
				m.logger.Warn("preview failed", zap.String("url", msg.url), zap.Error(msg.err))
			}
		}

	case sentMsg:
		m.contact.Finish(msg.err)
		if msg.err != nil {
			m.logger.Error("contact delivery failed",
				zap.Int("status", apierrors.GetHTTPStatus(msg.err)),
				zap.Error(msg.err),
			)
		} else {
			m.form.clear()
		}

	case idleMsg:
		msg.fn()

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case animationTickMsg:
		if m.busy() {
			m.animationFrame++
			return m, animationTick()
		}
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
		m.form, cmd = m.form.update(msg)
		cmds = append(cmds, cmd)
	}

	if m.widget.IsOpen() != m.widgetShown {
		m.widgetShown = m.widget.IsOpen()
		if m.widgetShown {
			cmds = append(cmds, m.input.Focus())
		} else {
			m.input.Blur()
		}
		m.layout()
	}
	m.refreshBody()

	return m, tea.Batch(cmds...)
}

// handleKey routes a key press. Modal alerts take it first, then the
// launcher and the open widget, then the active view.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()

	if m.alerting() {
		switch key {
		case "enter", "esc", " ":
			m.alert = ""
			m.contact.DismissAlert()
		}
		return m, nil
	}

	if key == "ctrl+a" {
		m.widget.Toggle()
		return m, nil
	}

	if v, ok := viewForKey(key, true); ok {
		m.navigate(v)
		return m, nil
	}

	if m.widget.IsOpen() {
		return m.updateWidget(msg)
	}

	var (
		cmd      tea.Cmd
		consumed bool
	)
	switch m.nav.Active() {
	case navigation.Home:
		consumed = m.updateHome(key)
	case navigation.Library:
		m, cmd, consumed = m.updateLibrary(key)
	case navigation.Contact:
		m, cmd, consumed = m.updateContact(msg)
	}
	if consumed {
		return m, cmd
	}

	if v, ok := viewForKey(key, false); ok {
		m.navigate(v)
		return m, nil
	}
	if key == "q" {
		return m, tea.Quit
	}

	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

// viewForKey maps number keys to tabs. alt+N always switches; a bare digit
// only when the active view did not take it.
func viewForKey(key string, alt bool) (navigation.View, bool) {
	prefix := ""
	if alt {
		prefix = "alt+"
	}
	for i, v := range navigation.Views() {
		if key == prefix+string(rune('1'+i)) {
			return v, true
		}
	}
	return "", false
}

// busy reports whether something is in flight that animates
func (m Model) busy() bool {
	return m.widget.Awaiting() ||
		m.library.Preview() == library.PreviewLoading ||
		m.contact.State() == contact.Submitting
}

func (m Model) alerting() bool {
	return m.alert != "" || m.contact.Alert() != ""
}

// navigate switches views. A failure to persist the location is logged; the
// switch itself always happens.
func (m *Model) navigate(v navigation.View) {
	if err := m.nav.Navigate(v); err != nil {
		m.logger.Warn("could not persist location", zap.Error(err))
	}
	m.notice = ""
}

func (m *Model) updateHome(key string) bool {
	switch key {
	case "enter":
		m.navigate(navigation.Library)
	case "c":
		m.navigate(navigation.Contact)
	default:
		return false
	}
	return true
}

// updateWidget handles keys while the assistant is open
func (m Model) updateWidget(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.widget.Close(widget.ReasonLauncher)
		return m, nil

	case "enter":
		m.widget.SetInput(m.input.Value())
		req, ok := m.widget.Submit()
		if !ok {
			return m, nil
		}
		m.input.Reset()
		m.animationFrame = 0
		m.refreshChat()
		return m, tea.Batch(m.ask(req), m.spinner.Tick, animationTick())

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.widget.SetInput(m.input.Value())
	return m, cmd
}

// ask sends a widget request to the assistant. Send never fails; errors come
// back as fallback text.
func (m Model) ask(req widget.Request) tea.Cmd {
	a := m.assistant
	return func() tea.Msg {
		return replyMsg{id: req.ID, text: a.Send(context.Background(), req.Text, req.History)}
	}
}

// fetchPreview loads the demo page for url
func (m Model) fetchPreview(url string) tea.Cmd {
	f := m.fetcher
	return func() tea.Msg {
		if f == nil {
			return previewMsg{url: url, err: apierrors.NewNetworkError(url, errNoFetcher)}
		}
		page, err := f.Fetch(context.Background(), url)
		return previewMsg{url: url, page: page, err: err}
	}
}

// sendMail delivers the contact form
func (m Model) sendMail(form contact.Form) tea.Cmd {
	mailer := m.mailer
	return func() tea.Msg {
		if mailer == nil {
			return sentMsg{err: apierrors.ErrMailerNotConfigured}
		}
		return sentMsg{err: mailer.Send(context.Background(), form)}
	}
}

// Layout constants
const (
	headerHeight = 3
	statusHeight = 1
	inputHeight  = 6
)

func (m Model) widgetWidth() int {
	if !m.widget.IsOpen() {
		return 0
	}
	return min(max(m.width*2/5, 32), 60)
}

// layout sizes the body and widget for the current window
func (m *Model) layout() {
	if !m.ready {
		return
	}
	bodyHeight := max(m.height-headerHeight-statusHeight-2, 5)
	bodyWidth := max(m.width-m.widgetWidth()-4, 20)

	m.body.Width = bodyWidth
	m.body.Height = bodyHeight

	if ww := m.widgetWidth(); ww > 0 {
		m.chat.Width = ww - 4
		m.chat.Height = max(bodyHeight-inputHeight-2, 3)
		m.input.SetWidth(ww - 8)
	}
	m.refreshChat()
	m.refreshBody()
}

// refreshBody re-renders the active view into the body viewport and honours
// scroll-to-top requests from navigation.
func (m *Model) refreshBody() {
	if !m.ready {
		return
	}
	m.body.SetContent(m.renderView())
	if seq := m.nav.ScrollSeq(); seq != m.scrollSeq {
		m.scrollSeq = seq
		m.body.GotoTop()
	}
}

// Run starts the TUI
func Run(opts Options) error {
	ref := &programRef{}
	opts.Dispatch = ref.dispatch

	p := tea.NewProgram(
		New(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	ref.p = p

	_, err := p.Run()
	return err
}

// programRef hands timer callbacks to the running program's event loop
type programRef struct {
	p *tea.Program
}

func (r *programRef) dispatch(fn func()) {
	if r.p != nil {
		r.p.Send(idleMsg{fn: fn})
	}
}
