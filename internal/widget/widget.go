// Package widget implements the assistant chat widget: open/closed state,
// the single in-flight request, and the inactivity auto-close timer.
//
// A Widget is driven from one goroutine (the Bubble Tea event loop). The idle
// timer fires on a runtime goroutine and hands its work back through the
// Dispatcher, so every state change still happens on the owning loop.
package widget

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/diogo/folio/internal/clock"
	"github.com/diogo/folio/internal/conversation"
	"github.com/diogo/folio/internal/models"
	"github.com/diogo/folio/internal/navigation"
)

// State is the widget's visible state
type State int

const (
	Closed State = iota
	OpenIdle
	OpenAwaitingReply
)

func (s State) String() string {
	switch s {
	case OpenIdle:
		return "open-idle"
	case OpenAwaitingReply:
		return "open-awaiting-reply"
	default:
		return "closed"
	}
}

// CloseReason says why the widget closed
type CloseReason string

const (
	ReasonLauncher   CloseReason = "launcher"
	ReasonIdle       CloseReason = "idle"
	ReasonNavigation CloseReason = "navigation"
)

// Dispatcher runs f on the goroutine that owns the widget
type Dispatcher func(f func())

// Navigator is the part of the navigation controller the widget listens to
type Navigator interface {
	Subscribe(fn func(navigation.Change)) (unsubscribe func())
}

// Options configures a Widget
type Options struct {
	Clock clock.Clock
	// IdleTimeout closes an open widget after this long without activity.
	// Zero disables auto-close.
	IdleTimeout time.Duration
	// Dispatch marshals idle expiry onto the owning loop. Nil runs the
	// expiry directly on the timer's goroutine.
	Dispatch  Dispatcher
	Navigator Navigator
	Greeting  string
}

// Request is a submitted question waiting for a reply
type Request struct {
	ID      string
	Text    string
	History []models.Turn
}

// Session describes the current open period
type Session struct {
	ID             string
	OpenedAt       time.Time
	LastActivityAt time.Time
}

// Widget is the assistant widget state machine
type Widget struct {
	clock       clock.Clock
	idleTimeout time.Duration
	dispatch    Dispatcher
	nav         Navigator

	conv    *conversation.Conversation
	open    bool
	input   string
	pending *Request
	session Session

	timer       clock.Timer
	timerGen    uint64
	unsubscribe func()

	onClose []func(CloseReason)
}

// New creates a closed widget with a seeded conversation
func New(opts Options) *Widget {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Greeting == "" {
		opts.Greeting = models.Greeting
	}
	return &Widget{
		clock:       opts.Clock,
		idleTimeout: opts.IdleTimeout,
		dispatch:    opts.Dispatch,
		nav:         opts.Navigator,
		conv:        conversation.New(opts.Greeting, opts.Clock),
	}
}

// State returns the current state
func (w *Widget) State() State {
	switch {
	case !w.open:
		return Closed
	case w.pending != nil:
		return OpenAwaitingReply
	default:
		return OpenIdle
	}
}

// IsOpen reports whether the panel is visible
func (w *Widget) IsOpen() bool { return w.open }

// Awaiting reports whether a request is outstanding, open or not
func (w *Widget) Awaiting() bool { return w.pending != nil }

// Pending returns the outstanding request, if any
func (w *Widget) Pending() (Request, bool) {
	if w.pending == nil {
		return Request{}, false
	}
	return *w.pending, true
}

// Session returns the current or most recent session
func (w *Widget) Session() Session { return w.session }

// Messages returns the conversation log
func (w *Widget) Messages() []models.ChatMessage { return w.conv.Messages() }

// Len returns the number of messages in the conversation
func (w *Widget) Len() int { return w.conv.Len() }

// OnClose registers fn to run after every close
func (w *Widget) OnClose(fn func(CloseReason)) {
	w.onClose = append(w.onClose, fn)
}

// Toggle opens a closed widget or closes an open one
func (w *Widget) Toggle() {
	if w.open {
		w.Close(ReasonLauncher)
		return
	}
	w.openSession()
}

// Open opens the widget if it is closed
func (w *Widget) Open() {
	if !w.open {
		w.openSession()
	}
}

func (w *Widget) openSession() {
	now := w.clock.Now()
	w.open = true
	w.session = Session{ID: uuid.NewString(), OpenedAt: now, LastActivityAt: now}
	w.schedule()

	if w.nav != nil && w.unsubscribe == nil {
		w.unsubscribe = w.nav.Subscribe(func(navigation.Change) {
			w.Close(ReasonNavigation)
		})
	}
}

// Close closes the widget unconditionally. History, the draft input and any
// outstanding request survive.
func (w *Widget) Close(reason CloseReason) {
	if !w.open {
		return
	}
	w.open = false
	w.cancelTimer()
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
	for _, fn := range w.onClose {
		fn(reason)
	}
}

// Activity records a pointer/key event. It restarts the idle countdown while
// open and is ignored while closed.
func (w *Widget) Activity() {
	if !w.open {
		return
	}
	w.session.LastActivityAt = w.clock.Now()
	w.schedule()
}

// SetInput replaces the draft text
func (w *Widget) SetInput(s string) { w.input = s }

// Input returns the draft text
func (w *Widget) Input() string { return w.input }

// CanSubmit reports whether Submit would dispatch a request
func (w *Widget) CanSubmit() bool {
	return strings.TrimSpace(w.input) != "" && w.pending == nil
}

// Submit turns the draft into a request. History is captured before the user
// message is appended, so it never contains the text being sent. It returns
// false, changing nothing, when the draft is blank or a request is in flight.
func (w *Widget) Submit() (Request, bool) {
	if !w.CanSubmit() {
		return Request{}, false
	}

	text := strings.TrimSpace(w.input)
	history := w.conv.ToRequestHistory()
	if _, err := w.conv.Append(models.RoleUser, text); err != nil {
		return Request{}, false
	}

	w.input = ""
	w.pending = &Request{ID: uuid.NewString(), Text: text, History: history}
	return *w.pending, true
}

// Settle appends the reply for request id and clears the awaiting flag.
// It applies whether or not the widget is still open. Replies for any other
// id are ignored and Settle reports false.
func (w *Widget) Settle(id, reply string) bool {
	if w.pending == nil || w.pending.ID != id {
		return false
	}
	w.pending = nil
	if _, err := w.conv.Append(models.RoleAssistant, reply); err != nil {
		return false
	}
	return true
}

// schedule cancels any live timer and starts a fresh countdown
func (w *Widget) schedule() {
	w.cancelTimer()
	if w.idleTimeout <= 0 {
		return
	}

	gen := w.timerGen
	w.timer = w.clock.AfterFunc(w.idleTimeout, func() {
		expire := func() { w.expire(gen) }
		if w.dispatch != nil {
			w.dispatch(expire)
			return
		}
		expire()
	})
}

func (w *Widget) cancelTimer() {
	w.timerGen++
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// expire closes the widget if gen is still the live timer generation
func (w *Widget) expire(gen uint64) {
	if gen != w.timerGen || !w.open {
		return
	}
	w.timer = nil
	w.Close(ReasonIdle)
}
