// Package navigation maps a persisted location token to one of the four
// top-level views and broadcasts view changes.
package navigation

import (
	"fmt"
	"strings"
)

// View is a top-level screen
type View string

const (
	Home    View = "home"
	About   View = "about"
	Library View = "library"
	Contact View = "contact"
)

// Views returns every view in tab order
func Views() []View {
	return []View{Home, About, Library, Contact}
}

// Title is the tab label for v
func (v View) Title() string {
	switch v {
	case About:
		return "About"
	case Library:
		return "Library"
	case Contact:
		return "Contact"
	default:
		return "Home"
	}
}

// Valid reports whether v is a known view
func (v View) Valid() bool {
	for _, known := range Views() {
		if v == known {
			return true
		}
	}
	return false
}

// ParseView maps a location token such as "#library" to a view.
// Absent or unrecognised tokens map to Home.
func ParseView(token string) View {
	token = strings.ToLower(strings.TrimSpace(token))
	token = strings.TrimPrefix(token, "#")
	if v := View(token); v.Valid() {
		return v
	}
	return Home
}

// Change is emitted when the active view switches
type Change struct {
	From View
	To   View
}

type subscriber struct {
	id uint64
	fn func(Change)
}

// Controller owns the active view. It is not safe for concurrent use.
type Controller struct {
	loc       Location
	active    View
	scrollSeq uint64
	subs      []subscriber
	nextID    uint64
}

// New creates a controller positioned at the view stored in loc
func New(loc Location) *Controller {
	if loc == nil {
		loc = NewMemoryLocation("")
	}
	token, err := loc.Read()
	if err != nil {
		token = ""
	}
	return &Controller{loc: loc, active: ParseView(token)}
}

// Active returns the current view
func (c *Controller) Active() View {
	return c.active
}

// ScrollSeq increments every time the view should scroll back to the top
func (c *Controller) ScrollSeq() uint64 {
	return c.scrollSeq
}

// Navigate switches to target. Navigating to the active view only requests a
// scroll to top. Otherwise the token is written, the view switches and every
// subscriber is notified in subscription order before Navigate returns.
// A failure to persist the token is returned but does not stop the switch.
func (c *Controller) Navigate(target View) error {
	if !target.Valid() {
		target = Home
	}

	c.scrollSeq++
	if target == c.active {
		return nil
	}

	var writeErr error
	if err := c.loc.Write("#" + string(target)); err != nil {
		writeErr = fmt.Errorf("failed to persist location: %w", err)
	}

	change := Change{From: c.active, To: target}
	c.active = target

	subs := make([]subscriber, len(c.subs))
	copy(subs, c.subs)
	for _, s := range subs {
		s.fn(change)
	}
	return writeErr
}

// NavigateToken parses token and navigates to the resulting view
func (c *Controller) NavigateToken(token string) error {
	return c.Navigate(ParseView(token))
}

// Subscribe registers fn for change notifications. The returned function
// removes it and may be called more than once.
func (c *Controller) Subscribe(fn func(Change)) (unsubscribe func()) {
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscriber{id: id, fn: fn})

	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of registered subscribers
func (c *Controller) Subscribers() int {
	return len(c.subs)
}
