// Package library holds the project library state: the category filter, the
// grid cursor and the detail overlay with its live-preview sub-mode.
package library

import (
	"errors"

	"github.com/diogo/folio/internal/content"
	"github.com/diogo/folio/internal/models"
)

var (
	// ErrDemoUnavailable is returned when a project has no usable demo URL
	ErrDemoUnavailable = errors.New("live preview is not available for this project")
	// ErrNotVisible is returned when opening a project outside the current filter
	ErrNotVisible = errors.New("project is not in the current filter")
)

// PreviewState tracks the live-preview sub-mode of the overlay
type PreviewState int

const (
	PreviewOff PreviewState = iota
	PreviewLoading
	PreviewLoaded
	PreviewFailed
)

// Library is the filter and overlay state machine. Not safe for concurrent use.
type Library struct {
	reg     *content.Registry
	filter  content.Filter
	visible []models.Project
	cursor  int

	overlayOpen bool
	index       int
	preview     PreviewState
}

// New creates a library showing every project
func New(reg *content.Registry) *Library {
	l := &Library{reg: reg}
	l.SetFilter(content.FilterAll)
	return l
}

// Filter returns the active filter
func (l *Library) Filter() content.Filter { return l.filter }

// Visible returns the filtered projects in catalog order
func (l *Library) Visible() []models.Project {
	out := make([]models.Project, len(l.visible))
	copy(out, l.visible)
	return out
}

// SetFilter recomputes the visible set. An open overlay stays open on the
// same project if it is still visible, otherwise it closes.
func (l *Library) SetFilter(f content.Filter) {
	if f == "" {
		f = content.FilterAll
	}

	var currentID string
	if p, ok := l.Current(); ok {
		currentID = p.ID
	}

	l.filter = f
	l.visible = l.reg.Filter(f)

	if l.overlayOpen {
		if i := l.indexOf(currentID); i >= 0 {
			l.index = i
			l.cursor = i
			return
		}
		l.Close()
	}
	l.clampCursor()
}

// CycleFilter moves to the next (delta > 0) or previous filter, wrapping
func (l *Library) CycleFilter(delta int) {
	filters := content.Filters()
	pos := 0
	for i, f := range filters {
		if f == l.filter {
			pos = i
		}
	}
	n := len(filters)
	l.SetFilter(filters[((pos+delta)%n+n)%n])
}

func (l *Library) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, p := range l.visible {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (l *Library) clampCursor() {
	if l.cursor >= len(l.visible) {
		l.cursor = len(l.visible) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// Cursor returns the highlighted grid position
func (l *Library) Cursor() int { return l.cursor }

// MoveCursor shifts the grid highlight by delta, clamped to the visible set
func (l *Library) MoveCursor(delta int) {
	l.cursor += delta
	l.clampCursor()
}

// Selected returns the highlighted project
func (l *Library) Selected() (models.Project, bool) {
	if l.cursor < 0 || l.cursor >= len(l.visible) {
		return models.Project{}, false
	}
	return l.visible[l.cursor], true
}

// Open shows the detail overlay for id, which must be visible
func (l *Library) Open(id string) error {
	i := l.indexOf(id)
	if i < 0 {
		return ErrNotVisible
	}
	l.overlayOpen = true
	l.index = i
	l.cursor = i
	l.preview = PreviewOff
	return nil
}

// OpenSelected opens the overlay on the highlighted project
func (l *Library) OpenSelected() error {
	p, ok := l.Selected()
	if !ok {
		return ErrNotVisible
	}
	return l.Open(p.ID)
}

// IsOpen reports whether the detail overlay is shown
func (l *Library) IsOpen() bool { return l.overlayOpen }

// Index returns the overlay position within the filtered set
func (l *Library) Index() int { return l.index }

// Current returns the project in the overlay
func (l *Library) Current() (models.Project, bool) {
	if !l.overlayOpen || l.index < 0 || l.index >= len(l.visible) {
		return models.Project{}, false
	}
	return l.visible[l.index], true
}

// Next advances the overlay, wrapping from last to first
func (l *Library) Next() { l.step(1) }

// Previous moves the overlay back, wrapping from first to last
func (l *Library) Previous() { l.step(-1) }

func (l *Library) step(delta int) {
	if !l.overlayOpen {
		return
	}
	n := len(l.visible)
	if n == 0 {
		l.Close()
		return
	}
	l.index = ((l.index+delta)%n + n) % n
	l.cursor = l.index
	l.preview = PreviewOff
}

// Close hides the overlay
func (l *Library) Close() {
	l.overlayOpen = false
	l.preview = PreviewOff
}

// BackToLibrary closes the overlay so the grid is shown again
func (l *Library) BackToLibrary() {
	l.Close()
}

// Preview returns the preview sub-mode
func (l *Library) Preview() PreviewState { return l.preview }

// InPreview reports whether preview sub-mode is active
func (l *Library) InPreview() bool { return l.preview != PreviewOff }

// TogglePreview enters or leaves preview mode. Entering is rejected with
// ErrDemoUnavailable, leaving all state unchanged, when the project has no
// usable demo.
func (l *Library) TogglePreview() error {
	p, ok := l.Current()
	if !ok {
		return ErrNotVisible
	}
	if l.preview != PreviewOff {
		l.preview = PreviewOff
		return nil
	}
	if !p.HasDemo() {
		return ErrDemoUnavailable
	}
	l.preview = PreviewLoading
	return nil
}

// PreviewLoaded records the outcome of loading url. It is ignored unless the
// overlay is still loading that project's demo.
func (l *Library) PreviewLoaded(url string, ok bool) bool {
	p, open := l.Current()
	if !open || l.preview != PreviewLoading || p.DemoURL != url {
		return false
	}
	if ok {
		l.preview = PreviewLoaded
	} else {
		l.preview = PreviewFailed
	}
	return true
}

// Related returns up to n projects sharing the current project's category
func (l *Library) Related(n int) []models.Project {
	p, ok := l.Current()
	if !ok {
		return nil
	}
	return l.reg.Related(p, n)
}

// HandleKey applies an overlay key binding and reports whether it was used.
// Arrow keys traverse projects even in preview mode; esc leaves preview
// first, then closes the overlay.
func (l *Library) HandleKey(key string) bool {
	if !l.overlayOpen {
		return false
	}
	switch key {
	case "left":
		l.Previous()
	case "right":
		l.Next()
	case "esc":
		if l.preview != PreviewOff {
			l.preview = PreviewOff
		} else {
			l.Close()
		}
	default:
		return false
	}
	return true
}
