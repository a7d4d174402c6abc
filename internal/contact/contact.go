// Package contact implements the contact form and its email delivery.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	apierrors "github.com/diogo/folio/internal/errors"
)

// Form is the data the visitor enters
type Form struct {
	Name    string
	Email   string
	Message string
}

// FieldError reports a missing or malformed field
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks that every field is present and the email parses
func (f Form) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &FieldError{Field: "name", Message: "required"}
	}
	if strings.TrimSpace(f.Email) == "" {
		return &FieldError{Field: "email", Message: "required"}
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(f.Email))
	if err != nil || addr.Name != "" {
		return &FieldError{Field: "email", Message: "not a valid address"}
	}
	if strings.TrimSpace(f.Message) == "" {
		return &FieldError{Field: "message", Message: "required"}
	}
	return nil
}

// Mailer delivers a submitted form
type Mailer interface {
	Send(ctx context.Context, form Form) error
}

// State is the form's lifecycle position
type State int

const (
	Editing State = iota
	Submitting
	Sent
)

func (s State) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Sent:
		return "sent"
	default:
		return "editing"
	}
}

// ErrBusy is returned when a submission is already in flight or the form was sent
var ErrBusy = errors.New("form is not editable")

// Session tracks one form across submit attempts. Not safe for concurrent use.
type Session struct {
	form  Form
	state State
	alert string
}

// NewSession creates an empty form in Editing
func NewSession() *Session {
	return &Session{}
}

// Form returns the current field values
func (s *Session) Form() Form { return s.form }

// State returns the lifecycle state
func (s *Session) State() State { return s.state }

// Alert returns the blocking alert to show, if any
func (s *Session) Alert() string { return s.alert }

// DismissAlert clears the alert
func (s *Session) DismissAlert() { s.alert = "" }

// SetForm replaces the field values while editing
func (s *Session) SetForm(f Form) {
	if s.state == Editing {
		s.form = f
	}
}

// Begin validates the form and moves to Submitting. The returned Form is
// what should be handed to the mailer.
func (s *Session) Begin() (Form, error) {
	if s.state != Editing {
		return Form{}, ErrBusy
	}
	if err := s.form.Validate(); err != nil {
		return Form{}, err
	}
	s.state = Submitting
	s.alert = ""
	return s.form, nil
}

// Finish records the delivery outcome. Success clears the form and shows the
// confirmation; failure returns to Editing with the data intact and an alert.
func (s *Session) Finish(err error) {
	if s.state != Submitting {
		return
	}
	if err != nil {
		s.state = Editing
		s.alert = alertFor(err)
		return
	}
	s.state = Sent
	s.form = Form{}
}

// Reset returns from the confirmation panel to an empty form
func (s *Session) Reset() {
	if s.state == Sent {
		s.state = Editing
	}
}

func alertFor(err error) string {
	if errors.Is(err, apierrors.ErrMailerNotConfigured) {
		return "Email delivery is not configured. Please reach out on GitHub instead."
	}
	return "Failed to send message. Please try again later."
}
