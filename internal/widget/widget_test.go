package widget

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/goleak"

	"github.com/diogo/folio/internal/clock"
	"github.com/diogo/folio/internal/models"
	"github.com/diogo/folio/internal/navigation"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestWidget(t *testing.T) (*Widget, *clock.Fake, *navigation.Controller) {
	t.Helper()
	clk := clock.NewFake(epoch)
	nav := navigation.New(navigation.NewMemoryLocation(""))
	w := New(Options{
		Clock:       clk,
		IdleTimeout: models.IdleTimeout,
		Navigator:   nav,
	})
	return w, clk, nav
}

func submit(t *testing.T, w *Widget, text string) Request {
	t.Helper()
	w.SetInput(text)
	req, ok := w.Submit()
	if !ok {
		t.Fatalf("Submit(%q) rejected", text)
	}
	return req
}

func TestInitialState(t *testing.T) {
	w, _, _ := newTestWidget(t)

	if w.State() != Closed {
		t.Errorf("State() = %v, want closed", w.State())
	}
	msgs := w.Messages()
	if len(msgs) != 1 || msgs[0].Role != models.RoleAssistant || msgs[0].Content != models.Greeting {
		t.Errorf("expected a single greeting, got %+v", msgs)
	}
}

func TestToggle(t *testing.T) {
	w, clk, nav := newTestWidget(t)
	var reasons []CloseReason
	w.OnClose(func(r CloseReason) { reasons = append(reasons, r) })

	w.Toggle()
	if w.State() != OpenIdle {
		t.Fatalf("State() = %v, want open-idle", w.State())
	}
	first := w.Session()
	if first.ID == "" || !first.OpenedAt.Equal(epoch) {
		t.Errorf("session = %+v", first)
	}
	if clk.Pending() != 1 || nav.Subscribers() != 1 {
		t.Errorf("pending timers = %d, subscribers = %d; want 1, 1", clk.Pending(), nav.Subscribers())
	}

	w.Toggle()
	if w.State() != Closed {
		t.Fatalf("State() = %v, want closed", w.State())
	}
	if clk.Pending() != 0 || nav.Subscribers() != 0 {
		t.Errorf("close must cancel the timer and unsubscribe: timers=%d subs=%d", clk.Pending(), nav.Subscribers())
	}

	w.Toggle()
	if w.Session().ID == first.ID {
		t.Error("reopening should start a new session")
	}
	if diff := cmp.Diff([]CloseReason{ReasonLauncher}, reasons); diff != "" {
		t.Errorf("reasons (-want +got):\n%s", diff)
	}
}

func TestRepeatedOpenCloseDoesNotLeakSubscriptions(t *testing.T) {
	w, clk, nav := newTestWidget(t)
	for i := 0; i < 5; i++ {
		w.Toggle()
		w.Activity()
		w.Toggle()
	}
	w.Open()
	w.Open()

	if nav.Subscribers() != 1 {
		t.Errorf("Subscribers() = %d, want 1", nav.Subscribers())
	}
	if clk.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", clk.Pending())
	}
}

func TestSubmitWhileAwaitingIsNoop(t *testing.T) {
	w, _, _ := newTestWidget(t)
	w.Toggle()

	req := submit(t, w, "first")
	if w.State() != OpenAwaitingReply {
		t.Fatalf("State() = %v", w.State())
	}
	n := w.Len()

	for _, text := range []string{"second", "third", "  fourth  "} {
		w.SetInput(text)
		if w.CanSubmit() {
			t.Error("CanSubmit() true while awaiting")
		}
		if _, ok := w.Submit(); ok {
			t.Errorf("Submit(%q) accepted while awaiting", text)
		}
		if w.Len() != n {
			t.Fatalf("Len() = %d, want %d", w.Len(), n)
		}
	}
	if w.Input() != "  fourth  " {
		t.Errorf("rejected submit should keep the draft, got %q", w.Input())
	}

	if !w.Settle(req.ID, "reply") {
		t.Fatal("Settle() rejected the outstanding request")
	}
	if w.Len() != n+1 {
		t.Errorf("Len() = %d, want %d", w.Len(), n+1)
	}
}

func TestSubmitBlankInput(t *testing.T) {
	for _, input := range []string{"", " ", "\n\t  "} {
		w, _, _ := newTestWidget(t)
		w.Toggle()
		w.SetInput(input)

		if w.CanSubmit() {
			t.Errorf("CanSubmit() true for %q", input)
		}
		if _, ok := w.Submit(); ok {
			t.Errorf("Submit() accepted %q", input)
		}
		if w.Len() != 1 || w.Awaiting() {
			t.Errorf("blank submit changed state: len=%d awaiting=%v", w.Len(), w.Awaiting())
		}
	}
}

func TestSettleAppendsExactlyOne(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"success", "Sure, here are my AI projects."},
		{"recovered failure", models.FallbackConnection},
		{"empty reply", models.FallbackEmptyReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, _ := newTestWidget(t)
			w.Toggle()
			req := submit(t, w, "hello")
			before := w.Len()

			w.Settle(req.ID, tt.reply)

			if w.Len() != before+1 {
				t.Errorf("Len() = %d, want %d", w.Len(), before+1)
			}
			last := w.Messages()[w.Len()-1]
			if last.Role != models.RoleAssistant || last.Content != tt.reply {
				t.Errorf("last = %+v", last)
			}
			if w.Awaiting() || w.State() != OpenIdle {
				t.Errorf("State() = %v after settle", w.State())
			}

			if w.Settle(req.ID, "again") {
				t.Error("second Settle for the same request accepted")
			}
			if w.Len() != before+1 {
				t.Error("duplicate settle appended a message")
			}
		})
	}
}

func TestSettleIgnoresUnknownID(t *testing.T) {
	w, _, _ := newTestWidget(t)
	w.Toggle()
	submit(t, w, "hello")

	if w.Settle("not-the-request", "stale") {
		t.Error("Settle accepted an unknown id")
	}
	if !w.Awaiting() {
		t.Error("unknown id cleared the awaiting flag")
	}
}

func TestHistoryExcludesNewMessage(t *testing.T) {
	w, _, _ := newTestWidget(t)
	w.Toggle()

	r1 := submit(t, w, "What do you build?")
	if diff := cmp.Diff([]models.Turn{{Role: models.RoleAssistant, Text: models.Greeting}}, r1.History); diff != "" {
		t.Errorf("first history (-want +got):\n%s", diff)
	}
	w.Settle(r1.ID, "Web apps.")

	r2 := submit(t, w, "Any AI?")
	want := []models.Turn{
		{Role: models.RoleAssistant, Text: models.Greeting},
		{Role: models.RoleUser, Text: "What do you build?"},
		{Role: models.RoleAssistant, Text: "Web apps."},
	}
	if diff := cmp.Diff(want, r2.History); diff != "" {
		t.Errorf("history (-want +got):\n%s", diff)
	}
	if r2.Text != "Any AI?" {
		t.Errorf("Text = %q", r2.Text)
	}
	if w.Input() != "" {
		t.Errorf("Input() = %q after submit", w.Input())
	}
}

func TestNavigationClosesWidget(t *testing.T) {
	for _, awaiting := range []bool{false, true} {
		w, clk, nav := newTestWidget(t)
		var reasons []CloseReason
		w.OnClose(func(r CloseReason) { reasons = append(reasons, r) })

		w.Toggle()
		var req Request
		if awaiting {
			req = submit(t, w, "hello")
		}

		if err := nav.Navigate(navigation.Library); err != nil {
			t.Fatal(err)
		}

		if w.State() != Closed {
			t.Fatalf("awaiting=%v: State() = %v after navigation", awaiting, w.State())
		}
		if diff := cmp.Diff([]CloseReason{ReasonNavigation}, reasons); diff != "" {
			t.Errorf("reasons (-want +got):\n%s", diff)
		}
		if clk.Pending() != 0 || nav.Subscribers() != 0 {
			t.Errorf("timers=%d subs=%d after navigation close", clk.Pending(), nav.Subscribers())
		}

		if awaiting {
			before := w.Len()
			if !w.Settle(req.ID, "late reply") {
				t.Fatal("late reply rejected")
			}
			if w.Len() != before+1 || w.Messages()[before].Content != "late reply" {
				t.Error("late reply not appended to history")
			}
			if w.State() != Closed {
				t.Error("late reply reopened the widget")
			}

			w.Toggle()
			if w.Messages()[w.Len()-1].Content != "late reply" {
				t.Error("reopened widget does not show the late reply")
			}
		}
	}
}

func TestNavigationWhileClosedIsIgnored(t *testing.T) {
	w, _, nav := newTestWidget(t)
	closes := 0
	w.OnClose(func(CloseReason) { closes++ })

	_ = nav.Navigate(navigation.About)
	if closes != 0 || w.State() != Closed {
		t.Error("navigation affected a closed widget")
	}
}

func TestIdleTimeoutCloses(t *testing.T) {
	w, clk, _ := newTestWidget(t)
	var reasons []CloseReason
	w.OnClose(func(r CloseReason) { reasons = append(reasons, r) })
	w.Toggle()

	clk.Advance(5*time.Minute - time.Second)
	if w.State() != OpenIdle {
		t.Fatalf("closed early: %v", w.State())
	}

	clk.Advance(time.Second)
	if w.State() != Closed {
		t.Fatalf("State() = %v after 5 minutes idle", w.State())
	}
	if diff := cmp.Diff([]CloseReason{ReasonIdle}, reasons); diff != "" {
		t.Errorf("reasons (-want +got):\n%s", diff)
	}
}

func TestActivityResetsIdleTimer(t *testing.T) {
	w, clk, _ := newTestWidget(t)
	w.Toggle()

	clk.Advance(4*time.Minute + 59*time.Second)
	w.Activity()
	if got := w.Session().LastActivityAt; !got.Equal(epoch.Add(4*time.Minute + 59*time.Second)) {
		t.Errorf("LastActivityAt = %v", got)
	}

	clk.Advance(time.Second)
	if w.State() != OpenIdle {
		t.Fatal("closed at the original 5-minute mark despite activity")
	}
	if clk.Pending() != 1 {
		t.Errorf("Pending() = %d, want exactly one live timer", clk.Pending())
	}

	clk.Advance(5*time.Minute - time.Second)
	if w.State() != Closed {
		t.Errorf("State() = %v, want closed 5 minutes after the last activity", w.State())
	}
}

func TestIdleCloseWhileAwaiting(t *testing.T) {
	w, clk, _ := newTestWidget(t)
	w.Toggle()
	req := submit(t, w, "slow question")

	clk.Advance(models.IdleTimeout)
	if w.State() != Closed {
		t.Fatalf("State() = %v", w.State())
	}
	if !w.Settle(req.ID, "answer") {
		t.Error("reply after idle close rejected")
	}
}

func TestActivityWhileClosedIgnored(t *testing.T) {
	w, clk, _ := newTestWidget(t)
	w.Activity()
	if clk.Pending() != 0 {
		t.Error("activity while closed scheduled a timer")
	}
	if !w.Session().LastActivityAt.IsZero() {
		t.Error("activity while closed touched the session")
	}
}

func TestZeroTimeoutDisablesAutoClose(t *testing.T) {
	clk := clock.NewFake(epoch)
	w := New(Options{Clock: clk})
	w.Toggle()

	clk.Advance(time.Hour)
	if w.State() != OpenIdle {
		t.Error("widget closed with auto-close disabled")
	}
}

func TestDispatchedExpiry(t *testing.T) {
	clk := clock.NewFake(epoch)
	var queued []func()
	w := New(Options{
		Clock:       clk,
		IdleTimeout: time.Minute,
		Dispatch:    func(f func()) { queued = append(queued, f) },
	})
	w.Toggle()

	clk.Advance(time.Minute)
	if w.State() != OpenIdle {
		t.Fatal("expiry ran outside the dispatcher")
	}
	if len(queued) != 1 {
		t.Fatalf("queued = %d", len(queued))
	}

	// Activity between the timer firing and the loop running the expiry
	// makes the queued expiry stale.
	w.Activity()
	queued[0]()
	if w.State() != OpenIdle {
		t.Error("stale expiry closed the widget")
	}

	clk.Advance(time.Minute)
	queued[1]()
	if w.State() != Closed {
		t.Error("live expiry did not close the widget")
	}
}

func TestRealClockExpiry(t *testing.T) {
	loop := make(chan func(), 1)
	w := New(Options{
		Clock:       clock.Real{},
		IdleTimeout: 20 * time.Millisecond,
		Dispatch:    func(f func()) { loop <- f },
	})
	w.Toggle()

	select {
	case f := <-loop:
		f()
	case <-time.After(2 * time.Second):
		t.Fatal("idle timer never fired")
	}
	if w.State() != Closed {
		t.Errorf("State() = %v", w.State())
	}
}

func TestTimestampsNonDecreasing(t *testing.T) {
	w, clk, _ := newTestWidget(t)
	w.Toggle()

	req := submit(t, w, "one")
	clk.Set(epoch.Add(-time.Hour))
	w.Settle(req.ID, "two")

	msgs := w.Messages()
	for i := 1; i < len(msgs); i++ {
		if msgs[i].Timestamp.Before(msgs[i-1].Timestamp) {
			t.Errorf("message %d timestamp went backwards", i)
		}
	}

	ids := make(map[string]bool)
	for _, m := range msgs {
		ids[m.ID] = true
	}
	if len(ids) != len(msgs) {
		t.Error("message ids are not unique")
	}

	want := []models.ChatMessage{
		{Role: models.RoleAssistant, Content: models.Greeting},
		{Role: models.RoleUser, Content: "one"},
		{Role: models.RoleAssistant, Content: "two"},
	}
	if diff := cmp.Diff(want, msgs, cmpopts.IgnoreFields(models.ChatMessage{}, "ID", "Timestamp")); diff != "" {
		t.Errorf("messages (-want +got):\n%s", diff)
	}
}
