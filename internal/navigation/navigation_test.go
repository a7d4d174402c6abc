package navigation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseView(t *testing.T) {
	tests := []struct {
		token string
		want  View
	}{
		{"", Home},
		{"#", Home},
		{"#home", Home},
		{"#about", About},
		{"library", Library},
		{" #Contact ", Contact},
		{"#projects", Home},
		{"##about", Home},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := ParseView(tt.token); got != tt.want {
				t.Errorf("ParseView(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

func TestNewReadsLocation(t *testing.T) {
	c := New(NewMemoryLocation("#library"))
	if c.Active() != Library {
		t.Errorf("Active() = %q", c.Active())
	}

	if New(nil).Active() != Home {
		t.Error("nil location should start at home")
	}
}

func TestNavigateNotifiesInOrder(t *testing.T) {
	loc := NewMemoryLocation("")
	c := New(loc)

	var got []string
	c.Subscribe(func(ch Change) { got = append(got, "first:"+string(ch.From)+"->"+string(ch.To)) })
	c.Subscribe(func(ch Change) { got = append(got, "second:"+string(ch.To)) })

	if err := c.Navigate(About); err != nil {
		t.Fatal(err)
	}

	want := []string{"first:home->about", "second:about"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
	if token, _ := loc.Read(); token != "#about" {
		t.Errorf("token = %q", token)
	}
	if c.ScrollSeq() != 1 {
		t.Errorf("ScrollSeq() = %d", c.ScrollSeq())
	}
}

func TestNavigateSameViewOnlyScrolls(t *testing.T) {
	c := New(NewMemoryLocation("#about"))
	calls := 0
	c.Subscribe(func(Change) { calls++ })

	_ = c.Navigate(About)
	_ = c.Navigate(About)

	if calls != 0 {
		t.Errorf("subscriber called %d times, want 0", calls)
	}
	if c.ScrollSeq() != 2 {
		t.Errorf("ScrollSeq() = %d, want 2", c.ScrollSeq())
	}
}

func TestNavigateInvalidGoesHome(t *testing.T) {
	c := New(NewMemoryLocation("#contact"))
	_ = c.Navigate(View("nowhere"))
	if c.Active() != Home {
		t.Errorf("Active() = %q", c.Active())
	}

	_ = c.NavigateToken("#library")
	if c.Active() != Library {
		t.Errorf("Active() = %q", c.Active())
	}
}

func TestUnsubscribe(t *testing.T) {
	c := New(nil)
	calls := 0
	unsub := c.Subscribe(func(Change) { calls++ })
	other := c.Subscribe(func(Change) {})

	unsub()
	unsub()
	if c.Subscribers() != 1 {
		t.Errorf("Subscribers() = %d, want 1", c.Subscribers())
	}

	_ = c.Navigate(Contact)
	if calls != 0 {
		t.Error("unsubscribed callback ran")
	}
	other()
	if c.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d", c.Subscribers())
	}
}

func TestUnsubscribeDuringNotification(t *testing.T) {
	c := New(nil)
	var unsub func()
	var order []int
	unsub = c.Subscribe(func(Change) { order = append(order, 1); unsub() })
	c.Subscribe(func(Change) { order = append(order, 2) })

	_ = c.Navigate(About)
	_ = c.Navigate(Home)

	if diff := cmp.Diff([]int{1, 2, 2}, order); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

type failingLocation struct{ MemoryLocation }

func (failingLocation) Write(string) error { return errors.New("read-only") }

func TestNavigateWriteFailureStillSwitches(t *testing.T) {
	c := New(&failingLocation{})
	notified := false
	c.Subscribe(func(Change) { notified = true })

	if err := c.Navigate(Library); err == nil {
		t.Error("expected persistence error")
	}
	if c.Active() != Library || !notified {
		t.Error("view should switch even when the token cannot be stored")
	}
}

func TestFileLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "location")
	loc := FileLocation{Path: path}

	token, err := loc.Read()
	if err != nil || token != "" {
		t.Fatalf("Read() on missing file = %q, %v", token, err)
	}

	c := New(loc)
	if err := c.Navigate(Contact); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "#contact\n" {
		t.Errorf("file = %q", data)
	}

	if New(loc).Active() != Contact {
		t.Error("reopened controller should restore the last view")
	}
}
