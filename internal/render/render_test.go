package render

import (
	"strings"
	"sync"
	"testing"

	"github.com/diogo/folio/internal/config"
	"github.com/diogo/folio/internal/content"
	"github.com/diogo/folio/internal/models"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Width != 80 {
		t.Errorf("expected Width=80, got %d", opts.Width)
	}
	if opts.Style != StyleDark {
		t.Errorf("expected Style='dark', got %s", opts.Style)
	}
	if !opts.EnableEmoji || !opts.PreserveNewLines || !opts.TableWrap || opts.InlineTableLinks {
		t.Errorf("unexpected defaults: %+v", opts)
	}

	w := opts.WithWidth(120).WithStyle(StyleLight)
	if w.Width != 120 || w.Style != StyleLight || opts.Width != 80 {
		t.Error("With* must return a modified copy")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "")

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = StyleDracula
	cfg.Markdown.EnableEmoji = false

	opts := OptionsFromConfig(cfg)
	if opts.Style != StyleDracula || opts.EnableEmoji {
		t.Errorf("opts = %+v", opts)
	}

	t.Setenv("GLAMOUR_STYLE", StyleNoTTY)
	if got := OptionsFromConfig(cfg).Style; got != StyleNoTTY {
		t.Errorf("GLAMOUR_STYLE ignored, style = %q", got)
	}
}

func TestMarkdown(t *testing.T) {
	ClearCache()

	out, err := Markdown("# Hello\n\nSome **bold** text", DefaultOptions().WithStyle(StyleNoTTY))
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}
	if !strings.Contains(out, "Hello") || !strings.Contains(out, "bold") {
		t.Errorf("output missing content: %q", out)
	}
	if CacheSize() != 1 {
		t.Errorf("CacheSize() = %d, want 1", CacheSize())
	}

	if _, err := Markdown("again", DefaultOptions().WithStyle(StyleNoTTY)); err != nil {
		t.Fatal(err)
	}
	if CacheSize() != 1 {
		t.Error("same options should reuse the cached renderer")
	}
}

func TestMarkdownConcurrent(t *testing.T) {
	ClearCache()
	opts := DefaultOptions().WithStyle(StyleASCII)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Markdown("- item\n- item", opts); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
}

func TestReplyFallsBackToRawText(t *testing.T) {
	got := Reply("plain *text*", 60, DefaultOptions().WithStyle("/does/not/exist.json"))
	if got != "plain *text*" {
		t.Errorf("Reply() = %q", got)
	}
}

func TestGlamourStyle(t *testing.T) {
	tests := map[string]string{
		"":              "dark",
		StyleTokyoNight: "tokyo-night",
		StyleDracula:    "dracula",
		"/tmp/x.json":   "/tmp/x.json",
	}
	for in, want := range tests {
		if got := glamourStyle(in); got != want {
			t.Errorf("glamourStyle(%q) = %q, want %q", in, got, want)
		}
	}
	if !IsNamedStyle(StylePink) || IsNamedStyle("/tmp/x.json") {
		t.Error("IsNamedStyle mismatch")
	}
}

func TestProjectMarkdown(t *testing.T) {
	reg := content.Default()
	p, _ := reg.Project("flagship")

	md := ProjectMarkdown(p, reg.Related(p, 2))

	for _, want := range []string{
		"# Debabrata Experience",
		"*Web*",
		"You are currently experiencing it.",
		"- Gemini AI",
		"Live demo: https://www.wikipedia.org",
		"Source: https://github.com",
		"**Nexus DeFi Dashboard**",
		"**WonderTales AI**",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	noDemo := models.Project{ID: "x", Title: "X", Description: "short", DemoURL: "#", Category: models.CategoryDesign}
	md = ProjectMarkdown(noDemo, nil)
	if !strings.Contains(md, "short") || !strings.Contains(md, "not available") || strings.Contains(md, "Related") {
		t.Errorf("unexpected markdown:\n%s", md)
	}
}

func TestTUIThemes(t *testing.T) {
	defer SetTUITheme(MidnightTheme.Name)

	for _, name := range TUIThemeNames() {
		if !SetTUITheme(name) {
			t.Errorf("SetTUITheme(%q) = false", name)
		}
		if GetTUITheme().Name != name {
			t.Errorf("active theme = %q, want %q", GetTUITheme().Name, name)
		}
	}

	if SetTUITheme("solarized") {
		t.Error("unknown theme accepted")
	}

	theme := MidnightTheme
	if theme.CategoryColor(models.CategoryAI) != theme.Accent {
		t.Error("AI badge should use the accent colour")
	}
	if theme.LevelColor(95) != theme.Secondary || theme.LevelColor(85) != theme.Primary || theme.LevelColor(50) != theme.Warning {
		t.Error("LevelColor grading mismatch")
	}
}
