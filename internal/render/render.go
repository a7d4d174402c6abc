package render

import (
	"fmt"
	"strings"

	"github.com/diogo/folio/internal/models"
)

// Markdown renders markdown content for terminal display.
func Markdown(content string, opts Options) (string, error) {
	return globalCache.render(content, opts)
}

// Reply renders an assistant reply at width. Replies are model output, so a
// render failure falls back to the raw text instead of an error.
func Reply(content string, width int, opts Options) string {
	if width < 20 {
		width = 20
	}
	out, err := Markdown(content, opts.WithWidth(width))
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

// ProjectMarkdown builds the detail page for a project
func ProjectMarkdown(p models.Project, related []models.Project) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "*%s*\n\n", p.Category)

	desc := p.LongDescription
	if desc == "" {
		desc = p.Description
	}
	b.WriteString(desc + "\n\n")

	if len(p.TechStack) > 0 {
		b.WriteString("## Tech stack\n\n")
		for _, tech := range p.TechStack {
			fmt.Fprintf(&b, "- %s\n", tech)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Links\n\n")
	if p.HasDemo() {
		fmt.Fprintf(&b, "- Live demo: %s\n", p.DemoURL)
	} else {
		b.WriteString("- Live demo: not available\n")
	}
	if p.GithubURL != "" {
		fmt.Fprintf(&b, "- Source: %s\n", p.GithubURL)
	}

	if len(related) > 0 {
		b.WriteString("\n## Related projects\n\n")
		for _, r := range related {
			fmt.Fprintf(&b, "- **%s**: %s\n", r.Title, r.Description)
		}
	}

	return b.String()
}
