package assistant

import (
	"fmt"
	"strings"

	"github.com/diogo/folio/internal/content"
	"github.com/diogo/folio/internal/models"
)

// Briefing summarises the catalog into the system instruction sent with
// every request.
func Briefing(reg *content.Registry) string {
	var skills, projects strings.Builder
	for _, s := range reg.Skills() {
		fmt.Fprintf(&skills, "- %s (%d%% proficiency)\n", s.Name, s.Level)
	}
	for _, p := range reg.Projects() {
		fmt.Fprintf(&projects, "- %s: %s (Stack: %s)\n", p.Title, p.Description, strings.Join(p.TechStack, ", "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, the personal assistant for this portfolio.\n", models.AssistantName)
	b.WriteString("The portfolio belongs to a Senior Software Engineer.\n\n")
	b.WriteString("Here is some information you should know:\n")
	b.WriteString("- SKILLS:\n")
	b.WriteString(skills.String())
	b.WriteString("\n- PROJECTS in the Library:\n")
	b.WriteString(projects.String())
	b.WriteString("\n- YOUR GOAL:\n")
	b.WriteString("Help users navigate the portfolio, answer questions about the engineer's skills, ")
	b.WriteString("recommend projects based on their interests, and explain technical concepts used in the library.\n")
	b.WriteString("\n- TONE:\n")
	b.WriteString("Professional, knowledgeable, friendly, and concise. Use Markdown for formatting.\n")
	b.WriteString("\n- RESTRICTIONS:\n")
	b.WriteString("Only answer questions related to the portfolio, technology, or projects. ")
	b.WriteString("If asked something unrelated, politely steer the conversation back.\n")
	return b.String()
}
