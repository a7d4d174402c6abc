package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/folio/internal/config"
	"github.com/diogo/folio/internal/content"
	"github.com/diogo/folio/internal/models"
	"github.com/diogo/folio/internal/render"
)

// NewProjectsCmd creates the projects command
func NewProjectsCmd(deps *Dependencies) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List the project library",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseFilter(category)
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			reg, err := content.LoadOrDefault(cfg.ContentFile)
			if err != nil {
				return fmt.Errorf("failed to load content: %w", err)
			}

			printProjects(cmd.OutOrStdout(), reg.Filter(filter))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(content.FilterAll), "Filter by category (All, Web, Mobile, AI, Design)")
	return cmd
}

// parseFilter matches name against the library filters, ignoring case
func parseFilter(name string) (content.Filter, error) {
	if name == "" {
		return content.FilterAll, nil
	}
	var names []string
	for _, f := range content.Filters() {
		if strings.EqualFold(string(f), name) {
			return f, nil
		}
		names = append(names, string(f))
	}
	return "", fmt.Errorf("unknown category %q (valid: %s)", name, strings.Join(names, ", "))
}

// printProjects writes one block per project
func printProjects(w io.Writer, projects []models.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(w, lipgloss.NewStyle().Foreground(colorTextDim).Render("No projects in this category."))
		return
	}

	theme := render.GetTUITheme()
	title := lipgloss.NewStyle().Foreground(colorText).Bold(true)
	dim := lipgloss.NewStyle().Foreground(colorTextDim)

	for i, p := range projects {
		if i > 0 {
			fmt.Fprintln(w)
		}
		badge := lipgloss.NewStyle().Foreground(theme.CategoryColor(p.Category)).Render("[" + string(p.Category) + "]")
		fmt.Fprintf(w, "%s %s  %s\n", title.Render(p.Title), badge, dim.Render(p.ID))
		fmt.Fprintf(w, "  %s\n", p.Description)
		if len(p.TechStack) > 0 {
			fmt.Fprintf(w, "  %s %s\n", dim.Render("stack:"), strings.Join(p.TechStack, ", "))
		}
		if p.HasDemo() {
			fmt.Fprintf(w, "  %s %s\n", dim.Render("demo: "), p.DemoURL)
		}
		if p.GithubURL != "" {
			fmt.Fprintf(w, "  %s %s\n", dim.Render("code: "), p.GithubURL)
		}
	}
}
