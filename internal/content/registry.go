// Package content holds the read-only catalog of portfolio projects and skills.
package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	apierrors "github.com/diogo/folio/internal/errors"
	"github.com/diogo/folio/internal/models"
)

// Filter selects which projects the library shows
type Filter string

const (
	FilterAll    Filter = "All"
	FilterWeb    Filter = Filter(models.CategoryWeb)
	FilterMobile Filter = Filter(models.CategoryMobile)
	FilterAI     Filter = Filter(models.CategoryAI)
	FilterDesign Filter = Filter(models.CategoryDesign)
)

// Filters returns the library filters in display order
func Filters() []Filter {
	return []Filter{FilterAll, FilterWeb, FilterMobile, FilterAI, FilterDesign}
}

// Registry is an immutable catalog of projects and skills
type Registry struct {
	projects []models.Project
	skills   []models.Skill
}

// catalogFile is the on-disk YAML shape
type catalogFile struct {
	Projects []models.Project `yaml:"projects"`
	Skills   []models.Skill   `yaml:"skills"`
}

// New builds a registry after validating the catalog
func New(projects []models.Project, skills []models.Skill) (*Registry, error) {
	if err := validate(projects, skills); err != nil {
		return nil, err
	}

	r := &Registry{
		projects: make([]models.Project, len(projects)),
		skills:   make([]models.Skill, len(skills)),
	}
	for i, p := range projects {
		p.TechStack = append([]string(nil), p.TechStack...)
		r.projects[i] = p
	}
	copy(r.skills, skills)
	return r, nil
}

// Load reads a YAML catalog from path
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apierrors.NewParseError(err.Error(), path)
	}

	return New(file.Projects, file.Skills)
}

// LoadOrDefault loads path when set, else returns the built-in catalog
func LoadOrDefault(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func validate(projects []models.Project, skills []models.Skill) error {
	seen := make(map[string]bool, len(projects))
	for i, p := range projects {
		if p.ID == "" {
			return fmt.Errorf("%w: project #%d has no id", apierrors.ErrInvalidCatalog, i+1)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate project id %q", apierrors.ErrInvalidCatalog, p.ID)
		}
		seen[p.ID] = true
		if p.Title == "" {
			return fmt.Errorf("%w: project %q has no title", apierrors.ErrInvalidCatalog, p.ID)
		}
		if !p.Category.Valid() {
			return fmt.Errorf("%w: project %q has unknown category %q", apierrors.ErrInvalidCatalog, p.ID, p.Category)
		}
	}

	for _, s := range skills {
		if s.Name == "" {
			return fmt.Errorf("%w: skill without a name", apierrors.ErrInvalidCatalog)
		}
		if s.Level < 0 || s.Level > 100 {
			return fmt.Errorf("%w: skill %q level %d outside 0..100", apierrors.ErrInvalidCatalog, s.Name, s.Level)
		}
	}
	return nil
}

// Projects returns all projects in catalog order
func (r *Registry) Projects() []models.Project {
	out := make([]models.Project, len(r.projects))
	copy(out, r.projects)
	return out
}

// Skills returns all skills in catalog order
func (r *Registry) Skills() []models.Skill {
	out := make([]models.Skill, len(r.skills))
	copy(out, r.skills)
	return out
}

// Project looks up a project by id
func (r *Registry) Project(id string) (models.Project, bool) {
	for _, p := range r.projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// Filter returns the projects matching f in catalog order
func (r *Registry) Filter(f Filter) []models.Project {
	if f == FilterAll || f == "" {
		return r.Projects()
	}

	var out []models.Project
	for _, p := range r.projects {
		if Filter(p.Category) == f {
			out = append(out, p)
		}
	}
	return out
}

// Related returns up to n other projects sharing p's category
func (r *Registry) Related(p models.Project, n int) []models.Project {
	var out []models.Project
	for _, other := range r.projects {
		if len(out) >= n {
			break
		}
		if other.Category == p.Category && other.ID != p.ID {
			out = append(out, other)
		}
	}
	return out
}

// SkillGroup is one category of skills on the about view
type SkillGroup struct {
	Category models.SkillCategory
	Skills   []models.Skill
}

// SkillsByCategory groups skills in category display order, dropping empty groups
func (r *Registry) SkillsByCategory() []SkillGroup {
	var groups []SkillGroup
	for _, cat := range models.SkillCategories() {
		var group []models.Skill
		for _, s := range r.skills {
			if s.Category == cat {
				group = append(group, s)
			}
		}
		if len(group) > 0 {
			groups = append(groups, SkillGroup{Category: cat, Skills: group})
		}
	}
	return groups
}
