package models

import "strings"

// Category groups projects in the library
type Category string

const (
	CategoryWeb    Category = "Web"
	CategoryMobile Category = "Mobile"
	CategoryAI     Category = "AI"
	CategoryDesign Category = "Design"
)

// Categories returns all project categories in display order
func Categories() []Category {
	return []Category{CategoryWeb, CategoryMobile, CategoryAI, CategoryDesign}
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Project is a library entry
type Project struct {
	ID              string   `yaml:"id"`
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	LongDescription string   `yaml:"long_description,omitempty"`
	ImageURL        string   `yaml:"image_url"`
	TechStack       []string `yaml:"tech_stack"`
	DemoURL         string   `yaml:"demo_url"`
	GithubURL       string   `yaml:"github_url"`
	Category        Category `yaml:"category"`
}

// HasDemo reports whether the project declares a usable live demo
func (p Project) HasDemo() bool {
	demo := strings.TrimSpace(p.DemoURL)
	return demo != "" && demo != DemoPlaceholder
}

// Summary returns the long description when present, else the short one
func (p Project) Summary() string {
	if p.LongDescription != "" {
		return p.LongDescription
	}
	return p.Description
}

// SkillCategory groups skills on the about view
type SkillCategory string

const (
	SkillFrontend SkillCategory = "Frontend"
	SkillBackend  SkillCategory = "Backend"
	SkillTools    SkillCategory = "Tools"
	SkillOthers   SkillCategory = "Others"
	SkillDesign   SkillCategory = "Design"
)

// SkillCategories returns all skill categories in display order
func SkillCategories() []SkillCategory {
	return []SkillCategory{SkillFrontend, SkillBackend, SkillTools, SkillOthers, SkillDesign}
}

// Skill is a proficiency entry
type Skill struct {
	Name     string        `yaml:"name"`
	Level    int           `yaml:"level"` // 0 to 100
	Icon     string        `yaml:"icon"`
	Category SkillCategory `yaml:"category"`
}
