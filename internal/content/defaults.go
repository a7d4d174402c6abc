package content

import "github.com/diogo/folio/internal/models"

// DefaultProjects is the built-in project library
var DefaultProjects = []models.Project{
	{
		ID:              "flagship",
		Title:           "Debabrata Experience",
		Description:     "The definitive version of my professional digital presence.",
		LongDescription: "You are currently experiencing it. This platform serves as a benchmark for high-performance applications, featuring custom cursor tracking, a Gemini-powered AI brain, and fluid motion design optimized for modern browsers.",
		ImageURL:        "https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe?q=80&w=1964&auto=format&fit=crop",
		TechStack:       []string{"React", "TypeScript", "Gemini AI", "Tailwind", "Vite"},
		DemoURL:         "https://www.wikipedia.org",
		GithubURL:       "https://github.com",
		Category:        models.CategoryWeb,
	},
	{
		ID:              "1",
		Title:           "Nexus DeFi Dashboard",
		Description:     "A comprehensive crypto portfolio management tool with real-time analytics.",
		LongDescription: "Nexus is a high-performance DeFi dashboard that aggregates data from multiple chains. It features advanced chart visualizations using D3.js and provides real-time gas monitoring.",
		ImageURL:        "https://images.unsplash.com/photo-1639762681485-074b7f938ba0?q=80&w=1964&auto=format&fit=crop",
		TechStack:       []string{"React", "TypeScript", "Tailwind", "D3.js", "Solidity"},
		DemoURL:         "https://www.tradingview.com",
		GithubURL:       "https://github.com",
		Category:        models.CategoryWeb,
	},
	{
		ID:              "2",
		Title:           "AI Prompt Engineer Pro",
		Description:     "An AI-powered tool for generating high-quality prompts for various LLMs.",
		LongDescription: "Leveraging Gemini API, this tool helps users refine their prompts for better output consistency across different AI models. It includes a prompt library and versioning.",
		ImageURL:        "https://images.unsplash.com/photo-1677442136019-21780ecad995?q=80&w=1964&auto=format&fit=crop",
		TechStack:       []string{"React", "Gemini SDK", "Node.js", "PostgreSQL"},
		DemoURL:         "https://www.bing.com",
		GithubURL:       "https://github.com",
		Category:        models.CategoryAI,
	},
	{
		ID:              "3",
		Title:           "WonderTales AI",
		Description:     "An immersive AI-powered storytelling platform for children.",
		LongDescription: "WonderTales creates personalized, interactive narrative experiences. Using generative AI, it adapts stories to a child's interests and reading level, accompanied by magically generated illustrations and a playful interface designed for high engagement.",
		ImageURL:        "https://images.unsplash.com/photo-1512820790803-83ca734da794?q=80&w=1974&auto=format&fit=crop",
		TechStack:       []string{"Next.js", "Gemini API", "Tailwind CSS", "Framer Motion"},
		DemoURL:         "https://wondertalesin1.com.cdoo",
		GithubURL:       "https://github.com",
		Category:        models.CategoryWeb,
	},
}

// DefaultSkills is the built-in skill list
var DefaultSkills = []models.Skill{
	{Name: "React/Next.js", Level: 95, Icon: "⚛️", Category: models.SkillFrontend},
	{Name: "TypeScript", Level: 90, Icon: "📘", Category: models.SkillFrontend},
	{Name: "Tailwind CSS", Level: 98, Icon: "🎨", Category: models.SkillFrontend},
	{Name: "Node.js", Level: 85, Icon: "🟢", Category: models.SkillBackend},
	{Name: "Gemini AI", Level: 80, Icon: "✨", Category: models.SkillOthers},
	{Name: "UI/UX Design", Level: 88, Icon: "📐", Category: models.SkillDesign},
	{Name: "Git/GitHub", Level: 92, Icon: "📂", Category: models.SkillTools},
}

// Default returns the built-in catalog
func Default() *Registry {
	r, err := New(DefaultProjects, DefaultSkills)
	if err != nil {
		panic("content: built-in catalog is invalid: " + err.Error())
	}
	return r
}
