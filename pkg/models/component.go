package models

import "time"

// Component types. The renderer skips anything outside this set.
const (
	TypeHeader               = "header"
	TypeAbout                = "about"
	TypeAboutMeCard          = "about_me_card"
	TypeSkills               = "skills"
	TypeSkillsCloud          = "skills_cloud"
	TypeProjects             = "projects"
	TypeProjectGrid          = "project_grid"
	TypeBlog                 = "blog"
	TypeBlogPreviewGrid      = "blog_preview_grid"
	TypeContact              = "contact"
	TypeContactForm          = "contact_form"
	TypeExperienceTimeline   = "experience_timeline"
	TypeHeroBanner           = "hero_banner"
	TypeServicesSection      = "services_section"
	TypeAchievementsCounters = "achievements_counters"
	TypeTestimonialsCarousel = "testimonials_carousel"
	TypeFooter               = "footer"
)

// ComponentTypes lists every renderable component type in a stable order.
var ComponentTypes = []string{
	TypeHeader, TypeAbout, TypeAboutMeCard, TypeSkills, TypeSkillsCloud,
	TypeProjects, TypeProjectGrid, TypeBlog, TypeBlogPreviewGrid,
	TypeContact, TypeContactForm, TypeExperienceTimeline, TypeHeroBanner,
	TypeServicesSection, TypeAchievementsCounters, TypeTestimonialsCarousel,
	TypeFooter,
}

// IsComponentType reports whether t is a known renderable component type.
func IsComponentType(t string) bool {
	for _, ct := range ComponentTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// Component is one ordered, independently visible section of a portfolio.
// Content is free-form: it is user-authored or AI-generated and is never
// validated at write time, only normalized at render time.
type Component struct {
	ID            int64          `json:"id,omitempty"`
	PortfolioID   int64          `json:"portfolio_id,omitempty"`
	ComponentType string         `json:"component_type"`
	Order         int            `json:"order"`
	IsVisible     bool           `json:"is_visible"`
	Content       map[string]any `json:"content"`
	CreatedAt     time.Time      `json:"created_at,omitzero"`
	UpdatedAt     time.Time      `json:"updated_at,omitzero"`
}
