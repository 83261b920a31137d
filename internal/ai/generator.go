package ai

import (
	"context"
	"fmt"
	"time"

	"portfoliohub/pkg/models"
)

// Resume is the structured input content generation works from. All
// fields are optional; generators fill gaps with profession-neutral
// defaults.
type Resume struct {
	Name       string       `json:"name"`
	Title      string       `json:"title"`
	Summary    string       `json:"summary"`
	Email      string       `json:"email"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Projects   []Project    `json:"projects"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// Generator produces component content for one component type from
// resume data.
type Generator interface {
	GenerateComponent(ctx context.Context, componentType string, resume Resume) (map[string]any, error)
}

// Fallback is the deterministic generator used when no API key is
// configured. It synthesizes sensible content from the resume alone.
type Fallback struct{}

func (Fallback) GenerateComponent(_ context.Context, componentType string, resume Resume) (map[string]any, error) {
	name := resume.Name
	if name == "" {
		name = "Professional"
	}
	title := resume.Title
	if title == "" && len(resume.Experience) > 0 {
		title = resume.Experience[0].Title
	}
	if title == "" {
		title = "Professional"
	}
	skills := resume.Skills
	if len(skills) == 0 {
		skills = []string{"Communication", "Problem Solving", "Teamwork"}
	}

	switch componentType {
	case models.TypeHeader:
		return map[string]any{"title": name, "subtitle": title + " Portfolio"}, nil
	case models.TypeHeroBanner:
		return map[string]any{
			"title":            name,
			"subtitle":         "Welcome to My Portfolio",
			"background_image": "",
			"cta_buttons": []any{
				map[string]any{"text": "Get in Touch", "url": "#contact", "variant": "primary"},
			},
			"overlay_opacity": 0.5,
		}, nil
	case models.TypeAbout:
		return map[string]any{"bio": fallbackBio(name, resume)}, nil
	case models.TypeAboutMeCard:
		return map[string]any{
			"name":  name,
			"title": title,
			"bio":   fallbackBio(name, resume),
			"image": "",
			"social_links": map[string]any{
				"linkedin": "", "github": "", "email": resume.Email,
			},
		}, nil
	case models.TypeSkills:
		return map[string]any{"skills": skills}, nil
	case models.TypeSkillsCloud:
		return map[string]any{"skills": skills, "display_mode": "cloud"}, nil
	case models.TypeExperienceTimeline:
		experiences := make([]any, 0, len(resume.Experience))
		for _, exp := range resume.Experience {
			experiences = append(experiences, map[string]any{
				"title":       exp.Title,
				"company":     exp.Company,
				"startDate":   exp.StartDate,
				"endDate":     exp.EndDate,
				"description": exp.Description,
				"location":    exp.Location,
			})
		}
		return map[string]any{"experiences": experiences}, nil
	case models.TypeProjects, models.TypeProjectGrid:
		projects := make([]any, 0, len(resume.Projects))
		for i, pr := range resume.Projects {
			projects = append(projects, map[string]any{
				"id":           i + 1,
				"title":        pr.Title,
				"description":  pr.Description,
				"technologies": pr.Technologies,
			})
		}
		out := map[string]any{"projects": projects}
		if componentType == models.TypeProjectGrid {
			out["show_filters"] = true
		}
		return out, nil
	case models.TypeServicesSection:
		return map[string]any{"services": []any{}}, nil
	case models.TypeAchievementsCounters:
		return map[string]any{"counters": []any{
			map[string]any{"label": "Years of Experience", "value": len(resume.Experience), "suffix": "+"},
			map[string]any{"label": "Projects Completed", "value": len(resume.Projects), "suffix": "+"},
			map[string]any{"label": "Technologies", "value": len(skills), "suffix": ""},
		}}, nil
	case models.TypeTestimonialsCarousel:
		return map[string]any{"testimonials": []any{}}, nil
	case models.TypeBlog, models.TypeBlogPreviewGrid:
		return map[string]any{"posts": []any{}}, nil
	case models.TypeContact:
		return map[string]any{"email": resume.Email, "phone": "", "linkedin": "", "github": ""}, nil
	case models.TypeContactForm:
		return map[string]any{
			"title":              "Contact Me",
			"description":        "",
			"fields":             []any{"name", "email", "message"},
			"submit_button_text": "Send Message",
		}, nil
	case models.TypeFooter:
		return map[string]any{
			"copyright_text": fmt.Sprintf("© %d %s. All rights reserved.", time.Now().Year(), name),
			"links":          []any{},
			"social_links":   map[string]any{},
		}, nil
	default:
		return map[string]any{}, nil
	}
}

func fallbackBio(name string, resume Resume) string {
	bio := fmt.Sprintf("I am %s, a dedicated professional passionate about delivering excellence.", name)
	if resume.Summary != "" {
		bio += " " + resume.Summary
	}
	if len(resume.Skills) > 0 {
		n := len(resume.Skills)
		if n > 5 {
			n = 5
		}
		bio += fmt.Sprintf(" My expertise spans %s, and I am always eager to take on new challenges.",
			joinComma(resume.Skills[:n]))
	}
	return bio
}

func joinComma(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
