package models

import "time"

// Template skins. Styling only, never data shape.
const (
	SkinClassic    = "classic"
	SkinModern     = "modern"
	SkinMinimalist = "minimalist"
	SkinDeveloper  = "developer"
	SkinDesigner   = "designer"
)

// NormalizeSkin maps unknown skin names to the default.
func NormalizeSkin(s string) string {
	switch s {
	case SkinClassic, SkinModern, SkinMinimalist, SkinDeveloper, SkinDesigner:
		return s
	default:
		return SkinModern
	}
}

type Portfolio struct {
	ID             int64          `json:"id"`
	UserID         string         `json:"user_id"`
	Title          string         `json:"title"`
	Slug           string         `json:"slug,omitempty"`
	TemplateID     *int64         `json:"template,omitempty"`
	TemplateType   string         `json:"template_type"`
	IsPublished    bool           `json:"is_published"`
	CustomSettings map[string]any `json:"custom_settings"`
	SEOTitle       string         `json:"seo_title,omitempty"`
	SEODescription string         `json:"seo_description,omitempty"`
	SEOKeywords    string         `json:"seo_keywords,omitempty"`
	ProfilePhoto   string         `json:"profile_photo_url,omitempty"`
	Components     []Component    `json:"components"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	PublishedAt    *time.Time     `json:"published_at,omitempty"`
}

// PortfolioSummary is the list-view projection (no components).
type PortfolioSummary struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug,omitempty"`
	TemplateType string    `json:"template_type"`
	IsPublished  bool      `json:"is_published"`
	Components   int       `json:"component_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Template is a selectable portfolio template record.
type Template struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Config      map[string]any `json:"config"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
