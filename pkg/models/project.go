package models

import "time"

type Project struct {
	ID               int64      `json:"id"`
	UserID           string     `json:"user_id,omitempty"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug,omitempty"`
	Description      string     `json:"description"`
	ShortDescription string     `json:"short_description,omitempty"`
	Image            string     `json:"image,omitempty"`
	Category         *Category  `json:"category,omitempty"`
	Tags             []string   `json:"tags"`
	GithubURL        string     `json:"github_url,omitempty"`
	LiveURL          string     `json:"live_url,omitempty"`
	Featured         bool       `json:"featured"`
	Order            int        `json:"order"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Category is shared by projects and blog posts.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
