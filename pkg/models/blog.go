package models

import "time"

type BlogPost struct {
	ID              int64      `json:"id"`
	UserID          string     `json:"user_id,omitempty"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug,omitempty"`
	ContentMarkdown string     `json:"content_markdown"`
	Excerpt         string     `json:"excerpt,omitempty"`
	FeaturedImage   string     `json:"featured_image,omitempty"`
	Category        *Category  `json:"category,omitempty"`
	Tags            []string   `json:"tags"`
	Published       bool       `json:"published"`
	PublishedDate   *time.Time `json:"published_date,omitempty"`
	Views           int        `json:"views"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
