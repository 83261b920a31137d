// Package content turns loosely-typed portfolio component content into
// safe, render-ready shapes. Component content is user-authored through
// free-form builder forms or AI-generated, so any field can be missing,
// null or the wrong type at any time. Normalizers never fail: malformed
// entries are filtered out, absent values become zero values, and the
// renderer decides what an empty result looks like.
package content

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

// Card is the canonical render shape for one project entry, whether it
// came from the projects API or was hand-authored inside component content.
type Card struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"short_description,omitempty"`
	Image            string   `json:"image,omitempty"`
	GithubURL        string   `json:"github_url,omitempty"`
	LiveURL          string   `json:"live_url,omitempty"`
	Technologies     []string `json:"technologies"`
}

// Post is the canonical render shape for one blog post entry.
type Post struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Excerpt       string `json:"excerpt,omitempty"`
	Content       string `json:"content_markdown,omitempty"`
	FeaturedImage string `json:"featured_image,omitempty"`
	Published     bool   `json:"published"`
	PublishedDate string `json:"published_date,omitempty"`
}

// Image is one normalized gallery entry.
type Image struct {
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
}

// Social holds validated contact links; empty string means absent.
type Social struct {
	LinkedIn string `json:"linkedin,omitempty"`
	Github   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Contact is the normalized contact section payload.
type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Social   Social `json:"social"`
}

// Skills normalizes a skills value from any of its accepted shapes: a
// slice of strings, a slice of {name, category, confidence} objects, or
// a comma-separated string. Order is preserved, duplicates allowed,
// empty and whitespace-only entries dropped.
func Skills(v any) []string {
	out := []string{}
	switch skills := v.(type) {
	case nil:
		return out
	case []string:
		for _, s := range skills {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range skills {
			s := ""
			switch it := item.(type) {
			case string:
				s = it
			case map[string]any:
				s = asString(it["name"])
			default:
				s = asString(it)
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, part := range strings.Split(skills, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Project validates one project-ish record. Records missing an id or a
// title are rejected (nil), not replaced with placeholders. A bare
// numeric id is also rejected: it is a dangling reference that the
// caller should have resolved against the projects collection.
func Project(v any) *Card {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	id := asInt64(m["id"])
	title := strings.TrimSpace(asString(m["title"]))
	if id == 0 || title == "" {
		return nil
	}

	desc := asString(m["description"])
	short := asString(m["short_description"])
	if desc == "" {
		desc = short
	}
	if short == "" && desc != "" {
		short = desc
		if r := []rune(short); len(r) > 200 {
			short = strings.TrimSpace(string(r[:200])) + "..."
		}
	}

	techs := m["technologies"]
	if techs == nil {
		techs = m["tags"]
	}

	return &Card{
		ID:               id,
		Title:            title,
		Description:      desc,
		ShortDescription: short,
		Image:            asString(m["image"]),
		GithubURL:        firstString(m, "github_url", "github"),
		LiveURL:          firstString(m, "live_url", "website", "live"),
		Technologies:     Skills(techs),
	}
}

// Projects validates a project list; invalid entries are dropped, never
// fatal to the rest of the list. Already-normalized cards pass through.
func Projects(v any) []Card {
	out := []Card{}
	if cards, ok := v.([]Card); ok {
		return cards
	}
	list, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range list {
		if p := Project(item); p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// BlogPost validates one blog-post-ish record. Same minimum-field rule
// as Project: id and title or it is dropped.
func BlogPost(v any) *Post {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	id := asInt64(m["id"])
	title := strings.TrimSpace(asString(m["title"]))
	if id == 0 || title == "" {
		return nil
	}

	published, _ := m["published"].(bool)

	return &Post{
		ID:            id,
		Title:         title,
		Excerpt:       asString(m["excerpt"]),
		Content:       firstString(m, "content_markdown", "content"),
		FeaturedImage: firstString(m, "featured_image", "image"),
		Published:     published,
		PublishedDate: firstString(m, "published_date", "created_at"),
	}
}

// BlogPosts validates a blog post list, dropping invalid entries.
// Already-normalized posts pass through.
func BlogPosts(v any) []Post {
	out := []Post{}
	if posts, ok := v.([]Post); ok {
		return posts
	}
	list, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range list {
		if p := BlogPost(item); p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// Images accepts a list of string URLs or {url, alt, caption} objects.
// Entries without a string url are dropped; a missing alt is synthesized
// from the entry's 1-based position.
func Images(v any) []Image {
	out := []Image{}
	list, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range list {
		var img Image
		switch it := item.(type) {
		case string:
			img.URL = strings.TrimSpace(it)
		case map[string]any:
			img.URL = strings.TrimSpace(asString(it["url"]))
			img.Alt = asString(it["alt"])
			img.Caption = asString(it["caption"])
		}
		if img.URL == "" {
			continue
		}
		if img.Alt == "" {
			img.Alt = fmt.Sprintf("Image %d", len(out)+1)
		}
		out = append(out, img)
	}
	return out
}

// URL validates a link value. A schemeless value gets https:// prepended;
// anything unparseable normalizes to "" (absence), never an error.
func URL(v any) string {
	s := strings.TrimSpace(asString(v))
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}
	return s
}

// Email validates an email value; invalid shapes normalize to "".
func Email(v any) string {
	s := strings.TrimSpace(asString(v))
	if s == "" {
		return ""
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return ""
	}
	return s
}

// ContactInfo normalizes a contact component's content, accepting social
// links either flat (content.linkedin) or nested (content.social.linkedin).
func ContactInfo(m map[string]any) Contact {
	social, _ := m["social"].(map[string]any)

	pick := func(key string) any {
		if v, ok := m[key]; ok && asString(v) != "" {
			return v
		}
		if social != nil {
			return social[key]
		}
		return nil
	}

	return Contact{
		Email:    Email(m["email"]),
		Phone:    strings.TrimSpace(asString(m["phone"])),
		Location: strings.TrimSpace(asString(m["location"])),
		Social: Social{
			LinkedIn: URL(pick("linkedin")),
			Github:   URL(pick("github")),
			Website:  URL(pick("website")),
		},
	}
}

// Component normalizes one component's content by type. Unknown types
// pass their content through untouched; a nil content map comes back as
// an empty map so callers never index into nil.
func Component(componentType string, content map[string]any) map[string]any {
	if content == nil {
		content = map[string]any{}
	}

	switch componentType {
	case "header":
		return map[string]any{
			"title":    asString(content["title"]),
			"subtitle": asString(content["subtitle"]),
		}
	case "about":
		return map[string]any{
			"bio": asString(content["bio"]),
		}
	case "skills":
		return map[string]any{
			"skills": Skills(content["skills"]),
		}
	case "projects":
		return map[string]any{
			"projects": Projects(content["projects"]),
		}
	case "blog":
		return map[string]any{
			"posts": BlogPosts(content["posts"]),
		}
	case "contact":
		c := ContactInfo(content)
		return map[string]any{
			"email":    c.Email,
			"phone":    c.Phone,
			"location": c.Location,
			"social":   c.Social,
		}
	default:
		return content
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%v", s)
	case bool:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		var out int64
		if _, err := fmt.Sscanf(strings.TrimSpace(n), "%d", &out); err == nil {
			return out
		}
	}
	return 0
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := asString(m[k]); s != "" {
			return s
		}
	}
	return ""
}
