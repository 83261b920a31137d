package seo

import (
	"math"
	"strings"

	"portfoliohub/internal/content"
	"portfoliohub/pkg/models"
)

// Recommendation is one actionable SEO finding.
type Recommendation struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// Analysis is the scored result for one portfolio.
type Analysis struct {
	Score            int                `json:"score"`
	Grade            string             `json:"grade"`
	Recommendations  []Recommendation   `json:"recommendations"`
	KeywordDensity   map[string]float64 `json:"keyword_density"`
	MetaTags         MetaTags           `json:"meta_tags"`
	ContentLength    int                `json:"content_length"`
	ReadabilityScore int                `json:"readability_score"`
}

type MetaTags struct {
	Title       bool `json:"title"`
	Description bool `json:"description"`
	Keywords    bool `json:"keywords"`
}

// Analyze scores a portfolio's SEO metadata against length and presence
// rules. The score starts at 100 and each finding subtracts a penalty;
// the result is clamped to 0..100.
func Analyze(p *models.Portfolio) *Analysis {
	title := strings.TrimSpace(p.SEOTitle)
	description := strings.TrimSpace(p.SEODescription)
	keywords := strings.TrimSpace(p.SEOKeywords)
	text := ContentText(p)

	a := &Analysis{
		Score:            100,
		Recommendations:  []Recommendation{},
		KeywordDensity:   map[string]float64{},
		MetaTags:         MetaTags{Title: title != "", Description: description != "", Keywords: keywords != ""},
		ContentLength:    len(text),
		ReadabilityScore: 70,
	}

	switch {
	case title == "":
		a.add("meta_title", "Missing SEO title", "high", 20)
	case len(title) < 30:
		a.add("meta_title", "SEO title is too short (recommended: 30-60 characters)", "medium", 5)
	case len(title) > 60:
		a.add("meta_title", "SEO title is too long (recommended: 30-60 characters)", "medium", 5)
	}

	switch {
	case description == "":
		a.add("meta_description", "Missing meta description", "high", 15)
	case len(description) < 120:
		a.add("meta_description", "Meta description is too short (recommended: 120-160 characters)", "medium", 5)
	case len(description) > 160:
		a.add("meta_description", "Meta description is too long (recommended: 120-160 characters)", "medium", 5)
	}

	if keywords == "" {
		a.add("meta_keywords", "Missing meta keywords", "low", 5)
	}

	if len(text) < 300 {
		a.add("content_length", "Content is too short (recommended: at least 300 words)", "medium", 10)
	}

	if keywords != "" && text != "" {
		words := len(strings.Fields(text))
		lower := strings.ToLower(text)
		for _, kw := range strings.Split(keywords, ",") {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			count := strings.Count(lower, kw)
			density := float64(count) / float64(words) * 100
			a.KeywordDensity[kw] = math.Round(density*100) / 100
		}
	}

	if a.Score < 0 {
		a.Score = 0
	}
	a.Grade = grade(a.Score)
	return a
}

func grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 70:
		return "B"
	case score >= 50:
		return "C"
	default:
		return "D"
	}
}

func (a *Analysis) add(typ, msg, priority string, penalty int) {
	a.Recommendations = append(a.Recommendations, Recommendation{Type: typ, Message: msg, Priority: priority})
	a.Score -= penalty
}

// ContentText flattens the portfolio's visible component content into
// one text blob for length and density checks.
func ContentText(p *models.Portfolio) string {
	var parts []string
	push := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}

	push(p.Title)
	for _, comp := range p.Components {
		if !comp.IsVisible {
			continue
		}
		normalized := content.Component(comp.ComponentType, comp.Content)
		for _, key := range []string{"title", "subtitle", "bio", "description", "text"} {
			if s, ok := normalized[key].(string); ok {
				push(s)
			}
		}
		if skills, ok := normalized["skills"].([]string); ok {
			push(strings.Join(skills, " "))
		}
		if cards, ok := normalized["projects"].([]content.Card); ok {
			for _, card := range cards {
				push(card.Title)
				push(card.Description)
			}
		}
		if posts, ok := normalized["posts"].([]content.Post); ok {
			for _, post := range posts {
				push(post.Title)
				push(post.Excerpt)
				push(post.Content)
			}
		}
	}
	return strings.Join(parts, " ")
}

// SuggestKeywords derives a comma-separated keyword list from the
// portfolio's skills and title when no AI generator is available.
func SuggestKeywords(p *models.Portfolio) string {
	seen := map[string]bool{}
	var out []string
	add := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}

	for _, comp := range p.Components {
		if comp.ComponentType != models.TypeSkills && comp.ComponentType != models.TypeSkillsCloud {
			continue
		}
		for _, skill := range content.Skills(comp.Content["skills"]) {
			add(skill)
		}
	}
	add(p.Title)
	add("portfolio")

	if len(out) > 10 {
		out = out[:10]
	}
	return strings.Join(out, ", ")
}

// SuggestDescription builds a meta description from the portfolio's bio
// or title, trimmed to the recommended length.
func SuggestDescription(p *models.Portfolio) string {
	text := ""
	for _, comp := range p.Components {
		if comp.ComponentType != models.TypeAbout && comp.ComponentType != models.TypeAboutMeCard {
			continue
		}
		normalized := content.Component(comp.ComponentType, comp.Content)
		if bio, ok := normalized["bio"].(string); ok && strings.TrimSpace(bio) != "" {
			text = strings.TrimSpace(bio)
			break
		}
	}
	if text == "" {
		text = strings.TrimSpace(p.Title) + " - personal portfolio, projects and writing."
	}

	if len(text) > 157 {
		cut := text[:157]
		if idx := strings.LastIndex(cut, " "); idx > 100 {
			cut = cut[:idx]
		}
		text = cut + "..."
	}
	return text
}
