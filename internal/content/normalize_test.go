package content

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillsFromStringSlice(t *testing.T) {
	got := Skills([]any{"React", "", "Node.js", "  "})
	assert.Equal(t, []string{"React", "Node.js"}, got)
}

func TestSkillsFromObjectSlice(t *testing.T) {
	got := Skills([]any{
		map[string]any{"name": "Go", "category": "backend", "confidence": 0.9},
		map[string]any{"name": "  Python  "},
		map[string]any{"category": "orphan"},
	})
	assert.Equal(t, []string{"Go", "Python"}, got)
}

func TestSkillsFromCommaString(t *testing.T) {
	got := Skills("Go, SQL , ,Docker")
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, got)
}

func TestSkillsNilAndGarbage(t *testing.T) {
	assert.Empty(t, Skills(nil))
	assert.Empty(t, Skills(42))
	assert.Empty(t, Skills(map[string]any{"skills": "Go"}))
}

func TestSkillsPreservesOrderAndDuplicates(t *testing.T) {
	got := Skills([]any{"Go", "Go", "Rust"})
	assert.Equal(t, []string{"Go", "Go", "Rust"}, got)
}

func TestProjectsDropInvalidEntries(t *testing.T) {
	in := []any{
		map[string]any{"id": float64(1), "title": "A"},
		map[string]any{"title": "B"},            // missing id
		map[string]any{"id": float64(3)},        // missing title
		float64(7),                              // unresolved id reference
		"garbage",
	}
	got := Projects(in)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "A", got[0].Title)
}

func TestProjectAliasesAndShortDescription(t *testing.T) {
	long := make([]byte, 250)
	for i := range long {
		long[i] = 'x'
	}
	p := Project(map[string]any{
		"id":          float64(5),
		"title":       "Site",
		"description": string(long),
		"github":      "https://github.com/u/site",
		"website":     "https://site.dev",
		"tags":        []any{"Go", "HTMX"},
	})
	require.NotNil(t, p)
	assert.Equal(t, "https://github.com/u/site", p.GithubURL)
	assert.Equal(t, "https://site.dev", p.LiveURL)
	assert.Equal(t, []string{"Go", "HTMX"}, p.Technologies)
	assert.Len(t, p.ShortDescription, 203) // 200 chars + "..."
}

func TestShortDescriptionMultibyteTruncation(t *testing.T) {
	long := strings.Repeat("日本語テキスト", 50) // 300 runes, 3 bytes each
	p := Project(map[string]any{
		"id":          float64(9),
		"title":       "Docs",
		"description": long,
	})
	require.NotNil(t, p)
	assert.True(t, utf8.ValidString(p.ShortDescription))
	assert.True(t, strings.HasSuffix(p.ShortDescription, "..."))
	assert.Equal(t, 200, utf8.RuneCountInString(strings.TrimSuffix(p.ShortDescription, "...")))
}

func TestBlogPostsMinimumFields(t *testing.T) {
	in := []any{
		map[string]any{"id": float64(1), "title": "Hello", "content": "body", "created_at": "2026-01-01"},
		map[string]any{"title": "no id"},
	}
	got := BlogPosts(in)
	require.Len(t, got, 1)
	assert.Equal(t, "body", got[0].Content)
	assert.Equal(t, "2026-01-01", got[0].PublishedDate)
}

func TestImages(t *testing.T) {
	got := Images([]any{
		"https://a.example/1.png",
		map[string]any{"url": "https://a.example/2.png", "alt": "two"},
		map[string]any{"caption": "no url"},
		map[string]any{"url": "https://a.example/3.png"},
	})
	require.Len(t, got, 3)
	assert.Equal(t, "Image 1", got[0].Alt)
	assert.Equal(t, "two", got[1].Alt)
	assert.Equal(t, "Image 3", got[2].Alt)
}

func TestURL(t *testing.T) {
	assert.Equal(t, "https://example.com", URL("example.com"))
	assert.Equal(t, "https://example.com/x", URL("  https://example.com/x "))
	assert.Equal(t, "", URL(""))
	assert.Equal(t, "", URL(nil))
	assert.Equal(t, "", URL("https://"))
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "dev@example.com", Email(" dev@example.com "))
	assert.Equal(t, "", Email("not-an-email"))
	assert.Equal(t, "", Email(nil))
}

func TestContactInfoNestedAndFlatSocial(t *testing.T) {
	flat := ContactInfo(map[string]any{
		"email":    "dev@example.com",
		"linkedin": "linkedin.com/in/dev",
	})
	assert.Equal(t, "https://linkedin.com/in/dev", flat.Social.LinkedIn)

	nested := ContactInfo(map[string]any{
		"social": map[string]any{"github": "github.com/dev"},
	})
	assert.Equal(t, "https://github.com/dev", nested.Social.Github)
}

func TestComponentDispatch(t *testing.T) {
	got := Component("skills", map[string]any{"skills": "Go,SQL"})
	assert.Equal(t, []string{"Go", "SQL"}, got["skills"])

	got = Component("header", nil)
	assert.Equal(t, "", got["title"])
	assert.Equal(t, "", got["subtitle"])

	// unknown types pass content through untouched
	raw := map[string]any{"anything": 1}
	assert.Equal(t, raw, Component("custom", raw))
}
