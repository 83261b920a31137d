package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliohub/pkg/models"
)

func TestAnalyzeEmptyPortfolio(t *testing.T) {
	a := Analyze(&models.Portfolio{})

	// -20 title, -15 description, -5 keywords, -10 short content
	assert.Equal(t, 50, a.Score)
	assert.Equal(t, "C", a.Grade)
	assert.False(t, a.MetaTags.Title)
	assert.False(t, a.MetaTags.Description)
	assert.False(t, a.MetaTags.Keywords)

	types := map[string]string{}
	for _, rec := range a.Recommendations {
		types[rec.Type] = rec.Priority
	}
	assert.Equal(t, "high", types["meta_title"])
	assert.Equal(t, "high", types["meta_description"])
	assert.Equal(t, "low", types["meta_keywords"])
	assert.Equal(t, "medium", types["content_length"])
}

func TestAnalyzeWellFormedMeta(t *testing.T) {
	p := &models.Portfolio{
		SEOTitle:       strings.Repeat("t", 45),
		SEODescription: strings.Repeat("d", 140),
		SEOKeywords:    "go, backend",
		Components: []models.Component{
			{
				ComponentType: models.TypeAbout,
				IsVisible:     true,
				Content:       map[string]any{"bio": strings.Repeat("go backend services ", 30)},
			},
		},
	}
	a := Analyze(p)
	assert.Equal(t, 100, a.Score)
	assert.Equal(t, "A", a.Grade)
	assert.Empty(t, a.Recommendations)
	assert.True(t, a.MetaTags.Title)
	assert.Greater(t, a.KeywordDensity["go"], 0.0)
}

func TestAnalyzeTitleLengthPenalties(t *testing.T) {
	short := Analyze(&models.Portfolio{SEOTitle: "short"})
	long := Analyze(&models.Portfolio{SEOTitle: strings.Repeat("x", 80)})

	// both get -5 instead of the -20 missing penalty
	assert.Equal(t, short.Score, long.Score)
	assert.Equal(t, 65, short.Score)
}

func TestAnalyzeScoreNeverNegative(t *testing.T) {
	a := Analyze(&models.Portfolio{})
	assert.GreaterOrEqual(t, a.Score, 0)
	assert.LessOrEqual(t, a.Score, 100)
}

func TestAnalyzeInvisibleComponentsExcluded(t *testing.T) {
	p := &models.Portfolio{
		Components: []models.Component{
			{
				ComponentType: models.TypeAbout,
				IsVisible:     false,
				Content:       map[string]any{"bio": strings.Repeat("hidden text ", 100)},
			},
		},
	}
	a := Analyze(p)
	assert.Less(t, a.ContentLength, 300)
}

func TestContentTextIncludesSkillsAndProjects(t *testing.T) {
	p := &models.Portfolio{
		Title: "Jane Doe",
		Components: []models.Component{
			{
				ComponentType: models.TypeSkills,
				IsVisible:     true,
				Content:       map[string]any{"skills": []any{"Go", "SQLite"}},
			},
			{
				ComponentType: models.TypeProjects,
				IsVisible:     true,
				Content: map[string]any{"projects": []any{
					map[string]any{"id": float64(1), "title": "PortfolioHub", "description": "A builder"},
				}},
			},
		},
	}
	text := ContentText(p)
	assert.Contains(t, text, "Go")
	assert.Contains(t, text, "PortfolioHub")
	assert.Contains(t, text, "A builder")
}

func TestSuggestKeywords(t *testing.T) {
	p := &models.Portfolio{
		Title: "Jane Doe",
		Components: []models.Component{
			{
				ComponentType: models.TypeSkills,
				Content:       map[string]any{"skills": []any{"Go", "Docker", "go"}},
			},
		},
	}
	kws := SuggestKeywords(p)
	require.NotEmpty(t, kws)
	assert.Contains(t, kws, "go")
	assert.Contains(t, kws, "docker")
	assert.Contains(t, kws, "jane doe")
	// case-insensitive dedupe
	assert.Equal(t, 1, strings.Count(kws, "go,")+strings.Count(kws, ", go"))
}

func TestSuggestDescriptionFromBio(t *testing.T) {
	long := strings.Repeat("I build backend services in Go. ", 20)
	p := &models.Portfolio{
		Title: "Jane Doe",
		Components: []models.Component{
			{ComponentType: models.TypeAbout, Content: map[string]any{"bio": long}},
		},
	}
	desc := SuggestDescription(p)
	assert.True(t, strings.HasPrefix(desc, "I build backend services"))
	assert.LessOrEqual(t, len(desc), 160)
	assert.True(t, strings.HasSuffix(desc, "..."))
}

func TestSuggestDescriptionFallsBackToTitle(t *testing.T) {
	desc := SuggestDescription(&models.Portfolio{Title: "Jane Doe"})
	assert.Contains(t, desc, "Jane Doe")
}
