package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliohub/pkg/models"
)

func portfolioWith(components ...models.Component) *models.Portfolio {
	return &models.Portfolio{
		ID:           1,
		Title:        "Test Portfolio",
		TemplateType: "modern",
		Components:   components,
	}
}

func TestRenderSectionsFiltersInvisibleAndSortsStable(t *testing.T) {
	r := &Renderer{}
	p := portfolioWith(
		models.Component{ComponentType: "skills", Order: 1, IsVisible: true, Content: map[string]any{"skills": "Go"}},
		models.Component{ComponentType: "about", Order: 0, IsVisible: true, Content: map[string]any{"bio": "hi"}},
		models.Component{ComponentType: "header", Order: 0, IsVisible: false, Content: map[string]any{"title": "hidden"}},
		// same order value as about: must keep original relative position
		models.Component{ComponentType: "contact", Order: 0, IsVisible: true, Content: map[string]any{"email": "a@b.co"}},
	)

	sections := r.RenderSections(p, nil)
	require.Len(t, sections, 3)
	assert.Equal(t, "about", sections[0].Type)
	assert.Equal(t, "contact", sections[1].Type)
	assert.Equal(t, "skills", sections[2].Type)
}

func TestRenderSectionsIdempotent(t *testing.T) {
	r := &Renderer{}
	p := portfolioWith(
		models.Component{ComponentType: "header", Order: 0, IsVisible: true, Content: map[string]any{"title": "Jane"}},
		models.Component{ComponentType: "skills", Order: 1, IsVisible: true, Content: map[string]any{"skills": []any{"Go", "SQL"}}},
	)

	first := r.RenderSections(p, nil)
	second := r.RenderSections(p, nil)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Type, second[i].Type)
		assert.Equal(t, first[i].HTML, second[i].HTML)
	}
}

func TestUnknownComponentTypeSkipped(t *testing.T) {
	r := &Renderer{}
	p := portfolioWith(
		models.Component{ComponentType: "hologram", Order: 0, IsVisible: true, Content: map[string]any{"x": 1}},
		models.Component{ComponentType: "about", Order: 1, IsVisible: true, Content: map[string]any{"bio": "hi"}},
	)

	sections := r.RenderSections(p, nil)
	require.Len(t, sections, 1)
	assert.Equal(t, "about", sections[0].Type)
}

func TestEmptyAboutRendersPlaceholder(t *testing.T) {
	r := &Renderer{}
	sec := r.RenderSection(models.Component{ComponentType: "about", IsVisible: true}, "modern", nil)
	require.NoError(t, sec.Err)
	assert.Contains(t, string(sec.HTML), "About")
	assert.Contains(t, string(sec.HTML), "No bio available")
}

func TestEmptyTestimonialsRendersNothing(t *testing.T) {
	r := &Renderer{}
	for _, typ := range []string{
		"testimonials_carousel", "services_section", "skills_cloud",
		"blog_preview_grid", "achievements_counters", "experience_timeline",
	} {
		sec := r.RenderSection(models.Component{ComponentType: typ, IsVisible: true}, "modern", nil)
		require.NoError(t, sec.Err, typ)
		assert.Empty(t, string(sec.HTML), typ)
	}
}

func TestProjectsDropsInvalidEntries(t *testing.T) {
	r := &Renderer{}
	sec := r.RenderSection(models.Component{
		ComponentType: "projects",
		IsVisible:     true,
		Content: map[string]any{
			"projects": []any{
				map[string]any{"id": float64(1), "title": "A"},
				map[string]any{"title": "B"}, // missing id, dropped
			},
		},
	}, "modern", nil)
	require.NoError(t, sec.Err)
	html := string(sec.HTML)
	assert.Equal(t, 1, strings.Count(html, "project-card"))
	assert.Contains(t, html, "A")
	assert.NotContains(t, html, ">B<")
}

func TestMalformedContentNeverFailsSection(t *testing.T) {
	r := &Renderer{}
	malformed := map[string]any{
		"skills":   map[string]any{"not": "a list"},
		"projects": "garbage",
		"bio":      12.5,
		"title":    nil,
	}
	for _, typ := range models.ComponentTypes {
		sec := r.RenderSection(models.Component{ComponentType: typ, IsVisible: true, Content: malformed}, "designer", nil)
		assert.NoError(t, sec.Err, typ)
	}
}

func TestRenderPageDocument(t *testing.T) {
	r := &Renderer{TrackURL: "http://localhost:8080/api/track/click"}
	p := portfolioWith(
		models.Component{ComponentType: "header", Order: 0, IsVisible: true, Content: map[string]any{"title": "Jane Doe", "subtitle": "Engineer"}},
	)
	p.SEOTitle = "Jane Doe - Portfolio"
	p.SEODescription = "Personal portfolio"

	html, err := r.RenderPage(p, map[string]any{"primary_color": "#112233"})
	require.NoError(t, err)
	assert.Contains(t, html, "<title>Jane Doe - Portfolio</title>")
	assert.Contains(t, html, "Jane Doe")
	assert.Contains(t, html, "--template-primary: #112233")
	assert.Contains(t, html, "template-modern")
	assert.Contains(t, html, "sendBeacon")
}

func TestSkinFallback(t *testing.T) {
	assert.Equal(t, SkinClasses("modern"), SkinClasses("bogus"))
	colors := SkinColors("bogus", nil)
	assert.Equal(t, "#7c3aed", colors.Primary)
}

func TestSkinColorOverrides(t *testing.T) {
	colors := SkinColors("classic", map[string]any{
		"primary_color":   "#abcdef",
		"secondary_color": "not-a-color",
	})
	assert.Equal(t, "#abcdef", colors.Primary)
	assert.Equal(t, "#64748b", colors.Secondary) // invalid override ignored
}

func TestHexToRGB(t *testing.T) {
	assert.Equal(t, "37, 99, 235", HexToRGB("#2563eb"))
	assert.Equal(t, "", HexToRGB("2563eb"))
	assert.Equal(t, "", HexToRGB("#xyzxyz"))
}

func TestMarkdownHTMLEscapesInput(t *testing.T) {
	out := string(markdownHTML("**bold** <script>alert(1)</script>"))
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "<script>")
}
