package render

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"sort"

	"portfoliohub/internal/content"
	"portfoliohub/pkg/models"
)

// Section is one rendered portfolio section. Err is set when the section
// renderer failed or panicked; the page renderer swaps in an inline error
// card so one bad section never takes down the page.
type Section struct {
	Type string
	HTML template.HTML
	Err  error
}

// Renderer turns a portfolio into a standalone HTML page.
type Renderer struct {
	// TrackURL, when set, is the analytics endpoint the rendered page
	// reports clicks to. Empty disables the beacon (exports, previews).
	TrackURL string
}

// RenderSection renders one component in isolation. A panic inside a
// section renderer is recovered and reported as the section's Err.
func (r *Renderer) RenderSection(comp models.Component, skin string, cfg map[string]any) (sec Section) {
	sec.Type = comp.ComponentType

	defer func() {
		if rec := recover(); rec != nil {
			sec.HTML = ""
			sec.Err = fmt.Errorf("render %s: panic: %v", comp.ComponentType, rec)
		}
	}()

	fn, ok := sectionFuncs[comp.ComponentType]
	if !ok {
		// unknown component types render nothing
		return sec
	}

	normalized := content.Component(comp.ComponentType, comp.Content)
	html, err := fn(normalized, skin, cfg)
	sec.HTML = html
	sec.Err = err
	return sec
}

// RenderSections filters the portfolio's components to the visible ones,
// orders them (stable: ties keep original relative position) and renders
// each in isolation. Failed sections come back as inline error cards.
func (r *Renderer) RenderSections(p *models.Portfolio, cfg map[string]any) []Section {
	skin := models.NormalizeSkin(p.TemplateType)

	visible := make([]models.Component, 0, len(p.Components))
	for _, comp := range p.Components {
		if comp.IsVisible {
			visible = append(visible, comp)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Order < visible[j].Order
	})

	sections := make([]Section, 0, len(visible))
	for _, comp := range visible {
		sec := r.RenderSection(comp, skin, cfg)
		if sec.Err != nil {
			log.Printf("[render] section %s failed: %v", sec.Type, sec.Err)
			sec.HTML = errorCard(sec.Type, skin)
		}
		if sec.HTML == "" {
			continue
		}
		sections = append(sections, sec)
	}
	return sections
}

// RenderPage renders the full public HTML document for a portfolio.
func (r *Renderer) RenderPage(p *models.Portfolio, cfg map[string]any) (string, error) {
	skin := models.NormalizeSkin(p.TemplateType)
	colors := SkinColors(skin, cfg)

	sections := r.RenderSections(p, cfg)
	body := make([]template.HTML, 0, len(sections))
	for _, sec := range sections {
		body = append(body, sec.HTML)
	}

	title := p.SEOTitle
	if title == "" {
		title = p.Title
	}

	data := pageData{
		Title:          title,
		Description:    p.SEODescription,
		Keywords:       p.SEOKeywords,
		ContainerClass: SkinClasses(skin).Container,
		Primary:        template.CSS(colors.Primary),
		Secondary:      template.CSS(colors.Secondary),
		Background:     template.CSS(colors.Background),
		Text:           template.CSS(colors.Text),
		PrimaryRGB:     template.CSS(HexToRGB(colors.Primary)),
		SecondaryRGB:   template.CSS(HexToRGB(colors.Secondary)),
		FontFamily:     template.CSS(FontFamily(cfg)),
		Sections:       body,
		PortfolioID:    p.ID,
		TrackURL:       r.TrackURL,
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return buf.String(), nil
}

func errorCard(name, skin string) template.HTML {
	html, err := execSection("error_card", struct {
		sectionBase
		Name string
	}{base(skin), name})
	if err != nil {
		// last resort, still inline and inert
		return template.HTML("<section class=\"section-error\"><p>Error in " +
			template.HTMLEscapeString(name) + "</p></section>")
	}
	return html
}

type pageData struct {
	Title          string
	Description    string
	Keywords       string
	ContainerClass string
	Primary        template.CSS
	Secondary      template.CSS
	Background     template.CSS
	Text           template.CSS
	PrimaryRGB     template.CSS
	SecondaryRGB   template.CSS
	FontFamily     template.CSS
	Sections       []template.HTML
	PortfolioID    int64
	TrackURL       string
}

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{if .Description}}<meta name="description" content="{{.Description}}">{{end}}
{{if .Keywords}}<meta name="keywords" content="{{.Keywords}}">{{end}}
<style>
:root {
  --template-primary: {{.Primary}};
  --template-secondary: {{.Secondary}};
  --template-primary-rgb: {{.PrimaryRGB}};
  --template-secondary-rgb: {{.SecondaryRGB}};
  --template-background: {{.Background}};
  --template-text: {{.Text}};
  --template-font-family: {{.FontFamily}}, sans-serif;
}
body { margin: 0; background: var(--template-background); color: var(--template-text); font-family: var(--template-font-family); }
section, header, footer { padding: 3rem 1.5rem; max-width: 960px; margin: 0 auto; }
.section-title { color: var(--template-primary); }
.placeholder { opacity: 0.6; text-align: center; padding: 2rem 0; }
.skill-pill { display: inline-block; margin: 0.25rem; padding: 0.25rem 0.75rem; border-radius: 9999px; border: 1px solid var(--template-primary); color: var(--template-primary); }
.project-grid, .service-grid, .counter-grid, .blog-preview-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: 1.5rem; }
.hidden { display: none; }
.error-card { border: 1px solid #dc2626; color: #dc2626; padding: 1rem; border-radius: 0.5rem; }
a { color: var(--template-primary); }
</style>
</head>
<body class="{{.ContainerClass}}">
{{range .Sections}}{{.}}{{end}}
<script>
(function () {
  // animated counters: fixed 2s duration over 60 eased steps
  document.querySelectorAll("[data-counter-target]").forEach(function (el) {
    var target = parseInt(el.getAttribute("data-counter-target"), 10) || 0;
    var steps = parseInt(el.getAttribute("data-counter-steps"), 10) || 60;
    var duration = parseInt(el.getAttribute("data-counter-duration"), 10) || 2000;
    var value = el.querySelector(".counter-value");
    var step = 0;
    var timer = setInterval(function () {
      step++;
      var progress = step / steps;
      var eased = 1 - Math.pow(1 - progress, 3);
      value.textContent = value.textContent.replace(/[0-9]+/, Math.floor(target * eased));
      if (step >= steps) clearInterval(timer);
    }, duration / steps);
  });

  // testimonials carousel
  document.querySelectorAll("[data-carousel]").forEach(function (carousel) {
    var items = carousel.querySelectorAll(".testimonial");
    if (items.length < 2) return;
    var index = 0;
    var show = function (next) {
      items[index].classList.add("hidden");
      index = (next + items.length) % items.length;
      items[index].classList.remove("hidden");
    };
    carousel.querySelector(".carousel-prev").addEventListener("click", function () { show(index - 1); });
    carousel.querySelector(".carousel-next").addEventListener("click", function () { show(index + 1); });
  });

  {{if .TrackURL}}
  // fire-and-forget click beacon
  document.addEventListener("click", function (e) {
    var el = e.target.closest("[data-element-id]");
    if (!el) return;
    var payload = JSON.stringify({
      portfolio_id: {{.PortfolioID}},
      element_id: el.getAttribute("data-element-id"),
      element_type: el.getAttribute("data-element-type") || "link"
    });
    try { navigator.sendBeacon({{.TrackURL}}, payload); } catch (err) { /* ignored */ }
  });
  {{end}}
})();
</script>
</body>
</html>
`
