package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"portfoliohub/internal/content"
	"portfoliohub/pkg/models"
)

// sectionFunc renders one component kind into markup. Empty required
// data yields either an explicit placeholder or nothing, depending on
// whether the section is informational or decorative; it never errors
// for missing data.
type sectionFunc func(c map[string]any, skin string, cfg map[string]any) (template.HTML, error)

var sectionFuncs = map[string]sectionFunc{
	models.TypeHeader:               renderHeader,
	models.TypeAbout:                renderAbout,
	models.TypeAboutMeCard:          renderAboutMeCard,
	models.TypeSkills:               renderSkills,
	models.TypeSkillsCloud:          renderSkillsCloud,
	models.TypeProjects:             renderProjects,
	models.TypeProjectGrid:          renderProjects, // same card layout, grid class differs via skin CSS
	models.TypeBlog:                 renderBlog,
	models.TypeBlogPreviewGrid:      renderBlogPreviewGrid,
	models.TypeContact:              renderContact,
	models.TypeContactForm:          renderContactForm,
	models.TypeExperienceTimeline:   renderExperienceTimeline,
	models.TypeHeroBanner:           renderHeroBanner,
	models.TypeServicesSection:      renderServices,
	models.TypeAchievementsCounters: renderCounters,
	models.TypeTestimonialsCarousel: renderTestimonials,
	models.TypeFooter:               renderFooter,
}

var sectionTmpl = template.Must(template.New("sections").Funcs(template.FuncMap{
	"mod": func(i, m int) int { return i % m },
}).Parse(sectionsHTML))

func execSection(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := sectionTmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

type sectionBase struct {
	SectionClass string
	CardClass    string
}

func base(skin string) sectionBase {
	cls := SkinClasses(skin)
	return sectionBase{SectionClass: cls.Section, CardClass: cls.Card}
}

func renderHeader(c map[string]any, skin string, _ map[string]any) (template.HTML, error) {
	data := struct {
		sectionBase
		HeaderClass     string
		Title, Subtitle string
	}{base(skin), SkinClasses(skin).Header, str(c["title"]), str(c["subtitle"])}
	return execSection("header", data)
}

func renderAbout(c map[string]any, skin string, _ map[string]any) (template.HTML, error) {
	bio := strings.TrimSpace(str(c["bio"]))
	data := struct {
		sectionBase
		Bio template.HTML
	}{base(skin), markdownHTML(bio)}
	return execSection("about", data)
}

func renderAboutMeCard(c map[string]any, skin string, _ map[string]any) (template.HTML, error) {
	social, _ := c["socialLinks"].(map[string]any)
	if social == nil {
		social, _ = c["social_links"].(map[string]any)
	}
	data := struct {
		sectionBase
		Name, Title, Bio, Image            string
		LinkedIn, Github, Email, Website   string
	}{
		base(skin),
		str(c["name"]), str(c["title"]), str(c["bio"]), str(c["image"]),
		content.URL(get(social, "linkedin")), content.URL(get(social, "github")),
		content.Email(get(social, "email")), content.URL(get(social, "website")),
	}
	return execSection("about_me_card", data)
}

func renderSkills(c map[string]any, skin string, _ map[string]any) (template.HTML, error) {
	data := struct {
		sectionBase
		SkillClass string
		Skills     []string
	}{base(skin), skillClass(skin), content.Skills(c["skills"])}
	return execSection("skills", data)
}

func renderSkillsCloud(c map[string]any, skin string, _ map[string]any) (template.HTML, error) {
	skills := content.Skills(c["skills"])
	if len(skills) == 0 {
		return "", nil
	}
	mode := str(c["displayMode"])
	if mode != "bars" {
		mode = "cloud"
	}
	data := struct {
		sectionBase
		SkillClass string
		Mode       string
		Skills     []string
	}{base(skin), skillClass(skin), mode, skills}
	return execSection("skills_cloud", data)
}

func renderProjects(c map[string]any, skin string, _ map[string]any) (template.HTML, error) {
	data := struct {
		sectionBase
		Projects []content.Card
	}{base(skin), asCards(c["projects"])}
	return execSection("projects", data)
}

func renderBlog(c map[string]any, skin string, _ map[string]any) (template.HTML, error) {
	data := struct {
		sectionBase
		Posts []content.Post
	}{base(skin), asPosts(c["posts"])}
	return execSection("blog", data)
}

func renderBlogPreviewGrid(c map[string]any, skin string, _ map[string]any) (template.HTML, error) {
	posts := asPosts(c["posts"])
	if len(posts) == 0 {
		return "", nil
	}
	data := struct {
		sectionBase
		Posts []content.Post
	}{base(skin), posts}
	return execSection("blog_preview_grid", data)
}

func renderContact(c map[string]any, skin string, _ map[string]any) (template.HTML, error) {
	info := content.ContactInfo(c)
	data := struct {
		sectionBase
		content.Contact
		Empty bool
	}{base(skin), info, info == (content.Contact{})}
	return execSection("contact", data)
}

func renderContactForm(c map[string]any, skin string, _ map[string]any) (template.HTML, error) {
	data := struct {
		sectionBase
		Heading, Email string
	}{base(skin), str(c["heading"]), content.Email(c["email"])}
	return execSection("contact_form", data)
}

type experienceEntry struct {
	Title, Company, Location    string
	StartDate, EndDate, Summary string
}

func renderExperienceTimeline(c map[string]any, skin string, _ map[string]any) (template.HTML, error) {
	list, _ := c["experiences"].([]any)
	entries := []experienceEntry{}
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		e := experienceEntry{
			Title:     str(m["title"]),
			Company:   str(m["company"]),
			Location:  str(m["location"]),
			StartDate: firstStr(m, "startDate", "start_date"),
			EndDate:   firstStr(m, "endDate", "end_date"),
			Summary:   str(m["description"]),
		}
		if e.Title == "" && e.Company == "" {
			continue
		}
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return "", nil
	}
	data := struct {
		sectionBase
		Entries []experienceEntry
	}{base(skin), entries}
	return execSection("experience_timeline", data)
}

func renderHeroBanner(c map[string]any, skin string, _ map[string]any) (template.HTML, error) {
	type cta struct{ Text, URL, Variant string }
	var buttons []cta
	if list, ok := c["ctaButtons"].([]any); ok {
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			b := cta{str(m["text"]), content.URL(m["url"]), str(m["variant"])}
			if b.Text == "" || b.URL == "" {
				continue
			}
			buttons = append(buttons, b)
		}
	}
	data := struct {
		sectionBase
		Title, Subtitle, BackgroundImage string
		Buttons                          []cta
	}{base(skin), str(c["title"]), str(c["subtitle"]), str(c["backgroundImage"]), buttons}
	return execSection("hero_banner", data)
}

func renderServices(c map[string]any, skin string, _ map[string]any) (template.HTML, error) {
	type service struct{ Title, Description, Icon string }
	var services []service
	if list, ok := c["services"].([]any); ok {
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			s := service{str(m["title"]), str(m["description"]), str(m["icon"])}
			if s.Title == "" {
				continue
			}
			services = append(services, s)
		}
	}
	if len(services) == 0 {
		return "", nil
	}
	data := struct {
		sectionBase
		Services []service
	}{base(skin), services}
	return execSection("services_section", data)
}

type counterEntry struct {
	Label, Prefix, Suffix string
	Value                 int64
}

func renderCounters(c map[string]any, skin string, _ map[string]any) (template.HTML, error) {
	list, _ := c["counters"].([]any)
	var counters []counterEntry
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		e := counterEntry{
			Label:  str(m["label"]),
			Prefix: str(m["prefix"]),
			Suffix: str(m["suffix"]),
			Value:  asInt(m["value"]),
		}
		if e.Label == "" {
			continue
		}
		counters = append(counters, e)
	}
	if len(counters) == 0 {
		return "", nil
	}
	data := struct {
		sectionBase
		Counters []counterEntry
	}{base(skin), counters}
	return execSection("achievements_counters", data)
}

func renderTestimonials(c map[string]any, skin string, _ map[string]any) (template.HTML, error) {
	type testimonial struct {
		Name, Role, Company, Quote, Image string
	}
	list, _ := c["testimonials"].([]any)
	var entries []testimonial
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		t := testimonial{
			Name:    str(m["name"]),
			Role:    str(m["role"]),
			Company: str(m["company"]),
			Quote:   str(m["content"]),
			Image:   str(m["image"]),
		}
		if t.Quote == "" {
			continue
		}
		entries = append(entries, t)
	}
	if len(entries) == 0 {
		return "", nil
	}
	data := struct {
		sectionBase
		Testimonials []testimonial
	}{base(skin), entries}
	return execSection("testimonials_carousel", data)
}

func renderFooter(c map[string]any, skin string, _ map[string]any) (template.HTML, error) {
	type link struct{ Text, URL string }
	var links []link
	if list, ok := c["links"].([]any); ok {
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			l := link{str(m["text"]), content.URL(m["url"])}
			if l.Text == "" || l.URL == "" {
				continue
			}
			links = append(links, l)
		}
	}
	social, _ := c["socialLinks"].(map[string]any)
	data := struct {
		sectionBase
		Copyright        string
		Links            []link
		LinkedIn, Github string
	}{
		base(skin),
		firstStr(c, "copyrightText", "copyright"),
		links,
		content.URL(get(social, "linkedin")),
		content.URL(get(social, "github")),
	}
	return execSection("footer", data)
}

// markdownHTML converts the small markdown subset bios use (headers,
// bold, italic, links, code) into markup. Input is escaped before any
// tag is introduced, so user text cannot inject HTML.
func markdownHTML(s string) template.HTML {
	if s == "" {
		return ""
	}
	out := template.HTMLEscapeString(s)

	out = mdH3.ReplaceAllString(out, "<h3>$1</h3>")
	out = mdH2.ReplaceAllString(out, "<h2>$1</h2>")
	out = mdH1.ReplaceAllString(out, "<h1>$1</h1>")
	out = mdCodeBlock.ReplaceAllString(out, "<pre><code>$1</code></pre>")
	out = mdBold.ReplaceAllString(out, "<strong>$1</strong>")
	out = mdItalic.ReplaceAllString(out, "<em>$1</em>")
	out = mdLink.ReplaceAllString(out, `<a href="$2" target="_blank" rel="noopener noreferrer">$1</a>`)
	out = mdCode.ReplaceAllString(out, "<code>$1</code>")
	out = strings.ReplaceAll(out, "\n\n", "</p><p>")
	out = strings.ReplaceAll(out, "\n", "<br>")

	return template.HTML("<p>" + out + "</p>")
}

var (
	mdH1        = regexp.MustCompile(`(?m)^# (.*)$`)
	mdH2        = regexp.MustCompile(`(?m)^## (.*)$`)
	mdH3        = regexp.MustCompile(`(?m)^### (.*)$`)
	mdBold      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	mdItalic    = regexp.MustCompile(`\*(.*?)\*`)
	mdLink      = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	mdCodeBlock = regexp.MustCompile("(?s)```(.*?)```")
	mdCode      = regexp.MustCompile("`([^`]+)`")
)

func str(v any) string {
	s, _ := v.(string)
	return s
}

func firstStr(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := str(m[k]); s != "" {
			return s
		}
	}
	return ""
}

func get(m map[string]any, key string) any {
	if m == nil {
		return nil
	}
	return m[key]
}

func asInt(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	}
	return 0
}

// asCards accepts either already-normalized []content.Card (the merge
// path) or raw []any (hand-authored content).
func asCards(v any) []content.Card {
	if cards, ok := v.([]content.Card); ok {
		return cards
	}
	return content.Projects(v)
}

func asPosts(v any) []content.Post {
	if posts, ok := v.([]content.Post); ok {
		return posts
	}
	return content.BlogPosts(v)
}
