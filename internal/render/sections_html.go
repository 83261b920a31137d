package render

// Markup for every section kind. Sections that render a placeholder when
// empty keep their heading so the visitor sees what is missing; purely
// decorative sections are handled before template execution and never
// reach their define block with an empty list.
const sectionsHTML = `
{{define "header"}}
<header id="section-header" class="{{.HeaderClass}}">
  {{if .Title}}<h1 data-element-id="header-title" class="header-title">{{.Title}}</h1>
  {{else}}<h1 class="header-title placeholder">Your Name</h1>{{end}}
  {{if .Subtitle}}<p class="header-subtitle">{{.Subtitle}}</p>{{end}}
</header>
{{end}}

{{define "about"}}
<section id="section-about" class="{{.SectionClass}}">
  <h2 class="section-title">About</h2>
  {{if .Bio}}<div class="about-bio">{{.Bio}}</div>
  {{else}}<p class="placeholder">No bio available. Add your bio to tell visitors about yourself.</p>{{end}}
</section>
{{end}}

{{define "about_me_card"}}
<section id="section-about_me_card" class="{{.SectionClass}}">
  <div class="{{.CardClass}} about-me-card">
    {{if .Image}}<img src="{{.Image}}" alt="{{.Name}}" class="about-me-photo">{{end}}
    {{if .Name}}<h3>{{.Name}}</h3>{{end}}
    {{if .Title}}<p class="about-me-title">{{.Title}}</p>{{end}}
    {{if .Bio}}<p class="about-me-bio">{{.Bio}}</p>
    {{else if not .Name}}<p class="placeholder">No details yet. Introduce yourself here.</p>{{end}}
    <div class="about-me-links">
      {{if .LinkedIn}}<a href="{{.LinkedIn}}" data-element-id="aboutme-linkedin" data-element-type="link">LinkedIn</a>{{end}}
      {{if .Github}}<a href="{{.Github}}" data-element-id="aboutme-github" data-element-type="link">GitHub</a>{{end}}
      {{if .Website}}<a href="{{.Website}}" data-element-id="aboutme-website" data-element-type="link">Website</a>{{end}}
      {{if .Email}}<a href="mailto:{{.Email}}" data-element-id="aboutme-email" data-element-type="link">Email</a>{{end}}
    </div>
  </div>
</section>
{{end}}

{{define "skills"}}
<section id="section-skills" class="{{.SectionClass}}">
  <h2 class="section-title">Skills</h2>
  {{if .Skills}}
  <div class="skills-list">
    {{range .Skills}}<span class="{{$.SkillClass}}" title="{{.}}">{{.}}</span>{{end}}
  </div>
  {{else}}<p class="placeholder">No skills to display. Add your skills to showcase your expertise.</p>{{end}}
</section>
{{end}}

{{define "skills_cloud"}}
<section id="section-skills_cloud" class="{{.SectionClass}} skills-cloud skills-cloud-{{.Mode}}">
  {{range $i, $s := .Skills}}<span class="{{$.SkillClass}} cloud-size-{{mod $i 3}}">{{$s}}</span>{{end}}
</section>
{{end}}

{{define "projects"}}
<section id="section-projects" class="{{.SectionClass}}">
  <h2 class="section-title">Projects</h2>
  {{if .Projects}}
  <div class="project-grid">
    {{range .Projects}}
    <article class="{{$.CardClass}} project-card">
      {{if .Image}}<img src="{{.Image}}" alt="{{.Title}}" class="project-image">{{end}}
      <h3>{{.Title}}</h3>
      {{if .ShortDescription}}<p>{{.ShortDescription}}</p>{{else}}<p>{{.Description}}</p>{{end}}
      {{if .Technologies}}
      <div class="project-tags">{{range .Technologies}}<span class="tag">{{.}}</span>{{end}}</div>
      {{end}}
      <div class="project-links">
        {{if .GithubURL}}<a href="{{.GithubURL}}" data-element-id="project-{{.ID}}-github" data-element-type="project">Code</a>{{end}}
        {{if .LiveURL}}<a href="{{.LiveURL}}" data-element-id="project-{{.ID}}-live" data-element-type="project">Live</a>{{end}}
      </div>
    </article>
    {{end}}
  </div>
  {{else}}<p class="placeholder">No projects to display. Link your projects to showcase your work.</p>{{end}}
</section>
{{end}}

{{define "blog"}}
<section id="section-blog" class="{{.SectionClass}}">
  <h2 class="section-title">Blog</h2>
  {{if .Posts}}
  <div class="blog-list">
    {{range .Posts}}
    <article class="{{$.CardClass}} blog-card">
      {{if .FeaturedImage}}<img src="{{.FeaturedImage}}" alt="{{.Title}}" class="blog-image">{{end}}
      <h3>{{.Title}}</h3>
      {{if .Excerpt}}<p>{{.Excerpt}}</p>{{end}}
      {{if .PublishedDate}}<time>{{.PublishedDate}}</time>{{end}}
    </article>
    {{end}}
  </div>
  {{else}}<p class="placeholder">No posts yet. Publish a blog post to share your writing.</p>{{end}}
</section>
{{end}}

{{define "blog_preview_grid"}}
<section id="section-blog_preview_grid" class="{{.SectionClass}} blog-preview-grid">
  {{range .Posts}}
  <a class="{{$.CardClass}} blog-preview" data-element-id="blogpreview-{{.ID}}" data-element-type="link">
    <h4>{{.Title}}</h4>
    {{if .Excerpt}}<p>{{.Excerpt}}</p>{{end}}
  </a>
  {{end}}
</section>
{{end}}

{{define "contact"}}
<section id="section-contact" class="{{.SectionClass}}">
  <h2 class="section-title">Contact</h2>
  {{if .Empty}}
  <p class="placeholder">No contact details yet. Add an email or social links so visitors can reach you.</p>
  {{else}}
  <ul class="contact-list">
    {{if .Email}}<li><a href="mailto:{{.Email}}" data-element-id="contact-email" data-element-type="link">{{.Email}}</a></li>{{end}}
    {{if .Phone}}<li>{{.Phone}}</li>{{end}}
    {{if .Location}}<li>{{.Location}}</li>{{end}}
    {{if .Social.LinkedIn}}<li><a href="{{.Social.LinkedIn}}" data-element-id="contact-linkedin" data-element-type="link">LinkedIn</a></li>{{end}}
    {{if .Social.Github}}<li><a href="{{.Social.Github}}" data-element-id="contact-github" data-element-type="link">GitHub</a></li>{{end}}
    {{if .Social.Website}}<li><a href="{{.Social.Website}}" data-element-id="contact-website" data-element-type="link">Website</a></li>{{end}}
  </ul>
  {{end}}
</section>
{{end}}

{{define "contact_form"}}
<section id="section-contact_form" class="{{.SectionClass}}">
  <h2 class="section-title">{{if .Heading}}{{.Heading}}{{else}}Get in touch{{end}}</h2>
  {{if .Email}}
  <form class="contact-form" action="mailto:{{.Email}}" method="post" enctype="text/plain">
    <input type="text" name="name" placeholder="Your name" required>
    <input type="email" name="email" placeholder="Your email" required>
    <textarea name="message" placeholder="Message" required></textarea>
    <button type="submit" data-element-id="contactform-submit" data-element-type="button">Send</button>
  </form>
  {{else}}<p class="placeholder">No contact email configured for this form.</p>{{end}}
</section>
{{end}}

{{define "experience_timeline"}}
<section id="section-experience_timeline" class="{{.SectionClass}} experience-timeline">
  <h2 class="section-title">Experience</h2>
  <ol class="timeline">
    {{range .Entries}}
    <li class="timeline-entry">
      <h3>{{.Title}}{{if and .Title .Company}} &middot; {{end}}{{.Company}}</h3>
      <p class="timeline-period">{{.StartDate}}{{if .EndDate}} &ndash; {{.EndDate}}{{else if .StartDate}} &ndash; Present{{end}}{{if .Location}} &middot; {{.Location}}{{end}}</p>
      {{if .Summary}}<p>{{.Summary}}</p>{{end}}
    </li>
    {{end}}
  </ol>
</section>
{{end}}

{{define "hero_banner"}}
<section id="section-hero_banner" class="{{.SectionClass}} hero-banner"{{if .BackgroundImage}} style="background-image: url('{{.BackgroundImage}}')"{{end}}>
  {{if .Title}}<h1 class="hero-title">{{.Title}}</h1>
  {{else}}<h1 class="hero-title placeholder">Welcome</h1>{{end}}
  {{if .Subtitle}}<p class="hero-subtitle">{{.Subtitle}}</p>{{end}}
  {{if .Buttons}}
  <div class="hero-cta">
    {{range .Buttons}}<a class="cta cta-{{.Variant}}" href="{{.URL}}" data-element-id="hero-cta" data-element-type="button">{{.Text}}</a>{{end}}
  </div>
  {{end}}
</section>
{{end}}

{{define "services_section"}}
<section id="section-services_section" class="{{.SectionClass}} services">
  <h2 class="section-title">Services</h2>
  <div class="service-grid">
    {{range .Services}}
    <div class="{{$.CardClass}} service-card">
      {{if .Icon}}<span class="service-icon">{{.Icon}}</span>{{end}}
      <h3>{{.Title}}</h3>
      {{if .Description}}<p>{{.Description}}</p>{{end}}
    </div>
    {{end}}
  </div>
</section>
{{end}}

{{define "achievements_counters"}}
<section id="section-achievements_counters" class="{{.SectionClass}} counters">
  <div class="counter-grid">
    {{range .Counters}}
    <div class="counter" data-counter-target="{{.Value}}" data-counter-duration="2000" data-counter-steps="60">
      <span class="counter-value">{{.Prefix}}0{{.Suffix}}</span>
      <span class="counter-label">{{.Label}}</span>
    </div>
    {{end}}
  </div>
</section>
{{end}}

{{define "testimonials_carousel"}}
<section id="section-testimonials_carousel" class="{{.SectionClass}} testimonials">
  <h2 class="section-title">Testimonials</h2>
  <div class="carousel" data-carousel>
    {{range $i, $t := .Testimonials}}
    <figure class="{{$.CardClass}} testimonial{{if $i}} hidden{{end}}">
      <blockquote>{{$t.Quote}}</blockquote>
      <figcaption>
        {{if $t.Image}}<img src="{{$t.Image}}" alt="{{$t.Name}}">{{end}}
        {{$t.Name}}{{if $t.Role}}, {{$t.Role}}{{end}}{{if $t.Company}} @ {{$t.Company}}{{end}}
      </figcaption>
    </figure>
    {{end}}
    <button class="carousel-prev" data-element-id="testimonials-prev" data-element-type="button">&lsaquo;</button>
    <button class="carousel-next" data-element-id="testimonials-next" data-element-type="button">&rsaquo;</button>
  </div>
</section>
{{end}}

{{define "footer"}}
<footer id="section-footer" class="{{.SectionClass}} footer">
  {{if .Links}}
  <nav class="footer-links">
    {{range .Links}}<a href="{{.URL}}" data-element-id="footer-link" data-element-type="link">{{.Text}}</a>{{end}}
  </nav>
  {{end}}
  <div class="footer-social">
    {{if .LinkedIn}}<a href="{{.LinkedIn}}" data-element-id="footer-linkedin" data-element-type="link">LinkedIn</a>{{end}}
    {{if .Github}}<a href="{{.Github}}" data-element-id="footer-github" data-element-type="link">GitHub</a>{{end}}
  </div>
  <p class="footer-copyright">{{if .Copyright}}{{.Copyright}}{{else}}&copy; All rights reserved.{{end}}</p>
</footer>
{{end}}

{{define "error_card"}}
<section class="{{.SectionClass}} section-error">
  <div class="{{.CardClass}} error-card">
    <h3>Error in {{.Name}}</h3>
    <p>This section could not be displayed.</p>
  </div>
</section>
{{end}}
`
