package portfolio

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfoliohub/internal/auth"
	"portfoliohub/internal/content"
	"portfoliohub/internal/preview"
	"portfoliohub/internal/render"
	"portfoliohub/pkg/models"
)

const maxPhotoSize = 5 << 20 // 5 MB

// ProjectSource supplies a user's standalone projects for merging into
// empty project components at render time.
type ProjectSource interface {
	ListForUser(ctx context.Context, userID string) ([]models.Project, error)
}

// BlogSource supplies a user's published blog posts for the same merge.
type BlogSource interface {
	ListPublishedForUser(ctx context.Context, userID string) ([]models.BlogPost, error)
}

// ViewSink records public page views. Recording is fire-and-forget:
// a failed insert never blocks or fails the page.
type ViewSink interface {
	RecordView(ctx context.Context, v *models.PortfolioView) error
}

type Handler struct {
	Repo     *Repo
	Hub      *preview.Hub
	Renderer *render.Renderer
	Projects ProjectSource
	Blogs    BlogSource
	Views    ViewSink
	MediaDir string
}

func NewHandler(repo *Repo, hub *preview.Hub, renderer *render.Renderer, projects ProjectSource, blogs BlogSource, views ViewSink, mediaDir string) *Handler {
	return &Handler{
		Repo:     repo,
		Hub:      hub,
		Renderer: renderer,
		Projects: projects,
		Blogs:    blogs,
		Views:    views,
		MediaDir: mediaDir,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/portfolios", h.list)
	rg.POST("/portfolios", h.create)
	rg.GET("/portfolios/:id", h.get)
	rg.PUT("/portfolios/:id", h.update)
	rg.DELETE("/portfolios/:id", h.remove)
	rg.POST("/portfolios/:id/publish", h.publish)
	rg.POST("/portfolios/:id/unpublish", h.unpublish)
	rg.POST("/portfolios/:id/photo", h.uploadPhoto)
	rg.GET("/portfolios/:id/preview", h.ownerPreview)
	rg.GET("/templates", h.templates)
	rg.GET("/dashboard", h.dashboard)

	rg.GET("/portfolios/:id/components", h.listComponents)
	rg.POST("/portfolios/:id/components", h.createComponent)
	rg.PUT("/portfolios/:id/components/reorder", h.reorderComponents)
	rg.PUT("/portfolios/:id/components/:component_id", h.updateComponent)
	rg.DELETE("/portfolios/:id/components/:component_id", h.removeComponent)
	rg.PUT("/portfolios/:id/components/:component_id/visibility", h.setVisibility)
}

// RegisterPublicRoutes mounts the unauthenticated public portfolio page.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/p/:slug", h.publicView)
}

type portfolioReq struct {
	Title          string         `json:"title"`
	TemplateID     *int64         `json:"template"`
	TemplateType   string         `json:"template_type"`
	CustomSettings map[string]any `json:"custom_settings"`
	SEOTitle       string         `json:"seo_title"`
	SEODescription string         `json:"seo_description"`
	SEOKeywords    string         `json:"seo_keywords"`
}

func (h *Handler) create(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req portfolioReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}

	p := &models.Portfolio{
		UserID:         claims.UserID,
		Title:          req.Title,
		TemplateID:     req.TemplateID,
		TemplateType:   models.NormalizeSkin(req.TemplateType),
		CustomSettings: req.CustomSettings,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
		SEOKeywords:    req.SEOKeywords,
	}
	if p.CustomSettings == nil {
		p.CustomSettings = map[string]any{}
	}
	if err := h.Repo.Create(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	p.Components = []models.Component{}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	items, err := h.Repo.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(items), "items": items})
}

func (h *Handler) get(c *gin.Context) {
	p := h.owned(c)
	if p == nil {
		return
	}

	comps, err := h.Repo.ListComponents(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load components failed"})
		return
	}
	p.Components = comps
	c.JSON(http.StatusOK, p)
}

func (h *Handler) update(c *gin.Context) {
	p := h.owned(c)
	if p == nil {
		return
	}

	var req portfolioReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		p.Title = title
	}
	if req.TemplateType != "" {
		p.TemplateType = models.NormalizeSkin(req.TemplateType)
	}
	if req.TemplateID != nil {
		p.TemplateID = req.TemplateID
	}
	if req.CustomSettings != nil {
		p.CustomSettings = req.CustomSettings
	}
	if req.SEOTitle != "" {
		p.SEOTitle = req.SEOTitle
	}
	if req.SEODescription != "" {
		p.SEODescription = req.SEODescription
	}
	if req.SEOKeywords != "" {
		p.SEOKeywords = req.SEOKeywords
	}

	if err := h.Repo.Update(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	h.broadcast(preview.PortfolioEvent(preview.EventPortfolioUpdated, p.ID))
	c.JSON(http.StatusOK, p)
}

func (h *Handler) remove(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.Repo.Delete(c.Request.Context(), id, claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *Handler) publish(c *gin.Context) {
	p := h.owned(c)
	if p == nil {
		return
	}

	slug := p.Slug
	if slug == "" {
		var err error
		slug, err = h.Repo.uniqueSlug(c.Request.Context(), p.Title, p.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "publish failed"})
			return
		}
	}

	if err := h.Repo.SetPublished(c.Request.Context(), p.ID, true, slug); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "publish failed"})
		return
	}
	h.broadcast(preview.PortfolioEvent(preview.EventPortfolioUpdated, p.ID))
	c.JSON(http.StatusOK, gin.H{"is_published": true, "slug": slug, "url": "/p/" + slug})
}

func (h *Handler) unpublish(c *gin.Context) {
	p := h.owned(c)
	if p == nil {
		return
	}
	if err := h.Repo.SetPublished(c.Request.Context(), p.ID, false, ""); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unpublish failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_published": false})
}

func (h *Handler) uploadPhoto(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	p := h.owned(c)
	if p == nil {
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file required"})
		return
	}
	if file.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo must be 5MB or smaller"})
		return
	}
	ctype := file.Header.Get("Content-Type")
	if !strings.HasPrefix(ctype, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo must be an image"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	dst := filepath.Join(h.MediaDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save photo failed"})
		return
	}

	url := "/media/" + name
	if err := h.Repo.SetProfilePhoto(c.Request.Context(), p.ID, claims.UserID, url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save photo failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile_photo_url": url})
}

func (h *Handler) templates(c *gin.Context) {
	items, err := h.Repo.ListTemplates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(items), "items": items})
}

func (h *Handler) dashboard(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	stats, err := h.Repo.Dashboard(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard failed"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

type componentReq struct {
	ComponentType string         `json:"component_type"`
	Content       map[string]any `json:"content"`
	IsVisible     *bool          `json:"is_visible"`
}

func (h *Handler) listComponents(c *gin.Context) {
	p := h.owned(c)
	if p == nil {
		return
	}
	comps, err := h.Repo.ListComponents(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(comps), "items": comps})
}

func (h *Handler) createComponent(c *gin.Context) {
	p := h.owned(c)
	if p == nil {
		return
	}

	var req componentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if !models.IsComponentType(req.ComponentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown component_type"})
		return
	}

	comp := &models.Component{
		PortfolioID:   p.ID,
		ComponentType: req.ComponentType,
		IsVisible:     true,
		Content:       req.Content,
	}
	if req.IsVisible != nil {
		comp.IsVisible = *req.IsVisible
	}
	if comp.Content == nil {
		comp.Content = map[string]any{}
	}

	if err := h.Repo.CreateComponent(c.Request.Context(), comp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	h.broadcast(preview.ComponentEvent(preview.EventComponentUpdated, p.ID, comp.ID))
	c.JSON(http.StatusCreated, comp)
}

func (h *Handler) updateComponent(c *gin.Context) {
	p := h.owned(c)
	if p == nil {
		return
	}
	componentID, ok := parseID(c, "component_id")
	if !ok {
		return
	}

	comp, err := h.Repo.GetComponent(c.Request.Context(), p.ID, componentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}
	if comp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var req componentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.ComponentType != "" {
		if !models.IsComponentType(req.ComponentType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown component_type"})
			return
		}
		comp.ComponentType = req.ComponentType
	}
	if req.Content != nil {
		comp.Content = req.Content
	}
	if req.IsVisible != nil {
		comp.IsVisible = *req.IsVisible
	}

	if err := h.Repo.UpdateComponent(c.Request.Context(), comp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	h.broadcast(preview.ComponentEvent(preview.EventComponentUpdated, p.ID, comp.ID))
	c.JSON(http.StatusOK, comp)
}

func (h *Handler) removeComponent(c *gin.Context) {
	p := h.owned(c)
	if p == nil {
		return
	}
	componentID, ok := parseID(c, "component_id")
	if !ok {
		return
	}

	deleted, err := h.Repo.DeleteComponent(c.Request.Context(), p.ID, componentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	h.broadcast(preview.ComponentEvent(preview.EventComponentDeleted, p.ID, componentID))
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type reorderReq struct {
	Orders []struct {
		ID    int64 `json:"id"`
		Order int   `json:"order"`
	} `json:"orders"`
}

func (h *Handler) reorderComponents(c *gin.Context) {
	p := h.owned(c)
	if p == nil {
		return
	}

	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if len(req.Orders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orders required"})
		return
	}

	orders := make([]models.Component, 0, len(req.Orders))
	for _, o := range req.Orders {
		orders = append(orders, models.Component{ID: o.ID, Order: o.Order})
	}
	if err := h.Repo.UpdateOrders(c.Request.Context(), p.ID, orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reorder failed"})
		return
	}
	h.broadcast(preview.PortfolioEvent(preview.EventOrderChanged, p.ID))
	c.JSON(http.StatusOK, gin.H{"message": "reordered"})
}

type visibilityReq struct {
	IsVisible *bool `json:"is_visible"`
}

func (h *Handler) setVisibility(c *gin.Context) {
	p := h.owned(c)
	if p == nil {
		return
	}
	componentID, ok := parseID(c, "component_id")
	if !ok {
		return
	}

	var req visibilityReq
	if err := c.ShouldBindJSON(&req); err != nil || req.IsVisible == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_visible required"})
		return
	}

	updated, err := h.Repo.SetComponentVisibility(c.Request.Context(), p.ID, componentID, *req.IsVisible)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	h.broadcast(preview.ComponentEvent(preview.EventComponentUpdated, p.ID, componentID))
	c.JSON(http.StatusOK, gin.H{"is_visible": *req.IsVisible})
}

// ownerPreview renders the current draft for its owner, published or not.
func (h *Handler) ownerPreview(c *gin.Context) {
	p := h.owned(c)
	if p == nil {
		return
	}
	h.renderView(c, p, false)
}

func (h *Handler) publicView(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	p, err := h.Repo.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}
	if p == nil || !p.IsPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	h.renderView(c, p, true)
}

func (h *Handler) renderView(c *gin.Context, p *models.Portfolio, public bool) {
	ctx := c.Request.Context()
	comps, err := h.Repo.ListComponents(ctx, p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}
	p.Components = comps
	h.mergeLibraryContent(ctx, p)

	if public && h.Views != nil {
		v := &models.PortfolioView{
			PortfolioID: p.ID,
			IPAddress:   c.ClientIP(),
			UserAgent:   c.Request.UserAgent(),
			Referrer:    c.Request.Referer(),
		}
		go func() {
			_ = h.Views.RecordView(context.Background(), v)
		}()
	}

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, p)
		return
	}

	page, err := h.Renderer.RenderPage(p, p.CustomSettings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// BuildPage loads a portfolio with its components, merges library
// content and renders the standalone HTML document. Used by the export
// worker; the beacon script is disabled for exported pages.
func (h *Handler) BuildPage(ctx context.Context, portfolioID int64) (string, *models.Portfolio, error) {
	p, err := h.Repo.GetByID(ctx, portfolioID)
	if err != nil {
		return "", nil, err
	}
	if p == nil {
		return "", nil, fmt.Errorf("portfolio %d not found", portfolioID)
	}
	comps, err := h.Repo.ListComponents(ctx, p.ID)
	if err != nil {
		return "", nil, err
	}
	p.Components = comps
	h.mergeLibraryContent(ctx, p)

	exportRenderer := render.Renderer{}
	page, err := exportRenderer.RenderPage(p, p.CustomSettings)
	if err != nil {
		return "", nil, err
	}
	return page, p, nil
}

// mergeLibraryContent overwrites project and blog component content with
// the owner's standalone records. Hand-authored entries survive only when
// the owner's collection is empty or unavailable.
func (h *Handler) mergeLibraryContent(ctx context.Context, p *models.Portfolio) {
	var (
		cards       []content.Card
		cardsLoaded bool
		posts       []content.Post
		postsLoaded bool
	)

	for i := range p.Components {
		comp := &p.Components[i]
		switch comp.ComponentType {
		case models.TypeProjects, models.TypeProjectGrid:
			if h.Projects == nil {
				continue
			}
			if !cardsLoaded {
				cardsLoaded = true
				if items, err := h.Projects.ListForUser(ctx, p.UserID); err == nil {
					cards = projectCards(items)
				}
			}
			if len(cards) == 0 {
				continue
			}
			if comp.Content == nil {
				comp.Content = map[string]any{}
			}
			comp.Content["projects"] = cards
		case models.TypeBlog, models.TypeBlogPreviewGrid:
			if h.Blogs == nil {
				continue
			}
			if !postsLoaded {
				postsLoaded = true
				if items, err := h.Blogs.ListPublishedForUser(ctx, p.UserID); err == nil {
					posts = blogPosts(items)
				}
			}
			if len(posts) == 0 {
				continue
			}
			if comp.Content == nil {
				comp.Content = map[string]any{}
			}
			comp.Content["posts"] = posts
		}
	}
}

func projectCards(items []models.Project) []content.Card {
	out := make([]content.Card, 0, len(items))
	for _, pr := range items {
		out = append(out, content.Card{
			ID:               pr.ID,
			Title:            pr.Title,
			Description:      pr.Description,
			ShortDescription: pr.ShortDescription,
			Image:            pr.Image,
			GithubURL:        pr.GithubURL,
			LiveURL:          pr.LiveURL,
			Technologies:     pr.Tags,
		})
	}
	return out
}

func blogPosts(items []models.BlogPost) []content.Post {
	out := make([]content.Post, 0, len(items))
	for _, bp := range items {
		p := content.Post{
			ID:            bp.ID,
			Title:         bp.Title,
			Excerpt:       bp.Excerpt,
			Content:       bp.ContentMarkdown,
			FeaturedImage: bp.FeaturedImage,
			Published:     bp.Published,
		}
		if bp.PublishedDate != nil {
			p.PublishedDate = bp.PublishedDate.Format("2006-01-02")
		}
		out = append(out, p)
	}
	return out
}

// owned loads the :id portfolio and enforces ownership, writing the
// error response itself when it returns nil.
func (h *Handler) owned(c *gin.Context) *models.Portfolio {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	p, err := h.Repo.GetOwned(c.Request.Context(), id, claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return nil
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return nil
	}
	return p
}

func (h *Handler) broadcast(ev preview.Event) {
	if h.Hub != nil {
		go h.Hub.Broadcast(ev)
	}
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(param)), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": param + " must be a positive integer"})
		return 0, false
	}
	return id, true
}
