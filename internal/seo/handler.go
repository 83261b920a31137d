package seo

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"portfoliohub/internal/auth"
	"portfoliohub/internal/portfolio"
	"portfoliohub/pkg/models"
)

type Handler struct {
	Portfolios *portfolio.Repo
}

func NewHandler(portfolios *portfolio.Repo) *Handler {
	return &Handler{Portfolios: portfolios}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/portfolios/:id/seo", h.analyze)
	rg.PUT("/portfolios/:id/seo", h.update)
	rg.GET("/portfolios/:id/seo/keywords", h.keywords)
}

func (h *Handler) analyze(c *gin.Context) {
	p := h.owned(c)
	if p == nil {
		return
	}
	c.JSON(http.StatusOK, Analyze(p))
}

type seoReq struct {
	SEOTitle       *string `json:"seo_title"`
	SEODescription *string `json:"seo_description"`
	SEOKeywords    *string `json:"seo_keywords"`
}

func (h *Handler) update(c *gin.Context) {
	p := h.owned(c)
	if p == nil {
		return
	}

	var req seoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if req.SEOTitle != nil {
		p.SEOTitle = strings.TrimSpace(*req.SEOTitle)
	}
	if req.SEODescription != nil {
		p.SEODescription = strings.TrimSpace(*req.SEODescription)
	}
	if req.SEOKeywords != nil {
		p.SEOKeywords = strings.TrimSpace(*req.SEOKeywords)
	}

	if err := h.Portfolios.Update(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, Analyze(p))
}

func (h *Handler) keywords(c *gin.Context) {
	p := h.owned(c)
	if p == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"keywords":    SuggestKeywords(p),
		"description": SuggestDescription(p),
	})
}

func (h *Handler) owned(c *gin.Context) *models.Portfolio {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}

	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return nil
	}

	p, err := h.Portfolios.GetOwned(c.Request.Context(), id, claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return nil
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return nil
	}

	comps, err := h.Portfolios.ListComponents(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return nil
	}
	p.Components = comps
	return p
}
