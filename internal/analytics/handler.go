package analytics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"portfoliohub/internal/auth"
	"portfoliohub/pkg/models"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterTrackRoutes mounts the unauthenticated ingest endpoints the
// public page's beacon script posts to.
func (h *Handler) RegisterTrackRoutes(rg *gin.RouterGroup) {
	rg.POST("/track/view", h.trackView)
	rg.POST("/track/click", h.trackClick)
}

// RegisterRoutes mounts the owner-facing reporting endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/portfolios/:id/stats", h.stats)
	rg.GET("/portfolios/:id/stats/views", h.views)
	rg.GET("/portfolios/:id/stats/clicks", h.clicks)
}

type trackViewReq struct {
	PortfolioID int64 `json:"portfolio_id"`
	Duration    int   `json:"duration"`
}

// trackView always answers 204: analytics ingest must never break the
// page that reports it.
func (h *Handler) trackView(c *gin.Context) {
	var req trackViewReq
	if err := c.ShouldBindJSON(&req); err != nil || req.PortfolioID <= 0 {
		c.Status(http.StatusNoContent)
		return
	}

	v := &models.PortfolioView{
		PortfolioID: req.PortfolioID,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
		Referrer:    c.Request.Referer(),
		Duration:    req.Duration,
	}
	go func() {
		_ = h.Repo.RecordView(context.Background(), v)
	}()
	c.Status(http.StatusNoContent)
}

type trackClickReq struct {
	PortfolioID int64  `json:"portfolio_id"`
	ElementID   string `json:"element_id"`
	ElementType string `json:"element_type"`
}

func (h *Handler) trackClick(c *gin.Context) {
	var req trackClickReq
	if err := c.ShouldBindJSON(&req); err != nil || req.PortfolioID <= 0 || strings.TrimSpace(req.ElementID) == "" {
		c.Status(http.StatusNoContent)
		return
	}

	e := &models.ClickEvent{
		PortfolioID: req.PortfolioID,
		ElementID:   req.ElementID,
		ElementType: req.ElementType,
		IPAddress:   c.ClientIP(),
	}
	go func() {
		_ = h.Repo.RecordClick(context.Background(), e)
	}()
	c.Status(http.StatusNoContent)
}

func (h *Handler) stats(c *gin.Context) {
	portfolioID, since, ok := h.owned(c)
	if !ok {
		return
	}

	s, err := h.Repo.Stats(c.Request.Context(), portfolioID, since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats failed"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) views(c *gin.Context) {
	portfolioID, since, ok := h.owned(c)
	if !ok {
		return
	}

	daily, err := h.Repo.DailyViews(c.Request.Context(), portfolioID, since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "views failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": daily})
}

func (h *Handler) clicks(c *gin.Context) {
	portfolioID, since, ok := h.owned(c)
	if !ok {
		return
	}

	top, err := h.Repo.TopClicks(c.Request.Context(), portfolioID, since, parseInt(c.Query("limit"), 20))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "clicks failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"elements": top})
}

// owned parses :id and the ?days= window and enforces ownership, writing
// the error response itself on failure.
func (h *Handler) owned(c *gin.Context) (int64, time.Time, bool) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, time.Time{}, false
	}

	portfolioID, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || portfolioID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, time.Time{}, false
	}

	owner, err := h.Repo.OwnerOf(c.Request.Context(), portfolioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return 0, time.Time{}, false
	}
	if owner == "" || owner != claims.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, time.Time{}, false
	}

	days := parseInt(c.Query("days"), 30)
	if days <= 0 || days > 365 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return portfolioID, since, true
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
