package export

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portfoliohub/internal/auth"
	"portfoliohub/internal/portfolio"
	"portfoliohub/pkg/models"
)

type Handler struct {
	Repo       *Repo
	Portfolios *portfolio.Repo
}

func NewHandler(repo *Repo, portfolios *portfolio.Repo) *Handler {
	return &Handler{Repo: repo, Portfolios: portfolios}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/exports", h.create)
	rg.GET("/exports", h.list)
	rg.GET("/exports/:id", h.status)
	rg.GET("/exports/:id/download", h.download)
}

type createReq struct {
	PortfolioID int64  `json:"portfolio_id"`
	ExportType  string `json:"export_type"`
}

func (h *Handler) create(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.PortfolioID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "portfolio_id required"})
		return
	}

	exportType := strings.ToLower(strings.TrimSpace(req.ExportType))
	if exportType == "" {
		exportType = models.ExportTypeHTML
	}
	if exportType != models.ExportTypeHTML && exportType != models.ExportTypeZIP {
		c.JSON(http.StatusBadRequest, gin.H{"error": "export_type must be html or zip"})
		return
	}

	p, err := h.Portfolios.GetOwned(c.Request.Context(), req.PortfolioID, claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "portfolio not found"})
		return
	}

	job := &models.ExportJob{
		UserID:      claims.UserID,
		PortfolioID: req.PortfolioID,
		ExportType:  exportType,
	}
	if err := h.Repo.Create(c.Request.Context(), job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusAccepted, job)
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	jobs, err := h.Repo.ListByUser(c.Request.Context(), claims.UserID, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(jobs), "items": jobs})
}

func (h *Handler) status(c *gin.Context) {
	job := h.owned(c)
	if job == nil {
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) download(c *gin.Context) {
	job := h.owned(c)
	if job == nil {
		return
	}
	if job.Status != models.ExportStatusCompleted || job.FilePath == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "export not ready", "status": job.Status})
		return
	}
	c.FileAttachment(job.FilePath, "portfolio-"+job.ID+"."+job.ExportType)
}

func (h *Handler) owned(c *gin.Context) *models.ExportJob {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return nil
	}

	job, err := h.Repo.Get(c.Request.Context(), id, claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return nil
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return nil
	}
	return job
}
