package ai

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
	Generator  Generator
	Portfolios *portfolio.Repo
}

func NewHandler(gen Generator, portfolios *portfolio.Repo) *Handler {
	return &Handler{Generator: gen, Portfolios: portfolios}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/portfolios/:id/generate-content", h.generate)
}

type generateReq struct {
	ComponentType string `json:"component_type"`
	ComponentID   int64  `json:"component_id"`
	Resume        Resume `json:"resume"`
	Apply         bool   `json:"apply"`
}

// generate produces content for one component type. With apply=true and
// a component_id the generated content is written to that component;
// otherwise the caller decides what to do with it.
func (h *Handler) generate(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return
	}

	p, err := h.Portfolios.GetOwned(c.Request.Context(), id, claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if !models.IsComponentType(req.ComponentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown component_type"})
		return
	}

	generated, err := h.Generator.GenerateComponent(c.Request.Context(), req.ComponentType, req.Resume)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
		return
	}

	if req.Apply && req.ComponentID > 0 {
		comp, err := h.Portfolios.GetComponent(c.Request.Context(), p.ID, req.ComponentID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load component failed"})
			return
		}
		if comp == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "component not found"})
			return
		}
		comp.Content = generated
		if err := h.Portfolios.UpdateComponent(c.Request.Context(), comp); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "apply failed"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"component_type": req.ComponentType,
		"content":        generated,
	})
}
