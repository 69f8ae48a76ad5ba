package handlers

import (
	"net/http"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	Catalog *services.Catalog
}

type classifyRequest struct {
	Types []string `json:"types" binding:"required"`
}

type classification struct {
	Type      string        `json:"type"`
	Bucket    models.Bucket `json:"bucket"`
	Income    bool          `json:"income"`
	Canonical string        `json:"canonical,omitempty"`
}

// ListCategories returns the type catalog grouped by bucket.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	groups := make([]gin.H, 0, len(models.Buckets))
	for _, b := range models.Buckets {
		groups = append(groups, gin.H{
			"bucket": b,
			"income": b.Income(),
			"types":  h.Catalog.Types(b),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"version": h.Catalog.Version(),
		"buckets": groups,
		"legacy":  h.Catalog.Legacy(),
	})
}

func (h *CategoryHandler) Classify(c *gin.Context) {
	var req classifyRequest
	if !bindJSON(c, &req) {
		return
	}
	out := make([]classification, 0, len(req.Types))
	for _, t := range req.Types {
		b := h.Catalog.Classify(t)
		canonical, _ := h.Catalog.Canonical(t)
		out = append(out, classification{Type: t, Bucket: b, Income: b.Income(), Canonical: canonical})
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}
