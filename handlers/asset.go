package handlers

import (
	"net/http"
	"time"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/services"

	"github.com/gin-gonic/gin"
)

type AssetHandler struct {
	Service *services.AssetService
}

func (h *AssetHandler) ListAssets(c *gin.Context) {
	list, err := h.Service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": list})
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	a, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// GetDepreciation accepts ?as_of=YYYY-MM-DD, defaulting to today.
func (h *AssetHandler) GetDepreciation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var asOf time.Time
	if raw := c.Query("as_of"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "as_of must be YYYY-MM-DD"})
			return
		}
		asOf = t
	}
	view, err := h.Service.Depreciation(c.Request.Context(), id, asOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req models.AssetInput
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req models.AssetInput
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.Service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted"})
}
