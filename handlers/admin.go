package handlers

import (
	"net/http"

	"github.com/daniarfurniture/finance-api/migration"
	"github.com/daniarfurniture/finance-api/services"
	"github.com/daniarfurniture/finance-api/store"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes data maintenance jobs.
type AdminHandler struct {
	Store    store.Store
	Catalog  *services.Catalog
	Notifier services.Notifier
}

// NormalizeTypes rewrites legacy type spellings. ?apply=false only counts.
func (h *AdminHandler) NormalizeTypes(c *gin.Context) {
	apply := c.DefaultQuery("apply", "true") != "false"
	results, err := migration.NormalizeTypes(c.Request.Context(), h.Store, h.Catalog, apply)
	if err != nil {
		respondError(c, err)
		return
	}
	if apply && h.Notifier != nil {
		h.Notifier.Notify("transaction", "normalized", 0)
	}
	c.JSON(http.StatusOK, gin.H{"applied": apply, "renames": results})
}

func (h *AdminHandler) ReconcilePayable(c *gin.Context) {
	r, err := migration.ReconcilePayable(c.Request.Context(), h.Store, false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *AdminHandler) RebuildPayable(c *gin.Context) {
	r, err := migration.ReconcilePayable(c.Request.Context(), h.Store, true)
	if err != nil {
		respondError(c, err)
		return
	}
	if r.Applied && h.Notifier != nil {
		h.Notifier.Notify("payable", "rebuilt", 0)
	}
	c.JSON(http.StatusOK, r)
}
