package handlers

import (
	"net/http"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/services"

	"github.com/gin-gonic/gin"
)

// BudgetHandler serves RAB documents.
type BudgetHandler struct {
	Service *services.BudgetService
}

func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	list, err := h.Service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budgets": list})
}

func (h *BudgetHandler) GetBudget(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req models.BudgetInput
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req models.BudgetInput
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BudgetHandler) UpdateBudgetStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req models.BudgetStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Service.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted"})
}
