package handlers

import (
	"net/http"

	"github.com/daniarfurniture/finance-api/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	Service *services.ReportService
}

func (h *ReportHandler) GetDashboard(c *gin.Context) {
	d, err := h.Service.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *ReportHandler) GetIncomeStatement(c *gin.Context) {
	month, year, ok := queryPeriod(c)
	if !ok {
		return
	}
	view, err := h.Service.IncomeStatement(c.Request.Context(), month, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ReportHandler) GetBalanceSheet(c *gin.Context) {
	month, year, ok := queryPeriod(c)
	if !ok {
		return
	}
	view, err := h.Service.BalanceSheet(c.Request.Context(), month, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
