package handlers

import (
	"net/http"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/services"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	Service *services.TransactionService
}

func NewTransactionHandler(svc *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{Service: svc}
}

// ListTransactions returns the cashflow page for ?month=&year=
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	month, year, ok := queryPeriod(c)
	if !ok {
		return
	}
	list, err := h.Service.List(c.Request.Context(), month, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	t, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req models.TransactionInput
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.Service.Add(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req models.TransactionInput
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.Service.Edit(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "Transaction deleted",
		"payable_reverse": h.Service.ReverseOnDelete(),
	})
}

func (h *TransactionHandler) GetSummary(c *gin.Context) {
	month, year, ok := queryPeriod(c)
	if !ok {
		return
	}
	sum, err := h.Service.Summary(c.Request.Context(), month, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *TransactionHandler) GetPayable(c *gin.Context) {
	p, err := h.Service.Payable(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
