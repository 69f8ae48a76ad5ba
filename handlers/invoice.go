package handlers

import (
	"net/http"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/services"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	Service *services.InvoiceService
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	list, err := h.Service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": list})
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	inv, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req models.InvoiceInput
	if !bindJSON(c, &req) {
		return
	}
	inv, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req models.InvoiceInput
	if !bindJSON(c, &req) {
		return
	}
	inv, err := h.Service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted"})
}
