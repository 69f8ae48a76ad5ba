package handlers

import (
	"net/http"
	"strconv"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/services"

	"github.com/gin-gonic/gin"
)

type PayrollHandler struct {
	Service *services.PayrollService
}

// ListPayroll accepts ?employee_id=&period=YYYY-MM&year=&status=
func (h *PayrollHandler) ListPayroll(c *gin.Context) {
	var f models.PayrollFilter
	if raw := c.Query("employee_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee_id"})
			return
		}
		f.EmployeeID = id
	}
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}
	f.Year = year
	f.Period = c.Query("period")
	f.Status = models.PayrollStatus(c.Query("status"))

	sum, err := h.Service.Summary(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *PayrollHandler) GetPayroll(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PayrollHandler) CreatePayroll(c *gin.Context) {
	var req models.PayrollInput
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PayrollHandler) UpdatePayroll(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req models.PayrollUpdate
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PayrollHandler) DeletePayroll(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payroll slip deleted"})
}
