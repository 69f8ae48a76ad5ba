package handlers

import (
	"net/http"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/services"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	Service *services.EmployeeService
}

func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	list, err := h.Service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": list})
}

func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	e, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req models.EmployeeInput
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req models.EmployeeInput
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.Service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}

func (h *EmployeeHandler) GetReport(c *gin.Context) {
	r, err := h.Service.Report(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
