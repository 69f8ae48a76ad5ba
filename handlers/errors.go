package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/daniarfurniture/finance-api/middleware"
	"github.com/daniarfurniture/finance-api/services"
	"github.com/daniarfurniture/finance-api/utils"

	"github.com/gin-gonic/gin"
)

// respondError writes the status and body for a service error.
func respondError(c *gin.Context, err error) {
	var (
		validation *services.ValidationError
		overdraw   *services.OverdrawError
		missing    *services.NotFoundError
		conflict   *services.ConflictError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error(), "field": validation.Field})
	case errors.As(err, &overdraw):
		body := gin.H{
			"error":   overdraw.Error(),
			"balance": overdraw.Balance,
			"amount":  overdraw.Amount,
		}
		if overdraw.Change != "" {
			body["change"] = overdraw.Change
			body["result"] = overdraw.Result
		}
		c.JSON(http.StatusConflict, body)
	case errors.As(err, &missing):
		c.JSON(http.StatusNotFound, gin.H{"error": missing.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
	default:
		utils.SafeError("❌ %s %s [%s]: %v", c.Request.Method, c.Request.URL.Path, middleware.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter; absent means zero.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return n, true
}

func queryPeriod(c *gin.Context) (month, year int, ok bool) {
	if month, ok = queryInt(c, "month"); !ok {
		return 0, 0, false
	}
	if year, ok = queryInt(c, "year"); !ok {
		return 0, 0, false
	}
	return month, year, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
