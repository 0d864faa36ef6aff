package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"campbook/internal/domain"
	"campbook/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondPage[T any](c *gin.Context, p domain.Page[T]) {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items, "pagination": p.Pagination})
}

// respondList never renders a JSON null for an empty list.
func respondList[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	respondOK(c, http.StatusOK, items)
}

func respondFile(c *gin.Context, contentType, filename string, body []byte, inline bool) {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	c.Header("Content-Disposition", disposition+`; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, domain.CodeValidation, "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, domain.CodeValidation, "invalid JSON payload", err.Error())
		return false
	}
	return true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, domain.CodeValidation, "invalid id", gin.H{"field": "id"})
		return 0, false
	}
	return id, true
}

// queryInt64 returns 0 for a missing parameter.
func queryInt64(c *gin.Context, name string) (int64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		respondError(c, http.StatusBadRequest, domain.CodeValidation, "invalid "+name, gin.H{"field": name})
		return 0, false
	}
	return n, true
}

func queryInt(c *gin.Context, name string) (int, bool) {
	n, ok := queryInt64(c, name)
	return int(n), ok
}

func queryBool(c *gin.Context, name string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.Query(name)))
	return err == nil && v
}

func queryString(c *gin.Context, name string) string {
	return strings.TrimSpace(c.Query(name))
}

func requestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

type statusPayload struct {
	Status string `json:"status" binding:"required"`
}
