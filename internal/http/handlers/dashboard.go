package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/dashboard/stats?date=YYYY-MM-DD
func (h *Handler) DashboardStats(c *gin.Context) {
	svc := h.Dashboard
	svc.RequestID = requestID(c)

	st, err := svc.Stats(c.Request.Context(), queryString(c, "date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, st)
}
