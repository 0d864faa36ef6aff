package handlers

import (
	"campbook/internal/domain/models"
	"campbook/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/export/orders?dateFrom=&dateTo=&status=
func (h *Handler) ExportOrders(c *gin.Context) {
	f, ok := orderFilter(c)
	if !ok {
		return
	}
	svc := h.Export
	svc.RequestID = requestID(c)

	body, filename, err := svc.OrdersWorkbook(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondFile(c, services.XLSXContentType, filename, body, false)
}

// GET /api/export/customers?keyword=&source=
func (h *Handler) ExportCustomers(c *gin.Context) {
	svc := h.Export
	svc.RequestID = requestID(c)

	body, filename, err := svc.CustomersWorkbook(c.Request.Context(), models.CustomerFilter{
		Keyword: queryString(c, "keyword"),
		Source:  queryString(c, "source"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondFile(c, services.XLSXContentType, filename, body, false)
}
