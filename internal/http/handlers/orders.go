package handlers

import (
	"net/http"

	"campbook/internal/domain/models"
	"campbook/internal/http/middleware"
	"campbook/internal/services"

	"github.com/gin-gonic/gin"
)

func orderFilter(c *gin.Context) (models.OrderFilter, bool) {
	customerID, ok := queryInt64(c, "customerId")
	if !ok {
		return models.OrderFilter{}, false
	}
	page, ok := queryInt(c, "page")
	if !ok {
		return models.OrderFilter{}, false
	}
	size, ok := queryInt(c, "pageSize")
	if !ok {
		return models.OrderFilter{}, false
	}
	return models.OrderFilter{
		Status:     queryString(c, "status"),
		CustomerID: customerID,
		Keyword:    queryString(c, "keyword"),
		DateFrom:   queryString(c, "dateFrom"),
		DateTo:     queryString(c, "dateTo"),
		Page:       page,
		PageSize:   size,
	}, true
}

// GET /api/orders?status=&customerId=&keyword=&dateFrom=&dateTo=&page=&pageSize=
func (h *Handler) ListOrders(c *gin.Context) {
	f, ok := orderFilter(c)
	if !ok {
		return
	}
	svc := h.Orders
	svc.RequestID = requestID(c)

	page, err := svc.List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondPage(c, page)
}

// GET /api/orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Orders
	svc.RequestID = requestID(c)

	o, err := svc.Detail(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, o)
}

// GET /api/orders/no/:orderNo
func (h *Handler) GetOrderByNo(c *gin.Context) {
	svc := h.Orders
	svc.RequestID = requestID(c)

	o, err := svc.DetailByNo(c.Request.Context(), c.Param("orderNo"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, o)
}

// POST /api/orders
func (h *Handler) CreateOrder(c *gin.Context) {
	var in services.OrderInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Orders
	svc.RequestID = requestID(c)

	var createdBy *int64
	if uid := middleware.GetUserID(c); uid > 0 {
		createdBy = &uid
	}
	o, err := svc.Create(c.Request.Context(), in, createdBy)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, o)
}

// PUT /api/orders/:id
func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.OrderInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Orders
	svc.RequestID = requestID(c)

	o, err := svc.Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, o)
}

// PATCH /api/orders/:id/status
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := h.Orders
	svc.RequestID = requestID(c)

	o, err := svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, o)
}

// DELETE /api/orders/:id
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Orders
	svc.RequestID = requestID(c)

	if err := svc.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}
