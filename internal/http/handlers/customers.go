package handlers

import (
	"net/http"

	"campbook/internal/domain/models"
	"campbook/internal/services"

	"github.com/gin-gonic/gin"
)

func customerFilter(c *gin.Context) (models.CustomerFilter, bool) {
	page, ok := queryInt(c, "page")
	if !ok {
		return models.CustomerFilter{}, false
	}
	size, ok := queryInt(c, "pageSize")
	if !ok {
		return models.CustomerFilter{}, false
	}
	return models.CustomerFilter{
		Keyword:  queryString(c, "keyword"),
		Source:   queryString(c, "source"),
		Page:     page,
		PageSize: size,
	}, true
}

// GET /api/customers?keyword=&source=&page=1&pageSize=20
func (h *Handler) ListCustomers(c *gin.Context) {
	f, ok := customerFilter(c)
	if !ok {
		return
	}
	svc := h.Customers
	svc.RequestID = requestID(c)

	page, err := svc.List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondPage(c, page)
}

// GET /api/customers/:id
func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Customers
	svc.RequestID = requestID(c)

	cu, err := svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, cu)
}

// POST /api/customers
func (h *Handler) CreateCustomer(c *gin.Context) {
	var in services.CustomerInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Customers
	svc.RequestID = requestID(c)

	cu, err := svc.Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, cu)
}

// PUT /api/customers/:id
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.CustomerInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Customers
	svc.RequestID = requestID(c)

	cu, err := svc.Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, cu)
}

// DELETE /api/customers/:id
func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Customers
	svc.RequestID = requestID(c)

	if err := svc.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}

// GET /api/customers/:id/orders
func (h *Handler) CustomerOrders(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	page, ok := queryInt(c, "page")
	if !ok {
		return
	}
	size, ok := queryInt(c, "pageSize")
	if !ok {
		return
	}
	svc := h.Customers
	svc.RequestID = requestID(c)

	res, err := svc.OrderHistory(c.Request.Context(), id, page, size)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondPage(c, res)
}
