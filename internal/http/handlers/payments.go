package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type paymentRequest struct {
	// Amount is in cents.
	Amount int64 `json:"amount" binding:"required"`
}

// POST /api/orders/:id/payments
func (h *Handler) AddOrderPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req paymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := h.Orders
	svc.RequestID = requestID(c)

	o, err := svc.AddPayment(c.Request.Context(), id, req.Amount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, o)
}
