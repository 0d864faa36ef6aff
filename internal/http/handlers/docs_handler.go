package handlers

import "github.com/gin-gonic/gin"

// GET /api/orders/:id/confirmation renders the confirmation PDF inline.
func (h *Handler) OrderConfirmationPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Docs
	svc.RequestID = requestID(c)

	pdf, filename, err := svc.OrderConfirmation(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondFile(c, "application/pdf", filename, pdf, true)
}
