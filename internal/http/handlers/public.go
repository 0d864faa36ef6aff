package handlers

import (
	"net/http"

	"campbook/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/public/packages
func (h *Handler) PublicPackages(c *gin.Context) {
	svc := h.Booking
	svc.RequestID = requestID(c)

	list, err := svc.Packages(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, list)
}

// GET /api/public/projects
func (h *Handler) PublicProjects(c *gin.Context) {
	svc := h.Booking
	svc.RequestID = requestID(c)

	list, err := svc.Projects(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, list)
}

// POST /api/public/bookings
func (h *Handler) PublicBook(c *gin.Context) {
	var in services.BookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Booking
	svc.RequestID = requestID(c)

	res, err := svc.Book(c.Request.Context(), c.ClientIP(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, res)
}
