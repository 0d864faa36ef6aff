package handlers

import (
	"net/http"

	"campbook/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/drivers?keyword=&status=
func (h *Handler) ListDrivers(c *gin.Context) {
	svc := h.Fleet
	svc.RequestID = requestID(c)

	list, err := svc.ListDrivers(c.Request.Context(), queryString(c, "keyword"), queryString(c, "status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, list)
}

// GET /api/drivers/:id
func (h *Handler) GetDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Fleet
	svc.RequestID = requestID(c)

	d, err := svc.GetDriver(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, d)
}

// POST /api/drivers
func (h *Handler) CreateDriver(c *gin.Context) {
	var in services.DriverInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Fleet
	svc.RequestID = requestID(c)

	d, err := svc.CreateDriver(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, d)
}

// PUT /api/drivers/:id
func (h *Handler) UpdateDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.DriverInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Fleet
	svc.RequestID = requestID(c)

	d, err := svc.UpdateDriver(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, d)
}

// DELETE /api/drivers/:id
func (h *Handler) DeleteDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Fleet
	svc.RequestID = requestID(c)

	if err := svc.DeleteDriver(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}
