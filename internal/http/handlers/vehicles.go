package handlers

import (
	"net/http"

	"campbook/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/vehicles?keyword=AB&status=available
func (h *Handler) ListVehicles(c *gin.Context) {
	svc := h.Fleet
	svc.RequestID = requestID(c)

	list, err := svc.ListVehicles(c.Request.Context(), queryString(c, "keyword"), queryString(c, "status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, list)
}

// GET /api/vehicles/:id
func (h *Handler) GetVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Fleet
	svc.RequestID = requestID(c)

	v, err := svc.GetVehicle(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, v)
}

// POST /api/vehicles
func (h *Handler) CreateVehicle(c *gin.Context) {
	var in services.VehicleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Fleet
	svc.RequestID = requestID(c)

	v, err := svc.CreateVehicle(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, v)
}

// PUT /api/vehicles/:id
func (h *Handler) UpdateVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.VehicleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Fleet
	svc.RequestID = requestID(c)

	v, err := svc.UpdateVehicle(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, v)
}

// DELETE /api/vehicles/:id
func (h *Handler) DeleteVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Fleet
	svc.RequestID = requestID(c)

	if err := svc.DeleteVehicle(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}
