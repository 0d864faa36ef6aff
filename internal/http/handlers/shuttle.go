package handlers

import (
	"net/http"

	"campbook/internal/domain/models"
	"campbook/internal/services"

	"github.com/gin-gonic/gin"
)

type stopsPayload struct {
	Stops []services.ShuttleStopInput `json:"stops"`
}

// GET /api/shuttle/schedules?date=&dateFrom=&dateTo=&vehicleId=&driverId=&status=
func (h *Handler) ListShuttles(c *gin.Context) {
	vehicleID, ok := queryInt64(c, "vehicleId")
	if !ok {
		return
	}
	driverID, ok := queryInt64(c, "driverId")
	if !ok {
		return
	}
	svc := h.Shuttles
	svc.RequestID = requestID(c)

	list, err := svc.List(c.Request.Context(), models.ShuttleFilter{
		Date:      queryString(c, "date"),
		DateFrom:  queryString(c, "dateFrom"),
		DateTo:    queryString(c, "dateTo"),
		VehicleID: vehicleID,
		DriverID:  driverID,
		Status:    queryString(c, "status"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, list)
}

// GET /api/shuttle/schedules/:id
func (h *Handler) GetShuttle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Shuttles
	svc.RequestID = requestID(c)

	sh, err := svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, sh)
}

// POST /api/shuttle/schedules
func (h *Handler) CreateShuttle(c *gin.Context) {
	var in services.ShuttleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Shuttles
	svc.RequestID = requestID(c)

	sh, err := svc.Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, sh)
}

// PUT /api/shuttle/schedules/:id
func (h *Handler) UpdateShuttle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.ShuttleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Shuttles
	svc.RequestID = requestID(c)

	sh, err := svc.Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, sh)
}

// PUT /api/shuttle/schedules/:id/stops replaces every stop.
func (h *Handler) ReplaceShuttleStops(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req stopsPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := h.Shuttles
	svc.RequestID = requestID(c)

	sh, err := svc.ReplaceStops(c.Request.Context(), id, req.Stops)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, sh)
}

// PATCH /api/shuttle/schedules/:id/status
func (h *Handler) UpdateShuttleStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := h.Shuttles
	svc.RequestID = requestID(c)

	sh, err := svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, sh)
}

// DELETE /api/shuttle/schedules/:id
func (h *Handler) DeleteShuttle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Shuttles
	svc.RequestID = requestID(c)

	if err := svc.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}
