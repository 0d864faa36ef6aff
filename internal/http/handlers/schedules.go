package handlers

import (
	"net/http"

	"campbook/internal/domain/models"
	"campbook/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/schedules?date=&dateFrom=&dateTo=&projectId=&coachId=&status=
func (h *Handler) ListSchedules(c *gin.Context) {
	projectID, ok := queryInt64(c, "projectId")
	if !ok {
		return
	}
	coachID, ok := queryInt64(c, "coachId")
	if !ok {
		return
	}
	svc := h.Schedules
	svc.RequestID = requestID(c)

	list, err := svc.List(c.Request.Context(), models.ScheduleFilter{
		Date:      queryString(c, "date"),
		DateFrom:  queryString(c, "dateFrom"),
		DateTo:    queryString(c, "dateTo"),
		ProjectID: projectID,
		CoachID:   coachID,
		Status:    queryString(c, "status"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, list)
}

// GET /api/schedules/timeline?date=
func (h *Handler) ScheduleTimeline(c *gin.Context) {
	svc := h.Schedules
	svc.RequestID = requestID(c)

	rows, err := svc.Timeline(c.Request.Context(), queryString(c, "date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, rows)
}

// GET /api/schedules/check-conflict?coachId=&date=&startTime=&endTime=&excludeId=
func (h *Handler) CheckScheduleConflict(c *gin.Context) {
	coachID, ok := queryInt64(c, "coachId")
	if !ok {
		return
	}
	excludeID, ok := queryInt64(c, "excludeId")
	if !ok {
		return
	}
	svc := h.Schedules
	svc.RequestID = requestID(c)

	res, err := svc.CheckConflict(c.Request.Context(), services.ConflictCheck{
		CoachID:   coachID,
		Date:      queryString(c, "date"),
		StartTime: queryString(c, "startTime"),
		EndTime:   queryString(c, "endTime"),
		ExcludeID: excludeID,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, res)
}

// GET /api/schedules/:id
func (h *Handler) GetSchedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Schedules
	svc.RequestID = requestID(c)

	sc, err := svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, sc)
}

// POST /api/schedules
func (h *Handler) CreateSchedule(c *gin.Context) {
	var in services.ScheduleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Schedules
	svc.RequestID = requestID(c)

	sc, err := svc.Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, sc)
}

// PUT /api/schedules/:id
func (h *Handler) UpdateSchedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.ScheduleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Schedules
	svc.RequestID = requestID(c)

	sc, err := svc.Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, sc)
}

// PATCH /api/schedules/:id/status
func (h *Handler) UpdateScheduleStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := h.Schedules
	svc.RequestID = requestID(c)

	sc, err := svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, sc)
}

// DELETE /api/schedules/:id
func (h *Handler) DeleteSchedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Schedules
	svc.RequestID = requestID(c)

	if err := svc.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}
