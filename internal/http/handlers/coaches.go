package handlers

import (
	"net/http"

	"campbook/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/coaches?keyword=&status=
func (h *Handler) ListCoaches(c *gin.Context) {
	svc := h.Coaches
	svc.RequestID = requestID(c)

	list, err := svc.List(c.Request.Context(), queryString(c, "keyword"), queryString(c, "status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, list)
}

// GET /api/coaches/:id
func (h *Handler) GetCoach(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Coaches
	svc.RequestID = requestID(c)

	co, err := svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, co)
}

// POST /api/coaches
func (h *Handler) CreateCoach(c *gin.Context) {
	var in services.CoachInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Coaches
	svc.RequestID = requestID(c)

	co, err := svc.Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, co)
}

// PUT /api/coaches/:id
func (h *Handler) UpdateCoach(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.CoachInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Coaches
	svc.RequestID = requestID(c)

	co, err := svc.Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, co)
}

// DELETE /api/coaches/:id
func (h *Handler) DeleteCoach(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Coaches
	svc.RequestID = requestID(c)

	if err := svc.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}
