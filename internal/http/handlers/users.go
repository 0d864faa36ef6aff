package handlers

import (
	"net/http"

	"campbook/internal/http/middleware"
	"campbook/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/users
func (h *Handler) ListUsers(c *gin.Context) {
	svc := h.Users
	svc.RequestID = requestID(c)

	list, err := svc.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, list)
}

// POST /api/users
func (h *Handler) CreateUser(c *gin.Context) {
	var in services.UserInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Users
	svc.RequestID = requestID(c)

	u, err := svc.Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, u)
}

// PUT /api/users/:id
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.UserInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Users
	svc.RequestID = requestID(c)

	u, err := svc.Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, u)
}

// DELETE /api/users/:id
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Users
	svc.RequestID = requestID(c)

	if err := svc.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}
