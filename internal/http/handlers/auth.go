package handlers

import (
	"net/http"

	"campbook/internal/domain"
	"campbook/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type passwordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := h.Auth
	svc.RequestID = requestID(c)

	res, err := svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, res)
}

// POST /api/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	svc := h.Auth
	svc.RequestID = requestID(c)

	if err := svc.Logout(c.Request.Context(), middleware.GetClaims(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"loggedOut": true})
}

// GET /api/auth/me
func (h *Handler) Me(c *gin.Context) {
	svc := h.Auth
	svc.RequestID = requestID(c)

	u, err := svc.Me(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		if domain.IsNotFound(err) {
			RespondDomainError(c, domain.UnauthorizedError{Msg: "account no longer exists"})
			return
		}
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, u)
}

// PUT /api/auth/password
func (h *Handler) ChangePassword(c *gin.Context) {
	var req passwordRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := h.Auth
	svc.RequestID = requestID(c)

	if err := svc.ChangePassword(c.Request.Context(), middleware.GetUserID(c), req.OldPassword, req.NewPassword); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"changed": true})
}
