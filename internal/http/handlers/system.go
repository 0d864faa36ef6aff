package handlers

import (
	"net/http"

	"campbook/internal/config"
	"campbook/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) DBCheck(c *gin.Context) {
	if h.DB == nil {
		respondError(c, http.StatusServiceUnavailable, domain.CodeInternal, "database is not connected", nil)
		return
	}
	if err := config.PingDB(c.Request.Context(), h.DB); err != nil {
		respondError(c, http.StatusServiceUnavailable, domain.CodeInternal, "database ping failed", nil)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"database": "ok"})
}

func (h *Handler) Routes(c *gin.Context) {
	h.routerMu.RLock()
	r := h.router
	h.routerMu.RUnlock()
	if r == nil {
		respondError(c, http.StatusServiceUnavailable, domain.CodeInternal, "router not ready", nil)
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
	}
	respondOK(c, http.StatusOK, out)
}

func (h *Handler) NotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, domain.CodeNotFound, "route not found", gin.H{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	})
}
