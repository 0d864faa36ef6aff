package handlers

import (
	"net/http"

	"campbook/internal/domain/models"
	"campbook/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/projects?keyword=&category=&active=true
func (h *Handler) ListProjects(c *gin.Context) {
	svc := h.Catalog
	svc.RequestID = requestID(c)

	list, err := svc.ListProjects(c.Request.Context(), models.ProjectFilter{
		Keyword:    queryString(c, "keyword"),
		Category:   queryString(c, "category"),
		ActiveOnly: queryBool(c, "active"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, list)
}

// GET /api/projects/:id
func (h *Handler) GetProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Catalog
	svc.RequestID = requestID(c)

	p, err := svc.GetProject(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, p)
}

// POST /api/projects
func (h *Handler) CreateProject(c *gin.Context) {
	var in services.ProjectInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Catalog
	svc.RequestID = requestID(c)

	p, err := svc.CreateProject(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, p)
}

// PUT /api/projects/:id
func (h *Handler) UpdateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.ProjectInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Catalog
	svc.RequestID = requestID(c)

	p, err := svc.UpdateProject(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, p)
}

// DELETE /api/projects/:id
func (h *Handler) DeleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Catalog
	svc.RequestID = requestID(c)

	if err := svc.DeleteProject(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}

// GET /api/packages?active=true
func (h *Handler) ListPackages(c *gin.Context) {
	svc := h.Catalog
	svc.RequestID = requestID(c)

	list, err := svc.ListPackages(c.Request.Context(), queryBool(c, "active"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, list)
}

// GET /api/packages/:id
func (h *Handler) GetPackage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Catalog
	svc.RequestID = requestID(c)

	p, err := svc.GetPackage(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, p)
}

// POST /api/packages
func (h *Handler) CreatePackage(c *gin.Context) {
	var in services.PackageInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Catalog
	svc.RequestID = requestID(c)

	p, err := svc.CreatePackage(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, p)
}

// PUT /api/packages/:id
func (h *Handler) UpdatePackage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.PackageInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Catalog
	svc.RequestID = requestID(c)

	p, err := svc.UpdatePackage(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, p)
}

// DELETE /api/packages/:id
func (h *Handler) DeletePackage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Catalog
	svc.RequestID = requestID(c)

	if err := svc.DeletePackage(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}

// GET /api/accommodations?active=true
func (h *Handler) ListAccommodations(c *gin.Context) {
	svc := h.Catalog
	svc.RequestID = requestID(c)

	list, err := svc.ListAccommodations(c.Request.Context(), queryBool(c, "active"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, list)
}

// GET /api/accommodations/:id
func (h *Handler) GetAccommodation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Catalog
	svc.RequestID = requestID(c)

	p, err := svc.GetAccommodation(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, p)
}

// POST /api/accommodations
func (h *Handler) CreateAccommodation(c *gin.Context) {
	var in services.AccommodationInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Catalog
	svc.RequestID = requestID(c)

	p, err := svc.CreateAccommodation(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, p)
}

// PUT /api/accommodations/:id
func (h *Handler) UpdateAccommodation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.AccommodationInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Catalog
	svc.RequestID = requestID(c)

	p, err := svc.UpdateAccommodation(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, p)
}

// DELETE /api/accommodations/:id
func (h *Handler) DeleteAccommodation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := h.Catalog
	svc.RequestID = requestID(c)

	if err := svc.DeleteAccommodation(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}
