package handlers

import (
	"net/http"

	"campbook/internal/domain"

	"github.com/gin-gonic/gin"
)

// POST /api/uploads/images (multipart field "file")
func (h *Handler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, domain.CodeValidation, "multipart field file is required", gin.H{"field": "file"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "failed to open upload", Err: err})
		return
	}
	defer f.Close()

	svc := h.Uploads
	svc.RequestID = requestID(c)

	res, err := svc.SaveImage(fh.Filename, fh.Size, f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, res)
}
