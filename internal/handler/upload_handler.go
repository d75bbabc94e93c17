package handler

import (
	"mime"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"studentportal/internal/errors"
	"studentportal/internal/service"
)

// UploadHandler accepts file uploads and serves stored files.
type UploadHandler struct {
	svc service.UploadService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(svc service.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// UploadResponse carries the public path of a stored file.
type UploadResponse struct {
	URL string `json:"url"`
}

// Upload godoc
// @Summary Upload a deliverable or payment proof
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Success 200 {object} UploadResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return respondError(c, errors.NewInvalidEntityData("file", "field required"))
	}
	src, err := fh.Open()
	if err != nil {
		return badRequest("unreadable file")
	}
	defer src.Close()

	url, err := h.svc.Upload(c.Request().Context(), fh.Filename, src, fh.Size, fh.Header.Get(echo.HeaderContentType))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, UploadResponse{URL: url})
}

// Serve streams a stored file.
func (h *UploadHandler) Serve(c echo.Context) error {
	name := c.Param("name")
	rc, err := h.svc.Open(c.Request().Context(), name)
	if err != nil {
		return respondError(c, err)
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Stream(http.StatusOK, contentType, rc)
}
