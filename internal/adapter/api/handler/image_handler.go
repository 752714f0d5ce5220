package handler

import (
	"net/http"

	"marketplace/internal/infrastructure/memory"

	"github.com/labstack/echo/v4"
)

type ImageHandler struct {
	backend *memory.Backend
}

// NewImageHandler creates a new image handler
func NewImageHandler(backend *memory.Backend) *ImageHandler {
	return &ImageHandler{backend: backend}
}

// Serve returns a stored upload by the key recorded on its product.
func (h *ImageHandler) Serve(c echo.Context) error {
	data, ok := h.backend.Image(c.Param("*"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Image not found")
	}
	return c.Blob(http.StatusOK, http.DetectContentType(data), data)
}
