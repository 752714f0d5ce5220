package handler

import (
	"marketplace/internal/infrastructure/memory"
	"marketplace/pkg/response"

	"github.com/labstack/echo/v4"
)

type TagHandler struct {
	backend *memory.Backend
}

// NewTagHandler creates a new tag handler
func NewTagHandler(backend *memory.Backend) *TagHandler {
	return &TagHandler{backend: backend}
}

func (h *TagHandler) ListTags(c echo.Context) error {
	return response.JSON(c, h.backend.Tags())
}
