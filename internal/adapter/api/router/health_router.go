package router

import (
	"marketplace/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupHealthRouter(e *echo.Echo, healthHandler *handler.HealthHandler) {
	e.GET("/health", healthHandler.CheckHealth)
}

func SetupImageRouter(e *echo.Echo, imageHandler *handler.ImageHandler) {
	e.GET("/images/*", imageHandler.Serve)
}
