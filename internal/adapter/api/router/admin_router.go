package router

import (
	"marketplace/internal/adapter/api/handler"
	"marketplace/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupAdminRouter exposes the full tag list to any signed-in account.
func SetupAdminRouter(e *echo.Echo, tagHandler *handler.TagHandler, authMiddleware *middleware.AuthMiddleware) {
	admin := e.Group("/admin")
	admin.Use(authMiddleware.Authenticate)

	admin.GET("/tag/all", tagHandler.ListTags)
}
