package router

import (
	"marketplace/internal/adapter/api/handler"
	"marketplace/internal/adapter/api/middleware"
	"marketplace/internal/infrastructure/ratelimit"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, h *handler.Handlers, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	SetupAuthRouter(e, h.Auth, authMiddleware, limiter)
	SetupSellerRouter(e, h.Product, h.Tag, authMiddleware)
	SetupUserRouter(e, h.Product, h.Cart, authMiddleware)
	SetupAdminRouter(e, h.Tag, authMiddleware)
	SetupImageRouter(e, h.Image)
	SetupHealthRouter(e, h.Health)
}
