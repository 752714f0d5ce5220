package router

import (
	"marketplace/internal/adapter/api/handler"
	"marketplace/internal/adapter/api/middleware"
	"marketplace/internal/infrastructure/ratelimit"

	"github.com/labstack/echo/v4"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	e.GET("/me", authHandler.Me, authMiddleware.Authenticate)

	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login, middleware.RateLimit(limiter, ratelimit.ActionLogin))
	auth.POST("/logout", authHandler.Logout)

	registerLimit := middleware.RateLimit(limiter, ratelimit.ActionRegister)
	auth.POST("/user/register", authHandler.RegisterUser, registerLimit)
	auth.POST("/seller/register", authHandler.RegisterSeller, registerLimit)
}
