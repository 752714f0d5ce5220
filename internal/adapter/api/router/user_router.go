package router

import (
	"marketplace/internal/adapter/api/handler"
	"marketplace/internal/adapter/api/middleware"
	"marketplace/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

func SetupUserRouter(e *echo.Echo, productHandler *handler.ProductHandler, cartHandler *handler.CartHandler, authMiddleware *middleware.AuthMiddleware) {
	user := e.Group("/user")
	user.Use(authMiddleware.Authenticate)
	user.Use(middleware.RequireRole(entity.RoleUser))

	user.GET("/products", productHandler.ListCatalog)
	user.GET("/getCart", cartHandler.GetCart)
	user.POST("/addToCart", cartHandler.AddToCart)
	user.PUT("/updateCart/:id", cartHandler.UpdateCart)
	user.DELETE("/removeFromCart/:id", cartHandler.RemoveFromCart)
}
