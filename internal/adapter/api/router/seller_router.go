package router

import (
	"marketplace/internal/adapter/api/handler"
	"marketplace/internal/adapter/api/middleware"
	"marketplace/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

func SetupSellerRouter(e *echo.Echo, productHandler *handler.ProductHandler, tagHandler *handler.TagHandler, authMiddleware *middleware.AuthMiddleware) {
	seller := e.Group("/seller")
	seller.Use(authMiddleware.Authenticate)
	seller.Use(middleware.RequireRole(entity.RoleSeller))

	seller.GET("/products", productHandler.ListSellerProducts)
	seller.GET("/product/:id", productHandler.GetSellerProduct)
	seller.PUT("/product/:id", productHandler.UpdateProduct)
	seller.DELETE("/product/:id", productHandler.DeleteProduct)
	seller.POST("/create/product", productHandler.CreateProduct)
	seller.GET("/getTags", tagHandler.ListTags)
}
