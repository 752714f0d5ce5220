package handler

import (
	"net/http"

	"marketplace/internal/adapter/api/middleware"
	"marketplace/internal/infrastructure/memory"
	"marketplace/pkg/response"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	backend *memory.Backend
}

// NewCartHandler creates a new cart handler
func NewCartHandler(backend *memory.Backend) *CartHandler {
	return &CartHandler{backend: backend}
}

type addToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	user, _ := middleware.Identity(c)
	return response.JSON(c, h.backend.Cart(user.ID))
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	user, _ := middleware.Identity(c)

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	item, err := h.backend.AddToCart(user.ID, req.ProductID, req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "Product added to cart", item)
}

func (h *CartHandler) UpdateCart(c echo.Context) error {
	user, _ := middleware.Identity(c)

	var req updateCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	item, err := h.backend.UpdateCart(user.ID, c.Param("id"), req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, http.StatusOK, "Cart updated successfully", item)
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	user, _ := middleware.Identity(c)
	if err := h.backend.RemoveFromCart(user.ID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, http.StatusOK, "Item removed from cart", nil)
}
