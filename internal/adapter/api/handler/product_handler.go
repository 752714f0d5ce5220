package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"marketplace/internal/adapter/api/middleware"
	"marketplace/internal/domain/entity"
	"marketplace/internal/infrastructure/memory"
	"marketplace/pkg/errors"
	"marketplace/pkg/response"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	productPartField = "product"
	imageFileField   = "images"
	maxImageBytes    = 5 << 20
)

type ProductHandler struct {
	backend *memory.Backend
}

// NewProductHandler creates a new product handler
func NewProductHandler(backend *memory.Backend) *ProductHandler {
	return &ProductHandler{backend: backend}
}

type productRequest struct {
	ProductName string          `json:"productName" validate:"required,min=3"`
	Body        string          `json:"body" validate:"required,min=10"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	TagID       string          `json:"tagId" validate:"required"`
}

func (r productRequest) input() entity.ProductInput {
	return entity.ProductInput{
		ProductName: r.ProductName,
		Body:        r.Body,
		Price:       r.Price,
		Quantity:    r.Quantity,
		TagID:       r.TagID,
	}
}

func (h *ProductHandler) ListSellerProducts(c echo.Context) error {
	seller, _ := middleware.Identity(c)
	return response.JSON(c, h.backend.SellerProducts(seller.ID))
}

func (h *ProductHandler) GetSellerProduct(c echo.Context) error {
	seller, _ := middleware.Identity(c)
	product, err := h.backend.SellerProduct(seller.ID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.JSON(c, product)
}

// CreateProduct accepts either a JSON body or a multipart form carrying the
// product as a JSON part plus any number of image files.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	seller, _ := middleware.Identity(c)

	var (
		req       productRequest
		imageKeys []string
	)
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart form")
		}
		raw := form.Value[productPartField]
		if len(raw) == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Missing product part")
		}
		if err := json.Unmarshal([]byte(raw[0]), &req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid product part")
		}
		if err := h.validate(c, req); err != nil {
			return err
		}
		for _, fh := range form.File[imageFileField] {
			if fh.Size > maxImageBytes {
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Image too large")
			}
			f, err := fh.Open()
			if err != nil {
				return response.Error(c, errors.BadRequest("Unreadable image", err))
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return response.Error(c, errors.BadRequest("Unreadable image", err))
			}
			imageKeys = append(imageKeys, h.backend.StoreImage(fh.Filename, data))
		}
	} else {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
		}
		if err := h.validate(c, req); err != nil {
			return err
		}
	}

	product, err := h.backend.CreateProduct(seller.ID, req.input(), imageKeys)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "Product added successfully", product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	seller, _ := middleware.Identity(c)

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate(c, req); err != nil {
		return err
	}

	product, err := h.backend.UpdateProduct(seller.ID, c.Param("id"), req.input())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, http.StatusOK, "Product updated successfully", product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	seller, _ := middleware.Identity(c)
	if err := h.backend.DeleteProduct(seller.ID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, http.StatusOK, "Product deleted successfully", nil)
}

func (h *ProductHandler) ListCatalog(c echo.Context) error {
	return response.JSON(c, h.backend.Catalog())
}

func (h *ProductHandler) validate(c echo.Context, req productRequest) error {
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}
	if !req.Price.IsPositive() {
		return response.Error(c, errors.BadRequest("Price must be greater than 0", nil))
	}
	return nil
}
