package repository

import (
	"context"

	"marketplace/internal/domain/entity"
)

type ProductRepository interface {
	ListSellerProducts(ctx context.Context) ([]entity.Product, error)
	GetSellerProduct(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, input entity.ProductInput) (string, error)
	CreateWithImages(ctx context.Context, input entity.ProductInput, images []entity.ImageFile) (string, error)
	Update(ctx context.Context, id string, input entity.ProductInput) (string, error)
	Delete(ctx context.Context, id string) (string, error)
	ListCatalog(ctx context.Context) ([]entity.Product, error)
}
