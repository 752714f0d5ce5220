package repository

import (
	"context"
	"net/http"

	"marketplace/internal/domain/entity"
	"marketplace/internal/infrastructure/gateway"
)

type APIProductRepository struct {
	api Requester
}

// NewAPIProductRepository creates a new product repository
func NewAPIProductRepository(api Requester) *APIProductRepository {
	return &APIProductRepository{api: api}
}

func (r *APIProductRepository) ListSellerProducts(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := get(ctx, r.api, "/seller/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *APIProductRepository) GetSellerProduct(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	if err := get(ctx, r.api, idPath("/seller/product/", id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *APIProductRepository) Create(ctx context.Context, input entity.ProductInput) (string, error) {
	reply, err := r.api.Do(ctx, http.MethodPost, "/seller/create/product", input, nil)
	return message(reply), err
}

// CreateWithImages posts input as the product part of a multipart form.
func (r *APIProductRepository) CreateWithImages(ctx context.Context, input entity.ProductInput, images []entity.ImageFile) (string, error) {
	files := make([]gateway.FilePart, len(images))
	for i, img := range images {
		files[i] = gateway.FilePart{
			Name:        img.Name,
			ContentType: img.ContentType,
			Data:        img.Data,
		}
	}
	reply, err := r.api.PostMultipart(ctx, "/seller/create/product", productPartField, input, imageFileField, files, nil)
	return message(reply), err
}

func (r *APIProductRepository) Update(ctx context.Context, id string, input entity.ProductInput) (string, error) {
	reply, err := r.api.Do(ctx, http.MethodPut, idPath("/seller/product/", id), input, nil)
	return message(reply), err
}

func (r *APIProductRepository) Delete(ctx context.Context, id string) (string, error) {
	reply, err := r.api.Do(ctx, http.MethodDelete, idPath("/seller/product/", id), nil, nil)
	return message(reply), err
}

func (r *APIProductRepository) ListCatalog(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := get(ctx, r.api, "/user/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}
