package repository

import (
	"context"
	"net/http"

	"marketplace/internal/domain/entity"
)

type APICartRepository struct {
	api Requester
}

// NewAPICartRepository creates a new cart repository
func NewAPICartRepository(api Requester) *APICartRepository {
	return &APICartRepository{api: api}
}

func (r *APICartRepository) Get(ctx context.Context) ([]entity.CartItem, error) {
	var items []entity.CartItem
	if err := get(ctx, r.api, "/user/getCart", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *APICartRepository) Add(ctx context.Context, productID string, quantity int) (string, error) {
	reply, err := r.api.Do(ctx, http.MethodPost, "/user/addToCart", map[string]interface{}{
		"productId": productID,
		"quantity":  quantity,
	}, nil)
	return message(reply), err
}

func (r *APICartRepository) UpdateQuantity(ctx context.Context, itemID string, quantity int) (string, error) {
	reply, err := r.api.Do(ctx, http.MethodPut, idPath("/user/updateCart/", itemID), map[string]int{
		"quantity": quantity,
	}, nil)
	return message(reply), err
}

func (r *APICartRepository) Remove(ctx context.Context, itemID string) (string, error) {
	reply, err := r.api.Do(ctx, http.MethodDelete, idPath("/user/removeFromCart/", itemID), nil, nil)
	return message(reply), err
}
