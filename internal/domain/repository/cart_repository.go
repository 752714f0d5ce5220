package repository

import (
	"context"

	"marketplace/internal/domain/entity"
)

type CartRepository interface {
	Get(ctx context.Context) ([]entity.CartItem, error)
	Add(ctx context.Context, productID string, quantity int) (string, error)
	UpdateQuantity(ctx context.Context, itemID string, quantity int) (string, error)
	Remove(ctx context.Context, itemID string) (string, error)
}
