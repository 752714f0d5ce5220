package entity

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, price string, qty, stock int) CartItem {
	return CartItem{
		ID:       id,
		Quantity: qty,
		Product: Product{
			ID:       "p-" + id,
			Price:    decimal.RequireFromString(price),
			Quantity: stock,
		},
	}
}

func TestComputeTotals(t *testing.T) {
	items := []CartItem{
		item("a", "79.99", 2, 5),
		item("b", "49.99", 1, 3),
	}

	totals := ComputeTotals(items)

	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, "209.97", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "4.20", totals.Fee.StringFixed(2))
	assert.Equal(t, "214.17", totals.Total.StringFixed(2))
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := ComputeTotals(nil)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Fee.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestCartItemStepBounds(t *testing.T) {
	atMin := item("a", "1", 1, 3)
	assert.False(t, atMin.CanDecrement())
	assert.True(t, atMin.CanIncrement())

	atStock := item("b", "1", 3, 3)
	assert.True(t, atStock.CanDecrement())
	assert.False(t, atStock.CanIncrement())
}

func TestCartItemDecodesWireNames(t *testing.T) {
	raw := `{"id":"c1","quantity":2,"productId":{"id":"p1","productName":"Lamp","price":12.5,"quantity":4,"tag":{"id":"t1","name":"Home"},"imageUrl":["a.png"]},"userId":{"id":"u1","email":"b@x.io","role":"USER"}}`

	var got CartItem
	require.NoError(t, json.Unmarshal([]byte(raw), &got))

	assert.Equal(t, "Lamp", got.Product.ProductName)
	assert.Equal(t, "12.5", got.Product.Price.String())
	assert.Equal(t, []string{"a.png"}, got.Product.ImageURLs)
	assert.Equal(t, RoleUser, got.Owner.Role)
	assert.Equal(t, "25.00", got.LineTotal().StringFixed(2))
}

func TestProductInputEncodesPriceAsNumber(t *testing.T) {
	body, err := json.Marshal(ProductInput{ProductName: "Lamp", Price: decimal.RequireFromString("12.50"), TagID: "t1"})
	require.NoError(t, err)

	assert.Contains(t, string(body), `"price":12.5`)
}

func TestSessionInvariant(t *testing.T) {
	anon := AnonymousSession()
	assert.False(t, anon.IsAuthenticated)
	assert.Nil(t, anon.User)
	assert.Equal(t, Role(""), anon.Role())

	s := AuthenticatedSession(Identity{ID: "1", Role: RoleSeller})
	assert.True(t, s.IsAuthenticated)
	assert.Equal(t, RoleSeller, s.Role())

	clone := s.Clone()
	clone.User.Role = RoleUser
	assert.Equal(t, RoleSeller, s.Role())
}
