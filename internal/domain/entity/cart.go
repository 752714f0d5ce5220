package entity

import (
	"github.com/shopspring/decimal"
)

// FeeRate is the marketplace fee applied on top of the cart subtotal.
var FeeRate = decimal.RequireFromString("0.02")

type CartItem struct {
	ID       string   `json:"id"`
	Quantity int      `json:"quantity"`
	Product  Product  `json:"productId"`
	Owner    Identity `json:"userId"`
}

func (c CartItem) LineTotal() decimal.Decimal {
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// CanIncrement reports whether one more unit fits the product's stock.
func (c CartItem) CanIncrement() bool {
	return c.Quantity < c.Product.Quantity
}

func (c CartItem) CanDecrement() bool {
	return c.Quantity > 1
}

func (c CartItem) Clone() CartItem {
	out := c
	out.Product = c.Product.Clone()
	return out
}

func CloneCart(in []CartItem) []CartItem {
	if in == nil {
		return nil
	}
	out := make([]CartItem, len(in))
	for i, item := range in {
		out[i] = item.Clone()
	}
	return out
}

type CartTotals struct {
	ItemCount int
	Subtotal  decimal.Decimal
	Fee       decimal.Decimal
	Total     decimal.Decimal
}

// ComputeTotals is a pure function of the snapshot; totals are never stored.
func ComputeTotals(items []CartItem) CartTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	fee := subtotal.Mul(FeeRate)
	return CartTotals{
		ItemCount: len(items),
		Subtotal:  subtotal,
		Fee:       fee,
		Total:     subtotal.Add(fee),
	}
}
