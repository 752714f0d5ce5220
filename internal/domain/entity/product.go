package entity

import (
	"github.com/shopspring/decimal"
)

func init() {
	// The API speaks JSON numbers for prices.
	decimal.MarshalJSONWithoutQuotes = true
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          string          `json:"id"`
	ProductName string          `json:"productName"`
	Body        string          `json:"body"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Tag         Tag             `json:"tag"`
	ImageURLs   []string        `json:"imageUrl"`
}

func (p Product) InStock() bool {
	return p.Quantity > 0
}

// TagLabel falls back to "Uncategorized" for products without a tag.
func (p Product) TagLabel() string {
	if p.Tag.Name == "" {
		return "Uncategorized"
	}
	return p.Tag.Name
}

func (p Product) Clone() Product {
	out := p
	if p.ImageURLs != nil {
		out.ImageURLs = append([]string(nil), p.ImageURLs...)
	}
	return out
}

func CloneProducts(in []Product) []Product {
	if in == nil {
		return nil
	}
	out := make([]Product, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

// ProductInput is the mutable field set a seller submits on create and update.
type ProductInput struct {
	ProductName string          `json:"productName"`
	Body        string          `json:"body"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	TagID       string          `json:"tagId"`
}

// ImageFile is one image attached to a multipart product submission.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}
