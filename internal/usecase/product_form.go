package usecase

import (
	"strconv"
	"strings"

	"marketplace/internal/domain/entity"
	"marketplace/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Field names one product form input.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldPrice       Field = "price"
	FieldQuantity    Field = "quantity"
	FieldTag         Field = "tagId"
)

var formValidate = validator.New()

// ProductForm holds raw seller input and the per-field errors of the last
// validation. Editing a field clears that field's error.
type ProductForm struct {
	values map[Field]string
	errs   map[Field]string
}

// NewProductForm creates an empty form.
func NewProductForm() *ProductForm {
	return &ProductForm{
		values: make(map[Field]string),
		errs:   make(map[Field]string),
	}
}

// ProductFormFrom prefills a form for editing p.
func ProductFormFrom(p entity.Product) *ProductForm {
	f := NewProductForm()
	f.values[FieldTitle] = p.ProductName
	f.values[FieldDescription] = p.Body
	f.values[FieldPrice] = p.Price.String()
	f.values[FieldQuantity] = strconv.Itoa(p.Quantity)
	f.values[FieldTag] = p.Tag.ID
	return f
}

// Set stores value and clears any error on field.
func (f *ProductForm) Set(field Field, value string) *ProductForm {
	f.values[field] = value
	delete(f.errs, field)
	return f
}

// Get returns the raw value of field.
func (f *ProductForm) Get(field Field) string {
	return f.values[field]
}

// Errors returns a copy of the field errors from the last validation.
func (f *ProductForm) Errors() map[Field]string {
	out := make(map[Field]string, len(f.errs))
	for k, v := range f.errs {
		out[k] = v
	}
	return out
}

// Error returns the error message for field, if any.
func (f *ProductForm) Error(field Field) string {
	return f.errs[field]
}

// Reset clears all values and errors.
func (f *ProductForm) Reset() {
	f.values = make(map[Field]string)
	f.errs = make(map[Field]string)
}

// Validate runs every rule and replaces the error map. It reports whether
// the form may be submitted.
func (f *ProductForm) Validate() bool {
	errs := make(map[Field]string)

	title := f.values[FieldTitle]
	switch {
	case formValidate.Var(strings.TrimSpace(title), "required") != nil:
		errs[FieldTitle] = "Title is required"
	case formValidate.Var(title, "min=3") != nil:
		errs[FieldTitle] = "Title must be at least 3 characters"
	}

	description := f.values[FieldDescription]
	switch {
	case formValidate.Var(strings.TrimSpace(description), "required") != nil:
		errs[FieldDescription] = "Description is required"
	case formValidate.Var(description, "min=10") != nil:
		errs[FieldDescription] = "Description must be at least 10 characters"
	}

	price := strings.TrimSpace(f.values[FieldPrice])
	if formValidate.Var(price, "required") != nil {
		errs[FieldPrice] = "Price is required"
	} else if d, err := decimal.NewFromString(price); err != nil {
		errs[FieldPrice] = "Price must be a valid number"
	} else if !d.IsPositive() {
		errs[FieldPrice] = "Price must be greater than 0"
	}

	if quantity := strings.TrimSpace(f.values[FieldQuantity]); quantity != "" {
		if _, err := strconv.Atoi(quantity); formValidate.Var(quantity, "number") != nil || err != nil {
			errs[FieldQuantity] = "Quantity must be a whole number of at least 0"
		}
	}

	if formValidate.Var(f.values[FieldTag], "required") != nil {
		errs[FieldTag] = "Please select a tag"
	}

	f.errs = errs
	return len(errs) == 0
}

// Input validates and converts the form into the API payload.
func (f *ProductForm) Input() (entity.ProductInput, error) {
	if !f.Validate() {
		fields := make(map[string]string, len(f.errs))
		for k, v := range f.errs {
			fields[string(k)] = v
		}
		return entity.ProductInput{}, errors.Validation(fields)
	}

	price, _ := decimal.NewFromString(strings.TrimSpace(f.values[FieldPrice]))
	quantity := 0
	if q := strings.TrimSpace(f.values[FieldQuantity]); q != "" {
		quantity, _ = strconv.Atoi(q)
	}

	return entity.ProductInput{
		ProductName: f.values[FieldTitle],
		Body:        f.values[FieldDescription],
		Price:       price,
		Quantity:    quantity,
		TagID:       f.values[FieldTag],
	}, nil
}
