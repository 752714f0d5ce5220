package view

import (
	"context"
	"fmt"
	"io"

	"marketplace/internal/usecase"
	"marketplace/pkg/errors"
	"marketplace/pkg/utils"
)

func (p *Pages) BuyerCatalog(ctx context.Context, w io.Writer, page utils.PaginationParams) error {
	if err := p.guard(usecase.AreaBuyer); err != nil {
		return err
	}
	err := p.products.FetchCatalog(ctx)
	catalog := p.products.Snapshot().Catalog.Data
	if err != nil && len(catalog) == 0 {
		fmt.Fprintln(w, "Error loading products.")
		return err
	}
	if len(catalog) == 0 {
		fmt.Fprintln(w, "No Products Available")
		fmt.Fprintln(w, "There are currently no products listed. Check back soon for new items!")
		return nil
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tProduct\tPrice\tStock\tTag")
	for _, product := range utils.Paginate(catalog, page) {
		stock := fmt.Sprintf("%d", product.Quantity)
		if !product.InStock() {
			stock = "Out of Stock"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			product.ID,
			product.ProductName,
			utils.FormatMoney(product.Price),
			stock,
			product.TagLabel(),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Page %d of %d\n", page.Page, page.TotalPages(len(catalog)))
	return nil
}

// AddToCart looks the product up in the catalog so the stock bound is known
// before anything is sent.
func (p *Pages) AddToCart(ctx context.Context, w io.Writer, productID string, quantity int) error {
	if err := p.guard(usecase.AreaBuyer); err != nil {
		return err
	}
	if err := p.products.FetchCatalog(ctx); err != nil {
		fmt.Fprintln(w, "Error loading products.")
		return err
	}
	for _, product := range p.products.Snapshot().Catalog.Data {
		if product.ID != productID {
			continue
		}
		if err := p.cart.AddToCart(ctx, product, quantity); err != nil {
			writeFieldErrors(w, err)
			return err
		}
		return nil
	}
	fmt.Fprintln(w, "Product not found")
	return errors.NotFound("Product", nil)
}

func (p *Pages) Cart(ctx context.Context, w io.Writer) error {
	if err := p.guard(usecase.AreaBuyer); err != nil {
		return err
	}
	if err := p.cart.FetchCart(ctx); err != nil && len(p.cart.Snapshot().Items.Data) == 0 {
		return err
	}
	p.renderCart(w)
	return nil
}

func (p *Pages) CartIncrement(ctx context.Context, w io.Writer, itemID string) error {
	return p.cartAction(ctx, w, func() error { return p.cart.Increment(ctx, itemID) })
}

func (p *Pages) CartDecrement(ctx context.Context, w io.Writer, itemID string) error {
	return p.cartAction(ctx, w, func() error { return p.cart.Decrement(ctx, itemID) })
}

func (p *Pages) CartSetQuantity(ctx context.Context, w io.Writer, itemID string, quantity int) error {
	return p.cartAction(ctx, w, func() error { return p.cart.UpdateQuantity(ctx, itemID, quantity) })
}

func (p *Pages) CartRemove(ctx context.Context, w io.Writer, itemID string) error {
	return p.cartAction(ctx, w, func() error { return p.cart.RemoveItem(ctx, itemID) })
}

func (p *Pages) cartAction(ctx context.Context, w io.Writer, action func() error) error {
	if err := p.guard(usecase.AreaBuyer); err != nil {
		return err
	}
	if err := p.cart.FetchCart(ctx); err != nil {
		return err
	}
	if err := action(); err != nil {
		writeFieldErrors(w, err)
		p.renderCart(w)
		return err
	}
	p.renderCart(w)
	return nil
}

func (p *Pages) renderCart(w io.Writer) {
	items := p.cart.Snapshot().Items.Data
	if len(items) == 0 {
		fmt.Fprintln(w, "Your Cart is Empty")
		fmt.Fprintln(w, "Looks like you haven't added any items to your cart yet. Start shopping to fill it up!")
		return
	}

	fmt.Fprintln(w, "Shopping Cart")
	tw := newTable(w)
	fmt.Fprintln(tw, "Item\tProduct\tEach\tQty\tAmount")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			item.ID,
			item.Product.ProductName,
			utils.FormatMoney(item.Product.Price),
			item.Quantity,
			utils.FormatMoney(item.LineTotal()),
		)
	}
	_ = tw.Flush()

	totals := p.cart.Totals()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Order Summary")
	tw = newTable(w)
	fmt.Fprintf(tw, "Subtotal (%s)\t%s\n", utils.Pluralize(totals.ItemCount, "item"), utils.FormatMoney(totals.Subtotal))
	fmt.Fprintf(tw, "Marketplace Fee (2%%)\t%s\n", utils.FormatMoney(totals.Fee))
	fmt.Fprintf(tw, "Total\t%s\n", utils.FormatMoney(totals.Total))
	_ = tw.Flush()
}
