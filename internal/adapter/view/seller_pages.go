package view

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"
	"marketplace/pkg/logger"
	"marketplace/pkg/utils"

	"golang.org/x/sync/errgroup"
)

func (p *Pages) SellerHome(ctx context.Context, w io.Writer) error {
	if err := p.guard(usecase.AreaSeller); err != nil {
		return err
	}
	_ = p.products.FetchProducts(ctx)

	state := p.products.Snapshot().Products
	user := p.sessions.Snapshot().Session.User
	fmt.Fprintf(w, "Welcome back, %s\n\n", user.DisplayName())

	total := "-"
	if state.Status == entity.StatusReady || len(state.Data) > 0 {
		total = strconv.Itoa(len(state.Data))
	}
	inStock := 0
	for _, product := range state.Data {
		if product.InStock() {
			inStock++
		}
	}
	fmt.Fprintf(w, "Total Products: %s\n", total)
	fmt.Fprintf(w, "In Stock:       %d\n\n", inStock)
	fmt.Fprintln(w, "Quick actions")
	fmt.Fprintln(w, "  seller add        Add new product")
	fmt.Fprintln(w, "  seller products   Manage listings")
	return nil
}

// SellerProducts loads the seller catalog and the tag list side by side.
func (p *Pages) SellerProducts(ctx context.Context, w io.Writer, page utils.PaginationParams) error {
	if err := p.guard(usecase.AreaSeller); err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error {
		return p.products.FetchProducts(ctx)
	})
	g.Go(func() error {
		if err := p.tags.FetchTags(ctx, repository.TagSourceSeller); err != nil {
			logger.Debug().Err(err).Msg("tags unavailable, using product tag names")
		}
		return nil
	})
	fetchErr := g.Wait()

	state := p.products.Snapshot().Products
	if fetchErr != nil && len(state.Data) == 0 {
		fmt.Fprintln(w, "Error loading products.")
		return fetchErr
	}
	if len(state.Data) == 0 {
		fmt.Fprintln(w, "No products yet")
		fmt.Fprintln(w, "You haven't added any products. Create your first product to get started.")
		return nil
	}

	fmt.Fprintln(w, "Your Products")
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tProduct Name\tDescription\tPrice\tQuantity\tTag")
	for _, product := range utils.Paginate(state.Data, page) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			product.ID,
			product.ProductName,
			truncate(product.Body, 40),
			utils.FormatMoney(product.Price),
			product.Quantity,
			p.tagLabel(product),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Page %d of %d. A list of your products.\n", page.Page, page.TotalPages(len(state.Data)))
	if fetchErr != nil {
		fmt.Fprintln(w, "Showing the last loaded list; refreshing failed.")
	}
	return nil
}

func (p *Pages) tagLabel(product entity.Product) string {
	if product.Tag.Name == "" && product.Tag.ID != "" {
		if tag, ok := p.tags.Lookup(product.Tag.ID); ok {
			return tag.Name
		}
	}
	return product.TagLabel()
}

func (p *Pages) SellerProductDetail(ctx context.Context, w io.Writer, id string) error {
	if err := p.guard(usecase.AreaSeller); err != nil {
		return err
	}
	if err := p.products.FetchProduct(ctx, id); err != nil {
		fmt.Fprintln(w, "Unable to load product")
		return err
	}
	product := p.products.Snapshot().Product.Data
	if product == nil {
		fmt.Fprintln(w, "Product not found")
		return nil
	}

	body := product.Body
	if body == "" {
		body = "No description provided yet."
	}
	stock := "In Stock"
	if !product.InStock() {
		stock = "Out of Stock"
	}

	fmt.Fprintln(w, product.ProductName)
	fmt.Fprintln(w, body)
	fmt.Fprintln(w)
	tw := newTable(w)
	fmt.Fprintf(tw, "Price\t%s\n", utils.FormatMoney(product.Price))
	fmt.Fprintf(tw, "On hand\t%d units (%s)\n", product.Quantity, stock)
	fmt.Fprintf(tw, "Tag\t%s\n", product.TagLabel())
	fmt.Fprintf(tw, "Identifier\t%s\n", product.ID)
	for i, url := range product.ImageURLs {
		fmt.Fprintf(tw, "Image %d\t%s\n", i+1, url)
	}
	return tw.Flush()
}

func (p *Pages) AddProduct(ctx context.Context, w io.Writer, form *usecase.ProductForm, images []entity.ImageFile) error {
	if err := p.guard(usecase.AreaSeller); err != nil {
		return err
	}
	if err := p.products.CreateProduct(ctx, form, images); err != nil {
		writeFieldErrors(w, err)
		return err
	}
	return nil
}

// EditProduct loads the product, applies changes over its current values
// and submits the result.
func (p *Pages) EditProduct(ctx context.Context, w io.Writer, id string, changes map[usecase.Field]string) error {
	if err := p.guard(usecase.AreaSeller); err != nil {
		return err
	}
	if err := p.products.FetchProduct(ctx, id); err != nil {
		fmt.Fprintln(w, "Unable to load product")
		return err
	}
	product := p.products.Snapshot().Product.Data
	if product == nil {
		fmt.Fprintln(w, "Product not found")
		return nil
	}

	form := usecase.ProductFormFrom(*product)
	for field, value := range changes {
		form.Set(field, value)
	}
	if err := p.products.UpdateProduct(ctx, id, form); err != nil {
		writeFieldErrors(w, err)
		return err
	}
	return nil
}

func (p *Pages) DeleteProduct(ctx context.Context, w io.Writer, id string) error {
	if err := p.guard(usecase.AreaSeller); err != nil {
		return err
	}
	return p.products.DeleteProduct(ctx, id)
}
