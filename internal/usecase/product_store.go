package usecase

import (
	"context"
	"sync"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/pkg/errors"
	"marketplace/pkg/logger"
)

// ProductState is a snapshot of every product slot.
type ProductState struct {
	// Products is the signed-in seller's catalog.
	Products Slot[[]entity.Product]
	// Product is the single product detail view.
	Product Slot[*entity.Product]
	// Catalog is the buyer-facing product list.
	Catalog Slot[[]entity.Product]
}

// ProductStore mirrors the seller catalog, one product detail and the buyer
// catalog. Mutations never patch local state; they resync the collection
// from the server on success and leave it untouched on failure.
type ProductStore struct {
	productRepo repository.ProductRepository
	notifier    Notifier

	mu       sync.RWMutex
	products tracked[[]entity.Product]
	product  tracked[*entity.Product]
	catalog  tracked[[]entity.Product]
	subs     hub[ProductState]
}

// NewProductStore creates a product store with idle slots.
func NewProductStore(productRepo repository.ProductRepository, notifier Notifier) *ProductStore {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ProductStore{
		productRepo: productRepo,
		notifier:    notifier,
		products:    tracked[[]entity.Product]{slot: newSlot[[]entity.Product]()},
		product:     tracked[*entity.Product]{slot: newSlot[*entity.Product]()},
		catalog:     tracked[[]entity.Product]{slot: newSlot[[]entity.Product]()},
	}
}

// Snapshot returns deep copies of all slots.
func (s *ProductStore) Snapshot() ProductState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for state changes and returns its cancel func.
func (s *ProductStore) Subscribe(fn func(ProductState)) func() {
	return s.subs.subscribe(fn)
}

// FetchProducts replaces the seller collection wholesale. On failure the
// previous collection stays in place and the status becomes failed.
func (s *ProductStore) FetchProducts(ctx context.Context) error {
	s.mu.Lock()
	seq := s.products.begin()
	s.mu.Unlock()
	s.emit()

	products, err := s.productRepo.ListSellerProducts(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("fetch seller products failed")
	}

	s.mu.Lock()
	applied := s.products.finish(seq, entity.CloneProducts(products), err)
	s.mu.Unlock()
	if applied {
		s.emit()
	}
	return err
}

// FetchProduct loads one seller product into the detail slot.
func (s *ProductStore) FetchProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	seq := s.product.begin()
	s.mu.Unlock()
	s.emit()

	product, err := s.productRepo.GetSellerProduct(ctx, id)
	if err != nil {
		logger.Warn().Err(err).Str("product_id", id).Msg("fetch product failed")
	}
	if product != nil {
		clone := product.Clone()
		product = &clone
	}

	s.mu.Lock()
	applied := s.product.finish(seq, product, err)
	s.mu.Unlock()
	if applied {
		s.emit()
	}
	return err
}

// FetchCatalog loads the buyer-facing product list.
func (s *ProductStore) FetchCatalog(ctx context.Context) error {
	s.mu.Lock()
	seq := s.catalog.begin()
	s.mu.Unlock()
	s.emit()

	products, err := s.productRepo.ListCatalog(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("fetch catalog failed")
	}

	s.mu.Lock()
	applied := s.catalog.finish(seq, entity.CloneProducts(products), err)
	s.mu.Unlock()
	if applied {
		s.emit()
	}
	return err
}

// CreateProduct validates form, submits it (as multipart when images are
// attached) and resyncs the collection. Validation failures never reach
// the network.
func (s *ProductStore) CreateProduct(ctx context.Context, form *ProductForm, images []entity.ImageFile) error {
	input, err := form.Input()
	if err != nil {
		return err
	}

	var msg string
	if len(images) > 0 {
		msg, err = s.productRepo.CreateWithImages(ctx, input, images)
	} else {
		msg, err = s.productRepo.Create(ctx, input)
	}
	if err != nil {
		logger.Warn().Err(err).Str("product_name", input.ProductName).Msg("create product failed")
		s.notifier.Error("Failed to add product. Please try again.")
		return err
	}

	s.notifier.Success(orDefault(msg, "Product added successfully"))
	s.resync(ctx)
	return nil
}

// UpdateProduct validates form, submits it and resyncs the collection.
func (s *ProductStore) UpdateProduct(ctx context.Context, id string, form *ProductForm) error {
	if id == "" {
		return errors.BadRequest("Product id is required", nil)
	}
	input, err := form.Input()
	if err != nil {
		return err
	}

	msg, err := s.productRepo.Update(ctx, id, input)
	if err != nil {
		logger.Warn().Err(err).Str("product_id", id).Msg("update product failed")
		s.notifier.Error("Failed to update product. Please try again.")
		return err
	}

	s.notifier.Success(orDefault(msg, "Product updated successfully"))
	s.resync(ctx)
	return nil
}

// DeleteProduct removes a product and resyncs the collection.
func (s *ProductStore) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return errors.BadRequest("Product id is required", nil)
	}

	msg, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		logger.Warn().Err(err).Str("product_id", id).Msg("delete product failed")
		s.notifier.Error("Failed to delete product. Please try again.")
		return err
	}

	s.notifier.Success(orDefault(msg, "Product deleted successfully"))
	s.resync(ctx)
	return nil
}

// resync refetches the collection after a confirmed mutation. A failed
// refetch is recorded in the slot status, not reported as a failed mutation.
func (s *ProductStore) resync(ctx context.Context) {
	_ = s.FetchProducts(ctx)
}

func (s *ProductStore) emit() {
	s.subs.publish(s.Snapshot())
}

func (s *ProductStore) snapshotLocked() ProductState {
	products := s.products.slot
	products.Data = entity.CloneProducts(products.Data)

	product := s.product.slot
	if product.Data != nil {
		clone := product.Data.Clone()
		product.Data = &clone
	}

	catalog := s.catalog.slot
	catalog.Data = entity.CloneProducts(catalog.Data)

	return ProductState{
		Products: products,
		Product:  product,
		Catalog:  catalog,
	}
}
