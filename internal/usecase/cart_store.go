package usecase

import (
	"context"
	"fmt"
	"sync"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/pkg/errors"
	"marketplace/pkg/logger"
)

// CartState is a snapshot of the cart slot and its in-flight lines.
type CartState struct {
	Items Slot[[]entity.CartItem]
	// Updating holds the ids of lines with a mutation in flight.
	Updating map[string]bool
}

// IsUpdating reports whether itemID has a mutation in flight.
func (c CartState) IsUpdating(itemID string) bool {
	return c.Updating[itemID]
}

// CartStore mirrors the buyer's cart. Adding resyncs from the server;
// quantity changes and removals patch the local line first and restore the
// captured pre-image if the server rejects them.
type CartStore struct {
	cartRepo repository.CartRepository
	notifier Notifier

	mu       sync.RWMutex
	items    tracked[[]entity.CartItem]
	updating map[string]bool
	subs     hub[CartState]
}

// NewCartStore creates a cart store with an idle slot.
func NewCartStore(cartRepo repository.CartRepository, notifier Notifier) *CartStore {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &CartStore{
		cartRepo: cartRepo,
		notifier: notifier,
		items:    tracked[[]entity.CartItem]{slot: newSlot[[]entity.CartItem]()},
		updating: make(map[string]bool),
	}
}

// Snapshot returns a copy of the cart state.
func (s *CartStore) Snapshot() CartState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for state changes and returns its cancel func.
func (s *CartStore) Subscribe(fn func(CartState)) func() {
	return s.subs.subscribe(fn)
}

// Totals is recomputed from the current snapshot on every call.
func (s *CartStore) Totals() entity.CartTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entity.ComputeTotals(s.items.slot.Data)
}

// FetchCart replaces the cart with the server copy. A failure keeps the previous lines.
func (s *CartStore) FetchCart(ctx context.Context) error {
	s.mu.Lock()
	seq := s.items.begin()
	s.mu.Unlock()
	s.emit()

	items, err := s.cartRepo.Get(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("fetch cart failed")
		s.notifier.Error("Failed to load cart")
	}

	s.mu.Lock()
	applied := s.items.finish(seq, entity.CloneCart(items), err)
	s.mu.Unlock()
	if applied {
		s.emit()
	}
	return err
}

// AddToCart rejects quantities outside [1, product.Quantity] before any
// network call, then resyncs the cart on success.
func (s *CartStore) AddToCart(ctx context.Context, product entity.Product, quantity int) error {
	if quantity < 1 {
		return errors.Validation(map[string]string{"quantity": "Quantity must be at least 1"})
	}
	if quantity > product.Quantity {
		return errors.Validation(map[string]string{
			"quantity": fmt.Sprintf("Only %d available", product.Quantity),
		})
	}

	msg, err := s.cartRepo.Add(ctx, product.ID, quantity)
	if err != nil {
		logger.Warn().Err(err).Str("product_id", product.ID).Int("quantity", quantity).Msg("add to cart failed")
		s.notifier.Error("Failed to add product to cart.")
		return err
	}

	s.notifier.Success(orDefault(msg, "Product added to cart successfully!"))
	_ = s.FetchCart(ctx)
	return nil
}

// UpdateQuantity sets a line's quantity. Values below 1 are ignored without
// touching the network.
func (s *CartStore) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity < 1 {
		return nil
	}

	s.mu.Lock()
	idx := s.indexLocked(itemID)
	if idx < 0 {
		s.mu.Unlock()
		return errors.NotFound("Cart item", nil)
	}
	if s.updating[itemID] {
		s.mu.Unlock()
		return errors.Conflict("Cart item is already being updated")
	}
	line := s.items.slot.Data[idx]
	if quantity > line.Product.Quantity {
		s.mu.Unlock()
		return errors.Validation(map[string]string{
			"quantity": fmt.Sprintf("Only %d available", line.Product.Quantity),
		})
	}
	previous := line.Quantity
	s.items.slot.Data[idx].Quantity = quantity
	s.updating[itemID] = true
	s.mu.Unlock()
	s.emit()

	msg, err := s.cartRepo.UpdateQuantity(ctx, itemID, quantity)

	s.mu.Lock()
	delete(s.updating, itemID)
	if err != nil {
		// Restore only if nothing has replaced our patch in the meantime.
		if i := s.indexLocked(itemID); i >= 0 && s.items.slot.Data[i].Quantity == quantity {
			s.items.slot.Data[i].Quantity = previous
		}
	}
	s.mu.Unlock()
	s.emit()

	if err != nil {
		logger.Warn().Err(err).Str("item_id", itemID).Int("quantity", quantity).Msg("update cart failed, rolled back")
		s.notifier.Error("Failed to update cart")
		return err
	}
	s.notifier.Success(orDefault(msg, "Cart updated"))
	return nil
}

// Increment and Decrement step a line by one within [1, stock]. At either
// bound they do nothing.
func (s *CartStore) Increment(ctx context.Context, itemID string) error {
	line, ok := s.line(itemID)
	if !ok {
		return errors.NotFound("Cart item", nil)
	}
	if !line.CanIncrement() {
		return nil
	}
	return s.UpdateQuantity(ctx, itemID, line.Quantity+1)
}

func (s *CartStore) Decrement(ctx context.Context, itemID string) error {
	line, ok := s.line(itemID)
	if !ok {
		return errors.NotFound("Cart item", nil)
	}
	if !line.CanDecrement() {
		return nil
	}
	return s.UpdateQuantity(ctx, itemID, line.Quantity-1)
}

// RemoveItem drops the line locally, then asks the server. On failure the
// line goes back where it was.
func (s *CartStore) RemoveItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	idx := s.indexLocked(itemID)
	if idx < 0 {
		s.mu.Unlock()
		return errors.NotFound("Cart item", nil)
	}
	if s.updating[itemID] {
		s.mu.Unlock()
		return errors.Conflict("Cart item is already being updated")
	}
	removed := s.items.slot.Data[idx]
	data := s.items.slot.Data
	next := make([]entity.CartItem, 0, len(data)-1)
	next = append(next, data[:idx]...)
	next = append(next, data[idx+1:]...)
	s.items.slot.Data = next
	s.updating[itemID] = true
	s.mu.Unlock()
	s.emit()

	msg, err := s.cartRepo.Remove(ctx, itemID)

	s.mu.Lock()
	delete(s.updating, itemID)
	if err != nil && s.indexLocked(itemID) < 0 {
		data := s.items.slot.Data
		at := idx
		if at > len(data) {
			at = len(data)
		}
		restored := make([]entity.CartItem, 0, len(data)+1)
		restored = append(restored, data[:at]...)
		restored = append(restored, removed)
		restored = append(restored, data[at:]...)
		s.items.slot.Data = restored
	}
	s.mu.Unlock()
	s.emit()

	if err != nil {
		logger.Warn().Err(err).Str("item_id", itemID).Msg("remove cart item failed, rolled back")
		s.notifier.Error("Failed to remove item")
		return err
	}
	s.notifier.Success(orDefault(msg, "Item removed from cart"))
	return nil
}

func (s *CartStore) line(itemID string) (entity.CartItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexLocked(itemID)
	if idx < 0 {
		return entity.CartItem{}, false
	}
	return s.items.slot.Data[idx].Clone(), true
}

func (s *CartStore) indexLocked(itemID string) int {
	for i, item := range s.items.slot.Data {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func (s *CartStore) emit() {
	s.subs.publish(s.Snapshot())
}

func (s *CartStore) snapshotLocked() CartState {
	items := s.items.slot
	items.Data = entity.CloneCart(items.Data)

	updating := make(map[string]bool, len(s.updating))
	for k, v := range s.updating {
		updating[k] = v
	}
	return CartState{Items: items, Updating: updating}
}
