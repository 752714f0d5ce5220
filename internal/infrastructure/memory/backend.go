package memory

import (
	"strings"
	"sync"

	"marketplace/internal/domain/entity"
	"marketplace/pkg/errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	identity     entity.Identity
	passwordHash []byte
}

type storedProduct struct {
	product  entity.Product
	sellerID string
}

type cartLine struct {
	id        string
	userID    string
	productID string
	quantity  int
}

// Backend is the in-memory state behind the stub marketplace API. It is
// safe for concurrent use.
type Backend struct {
	mu       sync.RWMutex
	accounts map[string]*account
	byEmail  map[string]string
	sessions map[string]string
	products map[string]*storedProduct
	order    []string
	tags     []entity.Tag
	cart     map[string]*cartLine
	cartSeq  []string
	images   map[string][]byte
	newID    func() string
}

var DefaultTags = []string{"Electronics", "Accessories", "Home", "Books", "Clothing"}

// NewBackend creates a backend seeded with the default tags.
func NewBackend() *Backend {
	b := &Backend{
		accounts: make(map[string]*account),
		byEmail:  make(map[string]string),
		sessions: make(map[string]string),
		products: make(map[string]*storedProduct),
		cart:     make(map[string]*cartLine),
		images:   make(map[string][]byte),
		newID:    func() string { return uuid.New().String() },
	}
	for _, name := range DefaultTags {
		b.tags = append(b.tags, entity.Tag{ID: b.newID(), Name: name})
	}
	return b
}

// Register creates an account with a bcrypt-hashed password.
func (b *Backend) Register(role entity.Role, email, firstName, lastName, password string) (entity.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return entity.Identity{}, errors.Internal("Failed to register", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.byEmail[email]; exists {
		return entity.Identity{}, errors.Conflict("Email already in use")
	}

	identity := entity.Identity{
		ID:        b.newID(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
	}
	b.accounts[identity.ID] = &account{identity: identity, passwordHash: hash}
	b.byEmail[email] = identity.ID
	return identity, nil
}

// Authenticate checks credentials and opens a session.
func (b *Backend) Authenticate(email, password string) (string, entity.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	b.mu.RLock()
	id, ok := b.byEmail[email]
	var acc *account
	if ok {
		acc = b.accounts[id]
	}
	b.mu.RUnlock()

	if acc == nil || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
		return "", entity.Identity{}, errors.Unauthorized("Invalid credentials", nil)
	}

	sessionID := b.newID()
	b.mu.Lock()
	b.sessions[sessionID] = acc.identity.ID
	b.mu.Unlock()
	return sessionID, acc.identity, nil
}

// SessionUser returns the identity behind sessionID.
func (b *Backend) SessionUser(sessionID string) (entity.Identity, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	uid, ok := b.sessions[sessionID]
	if !ok {
		return entity.Identity{}, false
	}
	acc, ok := b.accounts[uid]
	if !ok {
		return entity.Identity{}, false
	}
	return acc.identity, true
}

func (b *Backend) EndSession(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessions, sessionID)
}

func (b *Backend) Tags() []entity.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]entity.Tag(nil), b.tags...)
}

func (b *Backend) tagLocked(id string) (entity.Tag, bool) {
	for _, t := range b.tags {
		if t.ID == id {
			return t, true
		}
	}
	return entity.Tag{}, false
}

// StoreImage keeps an uploaded image and returns the key it is served under.
func (b *Backend) StoreImage(filename string, data []byte) string {
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = strings.ToLower(filename[i:])
	}
	key := "products/" + b.newID() + ext

	b.mu.Lock()
	b.images[key] = append([]byte(nil), data...)
	b.mu.Unlock()
	return key
}

func (b *Backend) Image(key string) ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.images[key]
	return data, ok
}

// CreateProduct adds a product owned by sellerID.
func (b *Backend) CreateProduct(sellerID string, input entity.ProductInput, imageKeys []string) (entity.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tag, ok := b.tagLocked(input.TagID)
	if !ok {
		return entity.Product{}, errors.BadRequest("Unknown tag", nil)
	}

	product := entity.Product{
		ID:          b.newID(),
		ProductName: input.ProductName,
		Body:        input.Body,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Tag:         tag,
		ImageURLs:   append([]string{}, imageKeys...),
	}
	b.products[product.ID] = &storedProduct{product: product, sellerID: sellerID}
	b.order = append(b.order, product.ID)
	return product.Clone(), nil
}

func (b *Backend) SellerProducts(sellerID string) []entity.Product {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]entity.Product, 0)
	for _, id := range b.order {
		if sp := b.products[id]; sp.sellerID == sellerID {
			out = append(out, sp.product.Clone())
		}
	}
	return out
}

func (b *Backend) SellerProduct(sellerID, id string) (entity.Product, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	sp, ok := b.products[id]
	if !ok || sp.sellerID != sellerID {
		return entity.Product{}, errors.NotFound("Product", nil)
	}
	return sp.product.Clone(), nil
}

// UpdateProduct replaces a product owned by sellerID.
func (b *Backend) UpdateProduct(sellerID, id string, input entity.ProductInput) (entity.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sp, ok := b.products[id]
	if !ok || sp.sellerID != sellerID {
		return entity.Product{}, errors.NotFound("Product", nil)
	}
	tag, ok := b.tagLocked(input.TagID)
	if !ok {
		return entity.Product{}, errors.BadRequest("Unknown tag", nil)
	}

	sp.product.ProductName = input.ProductName
	sp.product.Body = input.Body
	sp.product.Price = input.Price
	sp.product.Quantity = input.Quantity
	sp.product.Tag = tag
	return sp.product.Clone(), nil
}

// DeleteProduct removes a product and any cart lines pointing at it.
func (b *Backend) DeleteProduct(sellerID, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	sp, ok := b.products[id]
	if !ok || sp.sellerID != sellerID {
		return errors.NotFound("Product", nil)
	}
	delete(b.products, id)
	b.order = removeID(b.order, id)

	for lineID, line := range b.cart {
		if line.productID == id {
			delete(b.cart, lineID)
			b.cartSeq = removeID(b.cartSeq, lineID)
		}
	}
	return nil
}

// Catalog lists every product, newest last.
func (b *Backend) Catalog() []entity.Product {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]entity.Product, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.products[id].product.Clone())
	}
	return out
}

// AddToCart merges into an existing line for the same product.
func (b *Backend) AddToCart(userID, productID string, quantity int) (entity.CartItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sp, ok := b.products[productID]
	if !ok {
		return entity.CartItem{}, errors.NotFound("Product", nil)
	}

	for _, lineID := range b.cartSeq {
		line := b.cart[lineID]
		if line.userID == userID && line.productID == productID {
			if line.quantity+quantity > sp.product.Quantity {
				return entity.CartItem{}, errors.BadRequest("Not enough stock", nil)
			}
			line.quantity += quantity
			return b.itemLocked(line), nil
		}
	}

	if quantity < 1 || quantity > sp.product.Quantity {
		return entity.CartItem{}, errors.BadRequest("Not enough stock", nil)
	}

	line := &cartLine{id: b.newID(), userID: userID, productID: productID, quantity: quantity}
	b.cart[line.id] = line
	b.cartSeq = append(b.cartSeq, line.id)
	return b.itemLocked(line), nil
}

func (b *Backend) Cart(userID string) []entity.CartItem {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]entity.CartItem, 0)
	for _, lineID := range b.cartSeq {
		if line := b.cart[lineID]; line.userID == userID {
			out = append(out, b.itemLocked(line))
		}
	}
	return out
}

// UpdateCart sets a line quantity within [1, stock].
func (b *Backend) UpdateCart(userID, itemID string, quantity int) (entity.CartItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	line, ok := b.cart[itemID]
	if !ok || line.userID != userID {
		return entity.CartItem{}, errors.NotFound("Cart item", nil)
	}
	if quantity < 1 || quantity > b.products[line.productID].product.Quantity {
		return entity.CartItem{}, errors.BadRequest("Quantity out of range", nil)
	}
	line.quantity = quantity
	return b.itemLocked(line), nil
}

func (b *Backend) RemoveFromCart(userID, itemID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	line, ok := b.cart[itemID]
	if !ok || line.userID != userID {
		return errors.NotFound("Cart item", nil)
	}
	delete(b.cart, itemID)
	b.cartSeq = removeID(b.cartSeq, itemID)
	return nil
}

func (b *Backend) itemLocked(line *cartLine) entity.CartItem {
	return entity.CartItem{
		ID:       line.id,
		Quantity: line.quantity,
		Product:  b.products[line.productID].product.Clone(),
		Owner:    b.accounts[line.userID].identity,
	}
}

// TagIDByName is a convenience for seeding and tests.
func (b *Backend) TagIDByName(name string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, t := range b.tags {
		if t.Name == name {
			return t.ID
		}
	}
	return ""
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
