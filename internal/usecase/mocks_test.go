package usecase

import (
	"context"
	"sync"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

type mockAuthRepo struct {
	mock.Mock
}

func (m *mockAuthRepo) Me(ctx context.Context) (*entity.Identity, error) {
	args := m.Called(ctx)
	identity, _ := args.Get(0).(*entity.Identity)
	return identity, args.Error(1)
}

func (m *mockAuthRepo) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *mockAuthRepo) Logout(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockAuthRepo) Register(ctx context.Context, role entity.Role, input repository.Registration) (string, error) {
	args := m.Called(ctx, role, input)
	return args.String(0), args.Error(1)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) ListSellerProducts(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]entity.Product)
	return products, args.Error(1)
}

func (m *mockProductRepo) GetSellerProduct(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*entity.Product)
	return product, args.Error(1)
}

func (m *mockProductRepo) Create(ctx context.Context, input entity.ProductInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *mockProductRepo) CreateWithImages(ctx context.Context, input entity.ProductInput, images []entity.ImageFile) (string, error) {
	args := m.Called(ctx, input, images)
	return args.String(0), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, id string, input entity.ProductInput) (string, error) {
	args := m.Called(ctx, id, input)
	return args.String(0), args.Error(1)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *mockProductRepo) ListCatalog(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]entity.Product)
	return products, args.Error(1)
}

type mockCartRepo struct {
	mock.Mock
}

func (m *mockCartRepo) Get(ctx context.Context) ([]entity.CartItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]entity.CartItem)
	return items, args.Error(1)
}

func (m *mockCartRepo) Add(ctx context.Context, productID string, quantity int) (string, error) {
	args := m.Called(ctx, productID, quantity)
	return args.String(0), args.Error(1)
}

func (m *mockCartRepo) UpdateQuantity(ctx context.Context, itemID string, quantity int) (string, error) {
	args := m.Called(ctx, itemID, quantity)
	return args.String(0), args.Error(1)
}

func (m *mockCartRepo) Remove(ctx context.Context, itemID string) (string, error) {
	args := m.Called(ctx, itemID)
	return args.String(0), args.Error(1)
}

type mockTagRepo struct {
	mock.Mock
}

func (m *mockTagRepo) List(ctx context.Context, source repository.TagSource) ([]entity.Tag, error) {
	args := m.Called(ctx, source)
	tags, _ := args.Get(0).([]entity.Tag)
	return tags, args.Error(1)
}

type mockForgetter struct {
	mock.Mock
}

func (m *mockForgetter) ForgetCredentials(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// recordingNotifier keeps every toast in arrival order.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) lastSuccess() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.successes) == 0 {
		return ""
	}
	return n.successes[len(n.successes)-1]
}

func (n *recordingNotifier) lastError() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.errors) == 0 {
		return ""
	}
	return n.errors[len(n.errors)-1]
}
