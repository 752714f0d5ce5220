package usecase

import (
	"context"
	"testing"

	"marketplace/internal/domain/entity"
	"marketplace/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []entity.Product {
	return []entity.Product{
		{ID: "p1", ProductName: "Lamp", Price: decimal.NewFromInt(20), Quantity: 2},
		{ID: "p2", ProductName: "Mug", Price: decimal.NewFromInt(5), Quantity: 0},
	}
}

func TestFetchProducts(t *testing.T) {
	ctx := context.Background()
	repo := new(mockProductRepo)
	store := NewProductStore(repo, nil)
	assert.Equal(t, entity.StatusIdle, store.Snapshot().Products.Status)

	repo.On("ListSellerProducts", mock.Anything).Return(sampleProducts(), nil).Twice()
	require.NoError(t, store.FetchProducts(ctx))
	first := store.Snapshot().Products
	require.NoError(t, store.FetchProducts(ctx))
	second := store.Snapshot().Products

	assert.Equal(t, entity.StatusReady, second.Status)
	assert.Equal(t, first.Data, second.Data)

	repo.On("ListSellerProducts", mock.Anything).Return(nil, errors.FromStatus(500, "")).Once()
	assert.Error(t, store.FetchProducts(ctx))

	stale := store.Snapshot().Products
	assert.Equal(t, entity.StatusFailed, stale.Status)
	assert.Error(t, stale.Err)
	assert.Equal(t, first.Data, stale.Data)
}

func TestFetchProductAndCatalogAreIndependent(t *testing.T) {
	ctx := context.Background()
	repo := new(mockProductRepo)
	store := NewProductStore(repo, nil)

	p := sampleProducts()[0]
	repo.On("GetSellerProduct", mock.Anything, "p1").Return(&p, nil).Once()
	repo.On("ListCatalog", mock.Anything).Return(nil, errors.FromStatus(503, "")).Once()

	require.NoError(t, store.FetchProduct(ctx, "p1"))
	assert.Error(t, store.FetchCatalog(ctx))

	state := store.Snapshot()
	require.NotNil(t, state.Product.Data)
	assert.Equal(t, "Lamp", state.Product.Data.ProductName)
	assert.Equal(t, entity.StatusReady, state.Product.Status)
	assert.Equal(t, entity.StatusFailed, state.Catalog.Status)
	assert.Equal(t, entity.StatusIdle, state.Products.Status)

	// Snapshots are copies.
	state.Product.Data.ProductName = "changed"
	assert.Equal(t, "Lamp", store.Snapshot().Product.Data.ProductName)
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid form never reaches the API", func(t *testing.T) {
		repo := new(mockProductRepo)
		store := NewProductStore(repo, nil)
		err := store.CreateProduct(ctx, NewProductForm(), nil)
		assert.True(t, errors.IsValidation(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("json create resyncs", func(t *testing.T) {
		repo := new(mockProductRepo)
		notifier := &recordingNotifier{}
		store := NewProductStore(repo, notifier)
		repo.On("Create", mock.Anything, mock.AnythingOfType("entity.ProductInput")).Return("", nil).Once()
		repo.On("ListSellerProducts", mock.Anything).Return(sampleProducts(), nil).Once()

		require.NoError(t, store.CreateProduct(ctx, validForm(), nil))
		assert.Equal(t, "Product added successfully", notifier.lastSuccess())
		assert.Len(t, store.Snapshot().Products.Data, 2)
		repo.AssertExpectations(t)
	})

	t.Run("images use multipart", func(t *testing.T) {
		repo := new(mockProductRepo)
		store := NewProductStore(repo, nil)
		images := []entity.ImageFile{{Name: "a.png", Data: []byte{1}}}
		repo.On("CreateWithImages", mock.Anything, mock.Anything, images).Return("Created", nil).Once()
		repo.On("ListSellerProducts", mock.Anything).Return(sampleProducts(), nil).Once()

		require.NoError(t, store.CreateProduct(ctx, validForm(), images))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("failure leaves collection untouched", func(t *testing.T) {
		repo := new(mockProductRepo)
		notifier := &recordingNotifier{}
		store := NewProductStore(repo, notifier)
		repo.On("ListSellerProducts", mock.Anything).Return(sampleProducts(), nil).Once()
		require.NoError(t, store.FetchProducts(ctx))

		repo.On("Create", mock.Anything, mock.Anything).Return("", errors.FromStatus(500, "")).Once()
		assert.Error(t, store.CreateProduct(ctx, validForm(), nil))
		assert.Equal(t, "Failed to add product. Please try again.", notifier.lastError())
		assert.Len(t, store.Snapshot().Products.Data, 2)
		repo.AssertNumberOfCalls(t, "ListSellerProducts", 1)
	})
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	ctx := context.Background()
	repo := new(mockProductRepo)
	notifier := &recordingNotifier{}
	store := NewProductStore(repo, notifier)

	repo.On("Update", mock.Anything, "p1", mock.Anything).Return("Saved", nil).Once()
	repo.On("Delete", mock.Anything, "p2").Return("", errors.FromStatus(404, "Product not found")).Once()
	repo.On("Delete", mock.Anything, "p1").Return("", nil).Once()
	repo.On("ListSellerProducts", mock.Anything).Return(sampleProducts()[1:], nil)

	require.NoError(t, store.UpdateProduct(ctx, "p1", validForm()))
	assert.Equal(t, "Saved", notifier.lastSuccess())

	assert.Error(t, store.DeleteProduct(ctx, "p2"))
	assert.Equal(t, "Failed to delete product. Please try again.", notifier.lastError())

	require.NoError(t, store.DeleteProduct(ctx, "p1"))
	assert.Equal(t, "Product deleted successfully", notifier.lastSuccess())
	repo.AssertNumberOfCalls(t, "ListSellerProducts", 2)

	assert.True(t, errors.Is(store.DeleteProduct(ctx, ""), errors.CodeBadRequest))
}

func TestStaleFetchIsDiscarded(t *testing.T) {
	repo := new(mockProductRepo)
	store := NewProductStore(repo, nil)

	release := make(chan struct{})
	started := make(chan struct{})
	repo.On("ListSellerProducts", mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return([]entity.Product{{ID: "old"}}, nil).Once()
	repo.On("ListSellerProducts", mock.Anything).Return([]entity.Product{{ID: "new"}}, nil).Once()

	done := make(chan error)
	go func() { done <- store.FetchProducts(context.Background()) }()
	<-started

	require.NoError(t, store.FetchProducts(context.Background()))
	close(release)
	require.NoError(t, <-done)

	products := store.Snapshot().Products
	require.Len(t, products.Data, 1)
	assert.Equal(t, "new", products.Data[0].ID)
	assert.Equal(t, entity.StatusReady, products.Status)
}
