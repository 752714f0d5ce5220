package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"marketplace/internal/adapter/api"
	"marketplace/internal/adapter/repository"
	"marketplace/internal/adapter/view"
	"marketplace/internal/domain/entity"
	"marketplace/internal/infrastructure/credentials"
	"marketplace/internal/infrastructure/gateway"
	"marketplace/internal/infrastructure/memory"
	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, server *api.Server, store credentials.Store) (*app, *bytes.Buffer) {
	t.Helper()
	ts := httptest.NewServer(server.Echo)
	t.Cleanup(ts.Close)

	ctx := context.Background()
	gw, err := gateway.New(ctx, ts.URL, gateway.WithCredentials(store))
	require.NoError(t, err)

	sessions := usecase.NewSessionStore(repository.NewAPIAuthRepository(gw), nil, usecase.WithCredentialForgetter(gw))
	pages := view.NewPages(
		sessions,
		usecase.NewProductStore(repository.NewAPIProductRepository(gw), nil),
		usecase.NewCartStore(repository.NewAPICartRepository(gw), nil),
		usecase.NewTagStore(repository.NewAPITagRepository(gw)),
	)
	sessions.ProbeIdentity(ctx)

	out := &bytes.Buffer{}
	return &app{pages: pages, sessions: sessions, out: out}, out
}

func TestDispatchUnknownCommand(t *testing.T) {
	a, _ := newApp(t, api.NewServer(memory.NewBackend()), credentials.NewMemory())
	assert.ErrorIs(t, dispatch(context.Background(), a, []string{"bogus"}), errUsage)
	assert.ErrorIs(t, dispatch(context.Background(), a, []string{"seller", "show"}), errUsage)
	assert.ErrorIs(t, dispatch(context.Background(), a, []string{"cart", "set", "c1", "x"}), errUsage)
}

func TestSessionAcrossInvocations(t *testing.T) {
	server := api.NewServer(memory.NewBackend())
	store := credentials.NewMemory()
	ctx := context.Background()

	a, out := newApp(t, server, store)
	require.NoError(t, dispatch(ctx, a, []string{
		"register", "seller", "-email", "s@example.com", "-first", "Sam", "-last", "Seller", "-password", "secret1",
	}))
	require.NoError(t, dispatch(ctx, a, []string{"login", "-email", "s@example.com", "-password", "secret1"}))
	assert.Contains(t, out.String(), "Signed in as Sam Seller")

	next, out := newApp(t, server, store)
	require.NoError(t, dispatch(ctx, next, []string{"whoami"}))
	assert.Contains(t, out.String(), "Sam Seller <s@example.com> SELLER")

	err := dispatch(ctx, next, []string{"cart"})
	target, ok := view.IsRedirect(err)
	require.True(t, ok)
	assert.Equal(t, usecase.AreaSeller, target)
}

func TestSellerAddAndEdit(t *testing.T) {
	server := api.NewServer(memory.NewBackend())
	seller, err := server.Backend.Register(entity.RoleSeller, "s@example.com", "Sam", "Seller", "secret1")
	require.NoError(t, err)
	ctx := context.Background()

	a, out := newApp(t, server, credentials.NewMemory())
	require.NoError(t, dispatch(ctx, a, []string{"login", "-email", "s@example.com", "-password", "secret1"}))

	tag := server.Backend.TagIDByName("Books")
	require.NoError(t, dispatch(ctx, a, []string{
		"seller", "add", "-title", "Field Guide", "-description", "Birds of the northern coast", "-price", "18.00", "-quantity", "4", "-tag", tag,
	}))

	products := server.Backend.SellerProducts(seller.ID)
	require.Len(t, products, 1)

	require.NoError(t, dispatch(ctx, a, []string{"seller", "edit", products[0].ID, "-price", "15.5"}))
	updated := server.Backend.SellerProducts(seller.ID)[0]
	assert.Equal(t, "15.5", updated.Price.String())
	assert.Equal(t, 4, updated.Quantity)
	assert.Equal(t, "Field Guide", updated.ProductName)

	out.Reset()
	require.NoError(t, dispatch(ctx, a, []string{"seller", "products", "-limit", "5"}))
	assert.Contains(t, out.String(), "$15.50")
}

func TestFlagField(t *testing.T) {
	assert.Equal(t, usecase.FieldTag, flagField("tag"))
	assert.Equal(t, usecase.Field(""), flagField("image"))
}
