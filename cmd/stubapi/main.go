package main

import (
	"context"
	"net/http"
	"os"

	"marketplace/internal/adapter/api"
	"marketplace/internal/domain/entity"
	"marketplace/internal/infrastructure/memory"
	"marketplace/pkg/config"
	"marketplace/pkg/logger"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	env := logger.ParseEnvironment(cfg.Environment)
	logger.Init(env)

	backend := memory.NewBackend()
	if !env.IsProduction() {
		seedDemo(backend)
	}

	server := api.NewServer(backend, api.WithRequestLog())

	go func() {
		logger.Info().Str("port", cfg.StubPort).Msg("starting marketplace API")
		if err := server.Echo.Start(":" + cfg.StubPort); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"echo": func(ctx context.Context) error {
				logger.Info().Msg("shutting down marketplace API")
				return server.Echo.Shutdown(ctx)
			},
		},
	)

	exitCode := <-wait
	logger.Info().Int("code", exitCode).Msg("marketplace API exited")
	os.Exit(exitCode)
}

// seedDemo creates one account per role and a few listings.
func seedDemo(backend *memory.Backend) {
	seller, err := backend.Register(entity.RoleSeller, "seller@example.com", "Demo", "Seller", "password")
	if err != nil {
		logger.Warn().Err(err).Msg("seed seller failed")
		return
	}
	if _, err := backend.Register(entity.RoleUser, "buyer@example.com", "Demo", "Buyer", "password"); err != nil {
		logger.Warn().Err(err).Msg("seed buyer failed")
	}

	listings := []entity.ProductInput{
		{ProductName: "Wireless Headphones", Body: "Over-ear, noise cancelling, 30 hour battery.", Price: decimal.RequireFromString("79.99"), Quantity: 5, TagID: backend.TagIDByName("Electronics")},
		{ProductName: "Leather Wallet", Body: "Slim bifold wallet in full grain leather.", Price: decimal.RequireFromString("49.99"), Quantity: 2, TagID: backend.TagIDByName("Accessories")},
		{ProductName: "Ceramic Mug", Body: "Stoneware mug, holds 350ml.", Price: decimal.RequireFromString("12.50"), Quantity: 0, TagID: backend.TagIDByName("Home")},
	}
	for _, input := range listings {
		if _, err := backend.CreateProduct(seller.ID, input, nil); err != nil {
			logger.Warn().Err(err).Str("product", input.ProductName).Msg("seed product failed")
		}
	}
	logger.Info().Int("products", len(listings)).Msg("seeded demo data")
}
