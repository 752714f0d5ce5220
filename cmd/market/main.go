package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"marketplace/internal/adapter/repository"
	"marketplace/internal/adapter/view"
	"marketplace/internal/infrastructure/credentials"
	"marketplace/internal/infrastructure/gateway"
	"marketplace/internal/usecase"
	"marketplace/pkg/config"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/logger"
)

// consoleNotifier prints toasts on stderr so page output stays clean.
type consoleNotifier struct {
	w io.Writer
}

func (n consoleNotifier) Success(msg string) {
	fmt.Fprintf(n.w, "✓ %s\n", msg)
}

func (n consoleNotifier) Error(msg string) {
	fmt.Fprintf(n.w, "✗ %s\n", msg)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 2
	}
	logger.Init(logger.ParseEnvironment(cfg.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := credentialStore(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Str("store", cfg.CredentialStore).Msg("credential store unavailable")
		return 1
	}
	defer closeStore()

	gw, err := gateway.New(ctx, cfg.APIBaseURL, gateway.WithCredentials(store))
	if err != nil {
		logger.Error().Err(err).Str("url", cfg.APIBaseURL).Msg("invalid API base URL")
		return 2
	}

	notifier := consoleNotifier{w: os.Stderr}
	sessions := usecase.NewSessionStore(repository.NewAPIAuthRepository(gw), notifier, usecase.WithCredentialForgetter(gw))
	pages := view.NewPages(
		sessions,
		usecase.NewProductStore(repository.NewAPIProductRepository(gw), notifier),
		usecase.NewCartStore(repository.NewAPICartRepository(gw), notifier),
		usecase.NewTagStore(repository.NewAPITagRepository(gw)),
	)

	// Nothing renders until the session has been probed.
	sessions.ProbeIdentity(ctx)

	err = dispatch(ctx, &app{pages: pages, sessions: sessions, out: os.Stdout}, args)
	return exitCode(err)
}

func credentialStore(ctx context.Context, cfg *config.Config) (credentials.Store, func(), error) {
	switch cfg.CredentialStore {
	case "memory":
		return credentials.NewMemory(), func() {}, nil
	case "redis":
		client, err := credentials.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Warn().Err(err).Msg("closing redis client")
			}
		}
		return credentials.NewRedisStore(client, cfg.Redis.KeyPrefix, cfg.Profile), closeFn, nil
	case "file", "":
		return credentials.NewFileStore(cfg.CredentialFile), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown credential store %q", cfg.CredentialStore)
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if target, ok := view.IsRedirect(err); ok {
		fmt.Fprintf(os.Stderr, "Not available here; go to the %s area instead.\n", target)
		return 3
	}
	if errors.Is(err, errUsage) {
		return 2
	}
	if !apperrors.IsValidation(err) {
		logger.Debug().Err(err).Msg("command failed")
		fmt.Fprintln(os.Stderr, apperrors.MessageOf(err, err.Error()))
	}
	return 1
}
