package handler

import (
	"marketplace/internal/infrastructure/memory"
	"marketplace/internal/infrastructure/ratelimit"
)

// Handlers groups every handler of the marketplace API.
type Handlers struct {
	Auth    *AuthHandler
	Product *ProductHandler
	Cart    *CartHandler
	Tag     *TagHandler
	Image   *ImageHandler
	Health  *HealthHandler
}

func Setup(backend *memory.Backend, limiter *ratelimit.RateLimiter) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(backend, limiter),
		Product: NewProductHandler(backend),
		Cart:    NewCartHandler(backend),
		Tag:     NewTagHandler(backend),
		Image:   NewImageHandler(backend),
		Health:  NewHealthHandler(),
	}
}
