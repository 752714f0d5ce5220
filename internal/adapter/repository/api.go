package repository

import (
	"context"
	"net/http"
	"net/url"

	domainrepo "marketplace/internal/domain/repository"
	"marketplace/internal/infrastructure/gateway"
)

var (
	_ domainrepo.AuthRepository    = (*APIAuthRepository)(nil)
	_ domainrepo.ProductRepository = (*APIProductRepository)(nil)
	_ domainrepo.CartRepository    = (*APICartRepository)(nil)
	_ domainrepo.TagRepository     = (*APITagRepository)(nil)
	_ Requester                    = (*gateway.Client)(nil)
)

// Requester is the slice of the gateway the repositories depend on.
type Requester interface {
	Do(ctx context.Context, method, path string, body, out interface{}) (*gateway.Reply, error)
	PostMultipart(ctx context.Context, path, jsonField string, jsonPart interface{}, fileField string, files []gateway.FilePart, out interface{}) (*gateway.Reply, error)
}

const (
	productPartField = "product"
	imageFileField   = "images"
)

func idPath(prefix, id string) string {
	return prefix + url.PathEscape(id)
}

func message(reply *gateway.Reply) string {
	if reply == nil {
		return ""
	}
	return reply.Message
}

func get(ctx context.Context, r Requester, path string, out interface{}) error {
	_, err := r.Do(ctx, http.MethodGet, path, nil, out)
	return err
}
