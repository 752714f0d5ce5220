package repository

import (
	"context"

	"marketplace/internal/domain/entity"
	domainrepo "marketplace/internal/domain/repository"
)

type APITagRepository struct {
	api Requester
}

// NewAPITagRepository creates a new tag repository
func NewAPITagRepository(api Requester) *APITagRepository {
	return &APITagRepository{api: api}
}

func (r *APITagRepository) List(ctx context.Context, source domainrepo.TagSource) ([]entity.Tag, error) {
	path := "/seller/getTags"
	if source == domainrepo.TagSourceAll {
		path = "/admin/tag/all"
	}
	var tags []entity.Tag
	if err := get(ctx, r.api, path, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
