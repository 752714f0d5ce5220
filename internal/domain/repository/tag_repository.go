package repository

import (
	"context"

	"marketplace/internal/domain/entity"
)

// TagSource selects which lookup endpoint a tag list comes from.
type TagSource string

const (
	TagSourceSeller TagSource = "seller"
	TagSourceAll    TagSource = "all"
)

type TagRepository interface {
	List(ctx context.Context, source TagSource) ([]entity.Tag, error)
}
