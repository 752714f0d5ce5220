package usecase

import (
	"context"
	"sync"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/pkg/logger"
)

// TagStore holds the category lookup list used by product forms.
type TagStore struct {
	tagRepo repository.TagRepository

	mu   sync.RWMutex
	tags tracked[[]entity.Tag]
}

// NewTagStore creates a tag store with an idle slot.
func NewTagStore(tagRepo repository.TagRepository) *TagStore {
	return &TagStore{
		tagRepo: tagRepo,
		tags:    tracked[[]entity.Tag]{slot: newSlot[[]entity.Tag]()},
	}
}

// Snapshot returns a copy of the tag slot.
func (s *TagStore) Snapshot() Slot[[]entity.Tag] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.tags.slot
	out.Data = append([]entity.Tag(nil), out.Data...)
	return out
}

// FetchTags loads tags from source.
func (s *TagStore) FetchTags(ctx context.Context, source repository.TagSource) error {
	s.mu.Lock()
	seq := s.tags.begin()
	s.mu.Unlock()

	tags, err := s.tagRepo.List(ctx, source)
	if err != nil {
		logger.Warn().Err(err).Str("source", string(source)).Msg("fetch tags failed")
	}

	s.mu.Lock()
	s.tags.finish(seq, tags, err)
	s.mu.Unlock()
	return err
}

// Lookup finds a tag by id in the current list.
func (s *TagStore) Lookup(id string) (entity.Tag, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tags.slot.Data {
		if t.ID == id {
			return t, true
		}
	}
	return entity.Tag{}, false
}
