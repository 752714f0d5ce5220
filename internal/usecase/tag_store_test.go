package usecase

import (
	"context"
	"testing"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTagStore(t *testing.T) {
	ctx := context.Background()
	repo := new(mockTagRepo)
	store := NewTagStore(repo)

	repo.On("List", mock.Anything, repository.TagSourceSeller).Return([]entity.Tag{{ID: "t1", Name: "Home"}}, nil).Once()
	require.NoError(t, store.FetchTags(ctx, repository.TagSourceSeller))

	tag, ok := store.Lookup("t1")
	require.True(t, ok)
	assert.Equal(t, "Home", tag.Name)
	_, ok = store.Lookup("t9")
	assert.False(t, ok)

	repo.On("List", mock.Anything, repository.TagSourceAll).Return(nil, errors.FromStatus(403, "")).Once()
	assert.Error(t, store.FetchTags(ctx, repository.TagSourceAll))
	snapshot := store.Snapshot()
	assert.Equal(t, entity.StatusFailed, snapshot.Status)
	assert.Len(t, snapshot.Data, 1)
}
