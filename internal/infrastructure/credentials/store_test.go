package credentials

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"marketplace/pkg/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exercise(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	empty, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, store.Save(ctx, []*http.Cookie{{Name: "session_id", Value: "abc"}}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "session_id", loaded[0].Name)
	assert.Equal(t, "abc", loaded[0].Value)
	assert.Equal(t, "/", loaded[0].Path)

	require.NoError(t, store.Clear(ctx))
	cleared, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cleared)

	require.NoError(t, store.Clear(ctx))
}

func TestMemoryStore(t *testing.T) {
	exercise(t, NewMemory())
}

func TestFileStore(t *testing.T) {
	exercise(t, NewFileStore(filepath.Join(t.TempDir(), "nested", "cookies.json")))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), config.RedisConfig{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	exercise(t, NewRedisStore(client, "market:cookies:", "seller"))
}

func TestRedisStoreKeysByProfile(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), config.RedisConfig{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	seller := NewRedisStore(client, "p:", "seller")
	buyer := NewRedisStore(client, "p:", "buyer")

	require.NoError(t, seller.Save(ctx, []*http.Cookie{{Name: "session_id", Value: "s"}}))

	got, err := buyer.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.True(t, mr.Exists("p:seller"))
}

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), config.RedisConfig{URL: "not a url"})
	assert.Error(t, err)
}
