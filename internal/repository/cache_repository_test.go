package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
)

func newCacheRepo(t *testing.T) (*CacheRepository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheRepository(client, nil), mr
}

func TestCacheRepositorySetGet(t *testing.T) {
	repo, mr := newCacheRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "catalog:courses", []string{"Go", "Rust"}, time.Minute))
	var out []string
	require.NoError(t, repo.Get(ctx, "catalog:courses", &out))
	assert.Equal(t, []string{"Go", "Rust"}, out)

	mr.FastForward(2 * time.Minute)
	err := repo.Get(ctx, "catalog:courses", &out)
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))
}

func TestCacheRepositoryDiscardsCorruptEntries(t *testing.T) {
	repo, mr := newCacheRepo(t)
	require.NoError(t, mr.Set("catalog:courses", "not-json"))

	var out []string
	err := repo.Get(context.Background(), "catalog:courses", &out)
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
	assert.False(t, mr.Exists("catalog:courses"))
}

func TestCacheRepositoryDeleteByPattern(t *testing.T) {
	repo, mr := newCacheRepo(t)
	require.NoError(t, mr.Set("catalog:courses", "[]"))
	require.NoError(t, mr.Set("catalog:categories", "[]"))
	require.NoError(t, mr.Set("other:key", "1"))

	removed, err := repo.DeleteByPattern(context.Background(), "catalog:*")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.True(t, mr.Exists("other:key"))
}

func TestCacheRepositoryNilClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	var out string
	assert.ErrorIs(t, repo.Get(context.Background(), "k", &out), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(context.Background(), "k", "v", time.Second))
	n, err := repo.DeleteByPattern(context.Background(), "*")
	assert.NoError(t, err)
	assert.Zero(t, n)
}
