package langcache_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonia-catalog/harmonia/internal/entity/language"
	"github.com/harmonia-catalog/harmonia/internal/loader/langcache"
)

type countingRepo struct {
	calls atomic.Int32
	langs []*language.Language
}

func (r *countingRepo) ListLanguages(ctx context.Context) ([]*language.Language, error) {
	r.calls.Add(1)
	return r.langs, nil
}

func (r *countingRepo) GetLanguage(ctx context.Context, id int) (*language.Language, error) {
	for _, l := range r.langs {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func TestCache_Get_PopulatesOnFirstUse(t *testing.T) {
	repo := &countingRepo{langs: []*language.Language{
		{ID: 1, Code: "en", Name: "English"},
		{ID: 2, Code: "ja", Name: "Japanese"},
	}}
	cache := langcache.New(repo)

	l, err := cache.Get(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, "ja", l.Code)
	assert.Equal(t, int32(1), repo.calls.Load())
}

func TestCache_Get_MissingIDReturnsNil(t *testing.T) {
	repo := &countingRepo{langs: []*language.Language{{ID: 1, Code: "en", Name: "English"}}}
	cache := langcache.New(repo)

	l, err := cache.Get(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestCache_Get_ConcurrentFirstCallersLoadOnce(t *testing.T) {
	repo := &countingRepo{langs: []*language.Language{{ID: 1, Code: "en", Name: "English"}}}
	cache := langcache.New(repo)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Get(context.Background(), 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), repo.calls.Load())
}
