package catalog

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Resolver maps an ISBN to its book record, or ErrNotFound.
type Resolver interface {
	Resolve(ctx context.Context, isbn string) (*Book, error)
}

// CachedResolver is a read-through LRU in front of the repository. Books are
// read-only for the session, so entries never need invalidation.
type CachedResolver struct {
	repo  *Repository
	cache *lru.Cache[string, *Book]
}

func NewCachedResolver(repo *Repository, size int) (*CachedResolver, error) {
	c, err := lru.New[string, *Book](size)
	if err != nil {
		return nil, err
	}
	return &CachedResolver{repo: repo, cache: c}, nil
}

func (r *CachedResolver) Resolve(ctx context.Context, isbn string) (*Book, error) {
	if b, ok := r.cache.Get(isbn); ok {
		return b, nil
	}
	b, err := r.repo.Get(ctx, isbn)
	if err != nil {
		return nil, err
	}
	r.cache.Add(isbn, b)
	return b, nil
}
