package cache

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	mu       sync.Mutex
	products map[string]*catalog.Product
	calls    int
}

func (s *stubCatalog) GetProduct(_ context.Context, productID string) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	p, ok := s.products[productID]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

func (s *stubCatalog) Search(context.Context, string) ([]*catalog.Product, error) {
	return nil, nil
}

type stubCache struct {
	mu       sync.Mutex
	products map[string]*catalog.Product
	getErr   error
	setCalls int
}

func newStubCache() *stubCache {
	return &stubCache{products: make(map[string]*catalog.Product)}
}

func (s *stubCache) Get(_ context.Context, productID string) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	p, ok := s.products[productID]
	if !ok {
		return nil, ErrCacheMiss
	}
	return p, nil
}

func (s *stubCache) Set(_ context.Context, productID string, product *catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	s.products[productID] = product
	return nil
}

func (s *stubCache) Delete(_ context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, productID)
	return nil
}

func TestCachedCatalog_CacheHitSkipsInner(t *testing.T) {
	inner := &stubCatalog{products: map[string]*catalog.Product{}}
	cache := newStubCache()
	cached := &catalog.Product{ID: "p1", Name: "Cached"}
	cache.products["p1"] = cached

	c := NewCachedCatalog(inner, cache)

	got, err := c.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Same(t, cached, got)
	assert.Equal(t, 0, inner.calls)
}

func TestCachedCatalog_MissFallsThroughToInner(t *testing.T) {
	product := &catalog.Product{ID: "p1", Name: "Fresh"}
	inner := &stubCatalog{products: map[string]*catalog.Product{"p1": product}}
	cache := newStubCache()

	c := NewCachedCatalog(inner, cache)

	got, err := c.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Same(t, product, got)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedCatalog_CacheErrorIsNotFatal(t *testing.T) {
	product := &catalog.Product{ID: "p1"}
	inner := &stubCatalog{products: map[string]*catalog.Product{"p1": product}}
	cache := newStubCache()
	cache.getErr = errors.New("redis down")

	c := NewCachedCatalog(inner, cache)

	got, err := c.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Same(t, product, got)
}

func TestCachedCatalog_InnerErrorPropagates(t *testing.T) {
	inner := &stubCatalog{products: map[string]*catalog.Product{}}

	c := NewCachedCatalog(inner, newStubCache())

	_, err := c.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}
