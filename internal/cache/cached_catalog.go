package cache

import (
	"context"
	"errors"
	"log"

	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/catalog"
	"golang.org/x/sync/singleflight"
)

// CachedCatalog decorates a catalog with a cache-aside product lookup.
type CachedCatalog struct {
	inner catalog.Catalog
	cache ProductCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewCachedCatalog(inner catalog.Catalog, cache ProductCache) *CachedCatalog {
	return &CachedCatalog{
		inner: inner,
		cache: cache,
	}
}

func (c *CachedCatalog) GetProduct(ctx context.Context, productID string) (*catalog.Product, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := c.sfg.Do(productID, func() (interface{}, error) {

		product, err := c.cache.Get(ctx, productID)
		if err == nil {
			return product, nil // product is in cache
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err) // log cache error but continue
		}

		product, errGet := c.inner.GetProduct(ctx, productID)
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			errSet := c.cache.Set(context.Background(), productID, product)
			if errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return product, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*catalog.Product), nil
}

// Search is not cached: result sets are query shaped, not keyed by id.
func (c *CachedCatalog) Search(ctx context.Context, query string) ([]*catalog.Product, error) {
	return c.inner.Search(ctx, query)
}
