package cache

import (
	"context"
	"errors"

	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/catalog"
)

type ProductCache interface {
	Get(ctx context.Context, productID string) (*catalog.Product, error)
	Set(ctx context.Context, productID string, product *catalog.Product) error
	Delete(ctx context.Context, productID string) error
}

var ErrCacheMiss = errors.New("cache miss")
