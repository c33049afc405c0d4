// Package catalog loads and serves the product catalog. The static JSON
// catalog is the fallback source when no remote commerce system is
// configured; product shapes follow schema.org so both sources map onto
// the same type.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/money"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNoPrice         = errors.New("product has no price")
)

type Offer struct {
	Price         string `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
}

type Product struct {
	ID          string   `json:"productID"`
	Name        string   `json:"name"`
	SKU         string   `json:"sku,omitempty"`
	Image       []string `json:"image,omitempty"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	Offers      *Offer   `json:"offers,omitempty"`
}

// UnitPriceCents parses the offer price into minor currency units.
// A product without a usable price is a hard error: no total can be
// computed from it.
func (p *Product) UnitPriceCents() (int64, error) {
	if p.Offers == nil || p.Offers.Price == "" {
		return 0, fmt.Errorf("product %s: %w", p.Name, ErrNoPrice)
	}
	major, err := strconv.ParseFloat(p.Offers.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("product %s has unparseable price %q: %w", p.Name, p.Offers.Price, err)
	}
	return money.Cents(major), nil
}

// ImageURL returns the first catalog image, or empty.
func (p *Product) ImageURL() string {
	if len(p.Image) > 0 {
		return p.Image[0]
	}
	return ""
}

// Catalog is the consumer-side product lookup contract.
type Catalog interface {
	GetProduct(ctx context.Context, productID string) (*Product, error)
	Search(ctx context.Context, query string) ([]*Product, error)
}

// StaticCatalog serves products loaded once from a JSON file.
type StaticCatalog struct {
	products map[string]*Product
	order    []string
}

// LoadStatic reads the products file and indexes it by product id.
func LoadStatic(path string) (*StaticCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read products file: %w", err)
	}

	var products []*Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse products file: %w", err)
	}

	c := &StaticCatalog{products: make(map[string]*Product, len(products))}
	for _, p := range products {
		c.products[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	log.Printf("Loaded %d products from %s", len(c.products), path)
	return c, nil
}

func (c *StaticCatalog) GetProduct(_ context.Context, productID string) (*Product, error) {
	p, ok := c.products[productID]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", productID, ErrProductNotFound)
	}
	return p, nil
}

// Search matches any query keyword against product name or category.
func (c *StaticCatalog) Search(_ context.Context, query string) ([]*Product, error) {
	keywords := strings.Fields(strings.ToLower(query))

	var results []*Product
	seen := make(map[string]bool)
	for _, keyword := range keywords {
		for _, id := range c.order {
			p := c.products[id]
			if seen[p.ID] {
				continue
			}
			if strings.Contains(strings.ToLower(p.Name), keyword) ||
				strings.Contains(strings.ToLower(p.Category), keyword) {
				seen[p.ID] = true
				results = append(results, p)
			}
		}
	}
	return results, nil
}
