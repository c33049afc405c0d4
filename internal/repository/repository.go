package repository

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/domain"
)

var ErrCheckoutNotFound = errors.New("checkout not found")

// DurableStore is the optional write-through sink behind the in-memory
// map. Implementations must round-trip the full checkout entity,
// including variant fields.
type DurableStore interface {
	LoadCheckout(ctx context.Context, checkoutID string) (*domain.Checkout, error)
	SaveCheckout(ctx context.Context, checkout *domain.Checkout) error
	DeleteCheckout(ctx context.Context, checkoutID string) error
	SaveOrder(ctx context.Context, orderID string, checkout *domain.Checkout) error
}

// CheckoutRepository holds active (not yet completed) checkouts.
type CheckoutRepository interface {
	Get(ctx context.Context, checkoutID string) (*domain.Checkout, error)
	Put(ctx context.Context, checkout *domain.Checkout)
	Delete(ctx context.Context, checkoutID string)
}

// MemoryRepository keeps checkouts in a process-wide map. Memory is
// authoritative for the lifetime of a request: durable-store failures
// are logged and never surface to the caller. Entries live until
// explicitly deleted on order placement.
type MemoryRepository struct {
	mu        sync.RWMutex
	checkouts map[string]*domain.Checkout
	store     DurableStore // may be nil
}

func NewMemoryRepository(store DurableStore) *MemoryRepository {
	return &MemoryRepository{
		checkouts: make(map[string]*domain.Checkout),
		store:     store,
	}
}

// Get reads from memory first and falls back to the durable store on a
// miss, populating the map when the store has the checkout. The result
// is a deep copy: stored entities are never handed out live, so a
// reader cannot alias a checkout another request is mutating.
func (r *MemoryRepository) Get(ctx context.Context, checkoutID string) (*domain.Checkout, error) {
	r.mu.RLock()
	checkout, ok := r.checkouts[checkoutID]
	r.mu.RUnlock()
	if ok {
		return checkout.Clone(), nil
	}

	if r.store == nil {
		return nil, ErrCheckoutNotFound
	}

	checkout, err := r.store.LoadCheckout(ctx, checkoutID)
	if err != nil {
		if !errors.Is(err, ErrCheckoutNotFound) {
			log.Printf("Failed to load checkout %s from durable store: %v", checkoutID, err)
		}
		return nil, ErrCheckoutNotFound
	}

	r.mu.Lock()
	r.checkouts[checkoutID] = checkout
	r.mu.Unlock()
	return checkout.Clone(), nil
}

// Put stores the checkout as-is. A stored entity is only ever read
// after this point; the next mutation cycle works on a Get clone.
func (r *MemoryRepository) Put(ctx context.Context, checkout *domain.Checkout) {
	r.mu.Lock()
	r.checkouts[checkout.ID] = checkout
	r.mu.Unlock()

	if r.store != nil {
		if err := r.store.SaveCheckout(ctx, checkout); err != nil {
			log.Printf("Failed to save checkout %s to durable store: %v", checkout.ID, err)
		}
	}
}

func (r *MemoryRepository) Delete(ctx context.Context, checkoutID string) {
	r.mu.Lock()
	delete(r.checkouts, checkoutID)
	r.mu.Unlock()

	if r.store != nil {
		if err := r.store.DeleteCheckout(ctx, checkoutID); err != nil {
			log.Printf("Failed to delete checkout %s from durable store: %v", checkoutID, err)
		}
	}
}
