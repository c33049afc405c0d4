package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/domain"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/repository"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStore owns completed checkouts. Once an order is placed the
// checkout lives here and nowhere else; it is never mutated again. The
// checkout-id index makes repeated place-order calls idempotent without
// re-touching the remote system.
type OrderStore struct {
	mu         sync.RWMutex
	orders     map[string]*domain.Checkout
	byCheckout map[string]string // checkout id -> order id
	store      repository.DurableStore // may be nil
}

func NewOrderStore(store repository.DurableStore) *OrderStore {
	return &OrderStore{
		orders:     make(map[string]*domain.Checkout),
		byCheckout: make(map[string]string),
		store:      store,
	}
}

func (o *OrderStore) Add(ctx context.Context, orderID, checkoutID string, checkout *domain.Checkout) {
	o.mu.Lock()
	o.orders[orderID] = checkout
	o.byCheckout[checkoutID] = orderID
	o.mu.Unlock()

	if o.store != nil {
		if err := o.store.SaveOrder(ctx, orderID, checkout); err != nil {
			log.Printf("Failed to save order %s to durable store: %v", orderID, err)
		}
	}
}

func (o *OrderStore) Get(orderID string) (*domain.Checkout, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	order, ok := o.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ByCheckout returns the placed order for a checkout id, if any.
func (o *OrderStore) ByCheckout(checkoutID string) (*domain.Checkout, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	orderID, ok := o.byCheckout[checkoutID]
	if !ok {
		return nil, false
	}
	return o.orders[orderID], true
}
