package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/catalog"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/domain"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/gateway"
)

// MockCatalog implements catalog.Catalog over a fixed product map.
type MockCatalog struct {
	Products map[string]*catalog.Product
}

func (m *MockCatalog) GetProduct(_ context.Context, productID string) (*catalog.Product, error) {
	p, ok := m.Products[productID]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", productID, catalog.ErrProductNotFound)
	}
	return p, nil
}

func (m *MockCatalog) Search(context.Context, string) ([]*catalog.Product, error) {
	return nil, nil
}

func testProduct(id, price string) *catalog.Product {
	return &catalog.Product{
		ID:     id,
		Name:   "Product " + id,
		Offers: &catalog.Offer{Price: price, PriceCurrency: "USD"},
	}
}

// MockGateway implements gateway.Gateway and records calls.
type MockGateway struct {
	m sync.Mutex

	BasketID        string
	CreateBasketErr error
	AddItemErr      error
	CouponBasket    *gateway.Basket
	CouponErr       error
	Basket          *gateway.Basket
	BasketErr       error
	OrderNo         string
	CreateOrderErr  error

	CreateBasketCalls int
	AddItemCalls      int
	AddCouponCalls    int
	GetBasketCalls    int
	CreateOrderCalls  int
	CustomerEmail     string
	PaymentCalls      int
	BillingCalls      int
	ShipmentCalls     int
}

func (m *MockGateway) Enabled() bool { return true }

func (m *MockGateway) CreateBasket(context.Context) (string, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.CreateBasketCalls++
	return m.BasketID, m.CreateBasketErr
}

func (m *MockGateway) AddItem(_ context.Context, _, _ string, _ int) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.AddItemCalls++
	return m.AddItemErr
}

func (m *MockGateway) AddBillingAddress(_ context.Context, _ string, _ gateway.Address) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.BillingCalls++
	return nil
}

func (m *MockGateway) UpdateShipment(_ context.Context, _ string, _ gateway.Address, _ string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.ShipmentCalls++
	return nil
}

func (m *MockGateway) AddCoupon(_ context.Context, _, _ string) (*gateway.Basket, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.AddCouponCalls++
	return m.CouponBasket, m.CouponErr
}

func (m *MockGateway) AddCustomer(_ context.Context, _, email string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.CustomerEmail = email
	return nil
}

func (m *MockGateway) AddPaymentInstrument(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.PaymentCalls++
	return nil
}

func (m *MockGateway) GetBasket(context.Context, string) (*gateway.Basket, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.GetBasketCalls++
	return m.Basket, m.BasketErr
}

func (m *MockGateway) CreateOrder(context.Context, string) (string, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.CreateOrderCalls++
	return m.OrderNo, m.CreateOrderErr
}

// MockPublisher captures published order events.
type MockPublisher struct {
	m      sync.Mutex
	Orders []*domain.Checkout
	Err    error
}

func (m *MockPublisher) PublishOrderPlaced(_ context.Context, order *domain.Checkout) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.Orders = append(m.Orders, order)
	return m.Err
}
