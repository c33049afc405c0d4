// Package gateway talks to the remote commerce platform's shopper basket
// API. The rest of the system only sees the Gateway interface: either the
// real SCAPI-backed client or Disabled, selected once at startup.
package gateway

import (
	"context"
	"errors"
)

var ErrGatewayDisabled = errors.New("basket gateway disabled")

// Gateway drives the remote basket lifecycle. Every call is blocking
// with the client's own bounded timeout; callers treat failures as a
// signal to degrade to local-only computation, never as a reason to
// abort the user-visible operation.
type Gateway interface {
	Enabled() bool
	CreateBasket(ctx context.Context) (string, error)
	AddItem(ctx context.Context, basketID, productID string, quantity int) error
	AddBillingAddress(ctx context.Context, basketID string, addr Address) error
	UpdateShipment(ctx context.Context, basketID string, addr Address, shippingMethodID string) error
	AddCoupon(ctx context.Context, basketID, couponCode string) (*Basket, error)
	AddCustomer(ctx context.Context, basketID, email string) error
	AddPaymentInstrument(ctx context.Context, basketID string) error
	GetBasket(ctx context.Context, basketID string) (*Basket, error)
	CreateOrder(ctx context.Context, basketID string) (string, error)
}

// Disabled is the null gateway used when no remote commerce system is
// configured. Every call reports ErrGatewayDisabled.
type Disabled struct{}

func (Disabled) Enabled() bool { return false }

func (Disabled) CreateBasket(context.Context) (string, error) {
	return "", ErrGatewayDisabled
}

func (Disabled) AddItem(context.Context, string, string, int) error {
	return ErrGatewayDisabled
}

func (Disabled) AddBillingAddress(context.Context, string, Address) error {
	return ErrGatewayDisabled
}

func (Disabled) UpdateShipment(context.Context, string, Address, string) error {
	return ErrGatewayDisabled
}

func (Disabled) AddCoupon(context.Context, string, string) (*Basket, error) {
	return nil, ErrGatewayDisabled
}

func (Disabled) AddCustomer(context.Context, string, string) error {
	return ErrGatewayDisabled
}

func (Disabled) AddPaymentInstrument(context.Context, string) error {
	return ErrGatewayDisabled
}

func (Disabled) GetBasket(context.Context, string) (*Basket, error) {
	return nil, ErrGatewayDisabled
}

func (Disabled) CreateOrder(context.Context, string) (string, error) {
	return "", ErrGatewayDisabled
}
