package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/catalog"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/domain"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/engine"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/gateway"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/repository"
	"github.com/google/uuid"
)

// EventPublisher emits domain events after an order is placed. Failures
// are logged, never surfaced.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *domain.Checkout) error
}

// CheckoutService orchestrates the checkout lifecycle: it mutates the
// local entity, best-effort mirrors the change to the remote basket,
// lets the engine recompute totals and writes through the repository.
type CheckoutService struct {
	repo    repository.CheckoutRepository
	catalog catalog.Catalog
	gateway gateway.Gateway
	engine  *engine.Engine
	orders  *OrderStore
	events  EventPublisher // optional
	locks   *keyedMutex
}

func NewCheckoutService(
	repo repository.CheckoutRepository,
	cat catalog.Catalog,
	gw gateway.Gateway,
	eng *engine.Engine,
	orders *OrderStore,
	events EventPublisher,
) *CheckoutService {
	return &CheckoutService{
		repo:    repo,
		catalog: cat,
		gateway: gw,
		engine:  eng,
		orders:  orders,
		events:  events,
		locks:   newKeyedMutex(),
	}
}

func newLineItem(product *catalog.Product, quantity int) (*domain.LineItem, error) {
	unitPrice, err := product.UnitPriceCents()
	if err != nil {
		return nil, err
	}

	return &domain.LineItem{
		ID: uuid.New().String(),
		Item: domain.Item{
			ID:       product.ID,
			Price:    unitPrice,
			Title:    product.Name,
			ImageURL: product.ImageURL(),
		},
		Quantity: quantity,
	}, nil
}

func newCheckout(checkoutID string, kind domain.CheckoutKind) *domain.Checkout {
	return &domain.Checkout{
		ID:        checkoutID,
		Kind:      kind,
		LineItems: []*domain.LineItem{},
		Currency:  domain.DefaultCurrency,
		Totals:    []domain.Total{},
		Status:    domain.StatusIncomplete,
	}
}

// AddToCheckout adds a product to a checkout, creating the checkout (and
// the remote basket, when enabled) on first add. Adding a product that
// is already present merges quantities into the existing line item.
func (s *CheckoutService) AddToCheckout(ctx context.Context, kind domain.CheckoutKind, productID string, quantity int, checkoutID string) (*domain.Checkout, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if s.gateway.Enabled() {
		if checkoutID == "" {
			basketID, errCreate := s.gateway.CreateBasket(ctx)
			if errCreate != nil {
				// Basket creation failure pins this checkout to a local
				// id for the rest of its lifetime.
				log.Printf("Remote basket creation failed: %v", errCreate)
			} else {
				checkoutID = basketID
			}
		}
		if checkoutID != "" {
			if errAdd := s.gateway.AddItem(ctx, checkoutID, productID, quantity); errAdd != nil {
				log.Printf("Remote add item failed for basket %s: %v", checkoutID, errAdd)
			}
		}
	}

	if checkoutID == "" {
		checkoutID = uuid.New().String()
	}

	unlock := s.locks.Lock(checkoutID)
	defer unlock()

	checkout, err := s.repo.Get(ctx, checkoutID)
	if err != nil {
		if !errors.Is(err, repository.ErrCheckoutNotFound) {
			return nil, err
		}
		checkout = newCheckout(checkoutID, kind)
	}

	if lineItem := checkout.FindLineItem(productID); lineItem != nil {
		lineItem.Quantity += quantity
	} else {
		lineItem, errItem := newLineItem(product, quantity)
		if errItem != nil {
			return nil, errItem
		}
		checkout.LineItems = append(checkout.LineItems, lineItem)
	}

	s.engine.Recalculate(ctx, checkout)
	s.repo.Put(ctx, checkout)
	return checkout, nil
}

// RemoveFromCheckout removes a product's line item entirely.
func (s *CheckoutService) RemoveFromCheckout(ctx context.Context, checkoutID, productID string) (*domain.Checkout, error) {
	unlock := s.locks.Lock(checkoutID)
	defer unlock()

	checkout, err := s.repo.Get(ctx, checkoutID)
	if err != nil {
		return nil, fmt.Errorf("checkout %s: %w", checkoutID, err)
	}

	for i, lineItem := range checkout.LineItems {
		if lineItem.Item.ID == productID {
			checkout.LineItems = append(checkout.LineItems[:i], checkout.LineItems[i+1:]...)
			break
		}
	}

	s.engine.Recalculate(ctx, checkout)
	s.repo.Put(ctx, checkout)
	return checkout, nil
}

// UpdateCheckout sets the quantity of an existing line item.
func (s *CheckoutService) UpdateCheckout(ctx context.Context, checkoutID, productID string, quantity int) (*domain.Checkout, error) {
	unlock := s.locks.Lock(checkoutID)
	defer unlock()

	checkout, err := s.repo.Get(ctx, checkoutID)
	if err != nil {
		return nil, fmt.Errorf("checkout %s: %w", checkoutID, err)
	}

	if lineItem := checkout.FindLineItem(productID); lineItem != nil {
		lineItem.Quantity = quantity
	}

	s.engine.Recalculate(ctx, checkout)
	s.repo.Put(ctx, checkout)
	return checkout, nil
}

// ApplyDiscount applies a coupon through the remote basket and absorbs
// the authoritative discount and totals from its response. Without a
// remote basket the code is recorded but nothing is applied: local mode
// has no promotion engine.
func (s *CheckoutService) ApplyDiscount(ctx context.Context, checkoutID, couponCode string) (*domain.Checkout, error) {
	unlock := s.locks.Lock(checkoutID)
	defer unlock()

	checkout, err := s.repo.Get(ctx, checkoutID)
	if err != nil {
		return nil, fmt.Errorf("checkout %s: %w", checkoutID, err)
	}

	var basket *gateway.Basket
	var discountAmount int64
	discountTitle := fmt.Sprintf("Coupon: %s", couponCode)

	if s.gateway.Enabled() {
		basket, err = s.gateway.AddCoupon(ctx, checkoutID, couponCode)
		if err != nil {
			log.Printf("Remote coupon application failed: %v", err)
			basket = nil
		} else if basket != nil {
			discountAmount, discountTitle = engine.ExtractDiscount(basket, couponCode)
			log.Printf("Discount extracted: %s, amount=%d", discountTitle, discountAmount)
		}
	}

	applied := []domain.AppliedDiscount{}
	if basket != nil {
		applied = append(applied, domain.AppliedDiscount{
			Code:   couponCode,
			Title:  discountTitle,
			Amount: discountAmount,
		})
	}
	checkout.Discounts = &domain.Discounts{
		Codes:   []string{couponCode},
		Applied: applied,
	}

	if basket != nil {
		s.engine.SyncBasketTotals(checkout, basket)
	}

	s.repo.Put(ctx, checkout)
	return checkout, nil
}

// AddDeliveryAddress attaches a delivery destination to a
// fulfillment-capable checkout, offers the static shipping options with
// the first one pre-selected, and mirrors the address to the remote
// basket when one is active.
func (s *CheckoutService) AddDeliveryAddress(ctx context.Context, checkoutID string, address domain.PostalAddress) (*domain.Checkout, error) {
	unlock := s.locks.Lock(checkoutID)
	defer unlock()

	checkout, err := s.repo.Get(ctx, checkoutID)
	if err != nil {
		return nil, fmt.Errorf("checkout %s: %w", checkoutID, err)
	}

	if checkout.SupportsFulfillment() {
		if s.gateway.Enabled() {
			remoteAddr := gateway.AddressFor(address)
			if errBill := s.gateway.AddBillingAddress(ctx, checkoutID, remoteAddr); errBill != nil {
				log.Printf("Remote billing address sync failed: %v", errBill)
			}
			if errShip := s.gateway.UpdateShipment(ctx, checkoutID, remoteAddr, "001"); errShip != nil {
				log.Printf("Remote shipment sync failed: %v", errShip)
			}
		}

		destination := domain.FulfillmentDestination{
			ID:            fmt.Sprintf("dest_%s", shortID()),
			PostalAddress: address,
		}

		options := engine.FulfillmentOptions()
		selectedOptionID := options[0].ID

		lineItemIDs := make([]string, 0, len(checkout.LineItems))
		for _, lineItem := range checkout.LineItems {
			lineItemIDs = append(lineItemIDs, lineItem.ID)
		}

		group := domain.FulfillmentGroup{
			ID:               fmt.Sprintf("package_%s", shortID()),
			LineItemIDs:      lineItemIDs,
			Options:          options,
			SelectedOptionID: selectedOptionID,
		}

		method := domain.FulfillmentMethod{
			ID:                    fmt.Sprintf("method_%s", shortID()),
			Type:                  "shipping",
			LineItemIDs:           lineItemIDs,
			Destinations:          []domain.FulfillmentDestination{destination},
			SelectedDestinationID: destination.ID,
			Groups:                []domain.FulfillmentGroup{group},
		}

		checkout.Fulfillment = &domain.Fulfillment{Methods: []domain.FulfillmentMethod{method}}
	}

	s.engine.Recalculate(ctx, checkout)
	s.repo.Put(ctx, checkout)
	return checkout, nil
}

// UpdateBuyer records the buyer contact on the checkout.
func (s *CheckoutService) UpdateBuyer(ctx context.Context, checkoutID string, buyer domain.Buyer) (*domain.Checkout, error) {
	unlock := s.locks.Lock(checkoutID)
	defer unlock()

	checkout, err := s.repo.Get(ctx, checkoutID)
	if err != nil {
		return nil, fmt.Errorf("checkout %s: %w", checkoutID, err)
	}

	checkout.Buyer = &buyer
	s.repo.Put(ctx, checkout)
	return checkout, nil
}

// StartPayment promotes the checkout to ready_for_complete once the
// buyer and, for delivery checkouts, the fulfillment section are
// present. Unmet requirements come back as a newline-joined validation
// message with the checkout untouched; this is expected user flow, not
// an error. Calling again on an already-ready checkout returns it as-is.
func (s *CheckoutService) StartPayment(ctx context.Context, checkoutID string) (*domain.Checkout, string, error) {
	unlock := s.locks.Lock(checkoutID)
	defer unlock()

	checkout, err := s.repo.Get(ctx, checkoutID)
	if err != nil {
		return nil, "", fmt.Errorf("checkout %s: %w", checkoutID, err)
	}

	if checkout.Status == domain.StatusReadyForComplete {
		return checkout, "", nil
	}

	var messages []string
	if checkout.Buyer == nil {
		messages = append(messages, "Provide a buyer email address")
	}
	if checkout.SupportsFulfillment() && checkout.Fulfillment == nil {
		messages = append(messages, "Provide a fulfillment address")
	}
	if len(messages) > 0 {
		return nil, strings.Join(messages, "\n"), nil
	}

	s.engine.Recalculate(ctx, checkout)
	checkout.Status = domain.StatusReadyForComplete
	s.repo.Put(ctx, checkout)
	return checkout, "", nil
}

// PlaceOrder finalizes the checkout: best-effort drives the remote order
// sequence, stamps the confirmation, moves the checkout into the order
// store and removes it from the active repository. A repeat call for a
// checkout whose order was already placed returns that order without
// touching the remote system again.
func (s *CheckoutService) PlaceOrder(ctx context.Context, checkoutID string) (*domain.Checkout, error) {
	unlock := s.locks.Lock(checkoutID)
	defer unlock()

	if placed, ok := s.orders.ByCheckout(checkoutID); ok {
		return placed, nil
	}

	checkout, err := s.repo.Get(ctx, checkoutID)
	if err != nil {
		return nil, fmt.Errorf("checkout %s: %w", checkoutID, err)
	}

	orderID := fmt.Sprintf("ORD-%s", checkoutID)

	if s.gateway.Enabled() {
		email := "customer@example.com"
		if checkout.Buyer != nil && checkout.Buyer.Email != "" {
			email = checkout.Buyer.Email
		}
		if errCust := s.gateway.AddCustomer(ctx, checkoutID, email); errCust != nil {
			log.Printf("Remote customer sync failed: %v", errCust)
		}
		if errPay := s.gateway.AddPaymentInstrument(ctx, checkoutID); errPay != nil {
			log.Printf("Remote payment instrument failed: %v", errPay)
		}

		// Final totals must match the platform's server-side numbers.
		basket, errBasket := s.gateway.GetBasket(ctx, checkoutID)
		if errBasket != nil {
			log.Printf("Failed to fetch final basket %s: %v", checkoutID, errBasket)
		} else if basket != nil {
			s.engine.SyncBasketTotals(checkout, basket)
		}

		orderNo, errOrder := s.gateway.CreateOrder(ctx, checkoutID)
		if errOrder != nil {
			log.Printf("Remote order creation failed, falling back to local id: %v", errOrder)
		} else if orderNo != "" {
			orderID = orderNo
		}
	}

	checkout.Status = domain.StatusCompleted
	checkout.Order = &domain.OrderConfirmation{
		ID:           orderID,
		PermalinkURL: domain.OrderPermalinkFor(orderID),
	}

	s.orders.Add(ctx, orderID, checkoutID, checkout)
	s.repo.Delete(ctx, checkoutID)

	if s.events != nil {
		if errPub := s.events.PublishOrderPlaced(ctx, checkout); errPub != nil {
			log.Printf("Failed to publish order placed event for %s: %v", orderID, errPub)
		}
	}

	return checkout, nil
}

// GetCheckout loads an active checkout.
func (s *CheckoutService) GetCheckout(ctx context.Context, checkoutID string) (*domain.Checkout, error) {
	checkout, err := s.repo.Get(ctx, checkoutID)
	if err != nil {
		return nil, fmt.Errorf("checkout %s: %w", checkoutID, err)
	}
	return checkout, nil
}

// GetOrder loads a placed order.
func (s *CheckoutService) GetOrder(orderID string) (*domain.Checkout, error) {
	return s.orders.Get(orderID)
}

func shortID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
