package domain

import "fmt"

const DefaultCurrency = "USD"

// CheckoutKind distinguishes checkouts that ship physical goods from
// those that don't carry a fulfillment section at all.
type CheckoutKind string

const (
	KindShipping CheckoutKind = "shipping"
	KindDigital  CheckoutKind = "digital"
)

// Item identifies the catalog product behind a line item. Price is the
// unit price in minor currency units.
type Item struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url,omitempty"`
}

type LineItem struct {
	ID       string  `json:"id"`
	Item     Item    `json:"item"`
	Quantity int     `json:"quantity"`
	Totals   []Total `json:"totals"`
}

type Buyer struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type OrderConfirmation struct {
	ID           string `json:"id"`
	PermalinkURL string `json:"permalink_url"`
}

// Checkout is the root entity: an in-progress cart with computed totals.
// When a remote basket is active its ID is the remote basket id,
// otherwise a locally generated UUID.
type Checkout struct {
	ID          string             `json:"id"`
	Kind        CheckoutKind       `json:"kind"`
	LineItems   []*LineItem        `json:"line_items"`
	Currency    string             `json:"currency"`
	Totals      []Total            `json:"totals"`
	Status      CheckoutStatus     `json:"status"`
	Fulfillment *Fulfillment       `json:"fulfillment,omitempty"`
	Discounts   *Discounts         `json:"discounts,omitempty"`
	Buyer       *Buyer             `json:"buyer,omitempty"`
	Order       *OrderConfirmation `json:"order,omitempty"`
	ContinueURL string             `json:"continue_url"`
}

// SupportsFulfillment reports whether this checkout variant carries a
// delivery section.
func (c *Checkout) SupportsFulfillment() bool {
	return c.Kind == KindShipping
}

// FindLineItem returns the line item for a product id, or nil.
func (c *Checkout) FindLineItem(productID string) *LineItem {
	for _, li := range c.LineItems {
		if li.Item.ID == productID {
			return li
		}
	}
	return nil
}

// HasAppliedDiscounts reports whether at least one discount has been
// applied through the remote promotion engine.
func (c *Checkout) HasAppliedDiscounts() bool {
	return c.Discounts != nil && len(c.Discounts.Applied) > 0
}

// Clone returns a deep copy sharing no memory with the receiver.
// Repositories hand out clones so a reader never aliases an entity a
// mutator is rebuilding.
func (c *Checkout) Clone() *Checkout {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Totals = append([]Total(nil), c.Totals...)
	if c.LineItems != nil {
		clone.LineItems = make([]*LineItem, len(c.LineItems))
		for i, lineItem := range c.LineItems {
			li := *lineItem
			li.Totals = append([]Total(nil), lineItem.Totals...)
			clone.LineItems[i] = &li
		}
	}
	clone.Fulfillment = c.Fulfillment.clone()
	clone.Discounts = c.Discounts.clone()
	if c.Buyer != nil {
		buyer := *c.Buyer
		clone.Buyer = &buyer
	}
	if c.Order != nil {
		order := *c.Order
		clone.Order = &order
	}
	return &clone
}

// ContinueURLFor derives the hosted checkout continuation link from an id.
func ContinueURLFor(checkoutID string) string {
	return fmt.Sprintf("https://example.com/checkout?id=%s", checkoutID)
}

// OrderPermalinkFor derives the order confirmation link from an order id.
func OrderPermalinkFor(orderID string) string {
	return fmt.Sprintf("https://example.com/order?id=%s", orderID)
}
