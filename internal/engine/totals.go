package engine

import (
	"context"
	"log"

	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/domain"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/gateway"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/money"
)

// Recalculate rebuilds all checkout totals from its current line items,
// discounts and fulfillment selection. Status always resets to
// incomplete; callers re-promote it afterward.
//
// When discounts have been applied through the remote basket, the remote
// system owns discount, shipping and tax: the engine re-fetches the
// basket and absorbs its totals instead of computing locally. If that
// fetch fails the previous totals are kept rather than recomputed,
// since local arithmetic has no promotion engine and would drop the
// discount.
func (e *Engine) Recalculate(ctx context.Context, checkout *domain.Checkout) {
	checkout.Status = domain.StatusIncomplete

	if e.gateway.Enabled() && checkout.HasAppliedDiscounts() {
		basket, err := e.gateway.GetBasket(ctx, checkout.ID)
		if err != nil {
			log.Printf("Failed to re-fetch basket %s for totals: %v", checkout.ID, err)
		} else if basket != nil {
			e.SyncBasketTotals(checkout, basket)
		}
		checkout.ContinueURL = domain.ContinueURLFor(checkout.ID)
		return
	}

	e.recalculateLocal(checkout)
}

func (e *Engine) recalculateLocal(checkout *domain.Checkout) {
	var itemsBaseAmount, itemsDiscount int64

	for _, lineItem := range checkout.LineItems {
		baseAmount := lineItem.Item.Price * int64(lineItem.Quantity)
		var discount int64 // no promotion engine in local mode
		lineItem.Totals = []domain.Total{
			{Type: domain.TotalTypeItemsDiscount, DisplayText: "Items Discount", Amount: discount},
			{Type: domain.TotalTypeSubtotal, DisplayText: "Subtotal", Amount: baseAmount - discount},
			{Type: domain.TotalTypeTotal, DisplayText: "Total", Amount: baseAmount - discount},
		}

		itemsBaseAmount += baseAmount
		itemsDiscount += discount
	}

	subtotal := itemsBaseAmount - itemsDiscount
	var discount int64

	totals := []domain.Total{
		{Type: domain.TotalTypeItemsDiscount, DisplayText: "Items Discount", Amount: itemsDiscount},
		{Type: domain.TotalTypeSubtotal, DisplayText: "Subtotal", Amount: subtotal},
		{Type: domain.TotalTypeDiscount, DisplayText: "Discount", Amount: discount},
	}

	finalTotal := subtotal - discount

	if checkout.SupportsFulfillment() && checkout.Fulfillment != nil {
		// Shipping and tax apply once a delivery destination is set.
		tax := money.FlatTax(subtotal, TaxRate)

		if option := checkout.Fulfillment.SelectedOption(); option != nil {
			shipping := domain.AmountOf(option.Totals, domain.TotalTypeTotal)
			totals = append(totals,
				domain.Total{Type: domain.TotalTypeFulfillment, DisplayText: "Shipping", Amount: shipping},
				domain.Total{Type: domain.TotalTypeTax, DisplayText: "Tax", Amount: tax},
			)
			finalTotal += shipping + tax
		}
	}

	totals = append(totals, domain.Total{Type: domain.TotalTypeTotal, DisplayText: "Total", Amount: finalTotal})
	checkout.Totals = totals
	checkout.ContinueURL = domain.ContinueURLFor(checkout.ID)
}

// SyncBasketTotals absorbs a remote basket snapshot into the checkout.
// The remote subtotal/total fields are already net of discounts, so the
// original subtotal is rebuilt from basePrice x quantity and the
// discount from price adjustment records.
func (e *Engine) SyncBasketTotals(checkout *domain.Checkout, basket *gateway.Basket) {
	var originalSubtotal, totalDiscount float64
	for _, item := range basket.ProductItems {
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		originalSubtotal += item.BasePrice * float64(qty)
		for _, adj := range item.PriceAdjustments {
			if adj.Price < 0 {
				totalDiscount += -adj.Price
			} else {
				totalDiscount += adj.Price
			}
		}
	}

	originalSubtotalCents := money.Cents(originalSubtotal)
	discountCents := money.Cents(totalDiscount)
	discountedSubtotalCents := money.Cents(basket.ProductTotal)
	shippingCents := money.Cents(basket.ShippingTotal)

	// taxTotal includes shipping tax but is null until a shipment is
	// set; adjustedMerchandizeTotalTax covers the pre-shipping state.
	var taxCents int64
	switch {
	case basket.TaxTotal > 0:
		taxCents = money.Cents(basket.TaxTotal)
	case basket.AdjustedMerchandizeTotalTax > 0:
		taxCents = money.Cents(basket.AdjustedMerchandizeTotalTax)
	}

	var orderTotalCents int64
	if basket.OrderTotal > 0 {
		orderTotalCents = money.Cents(basket.OrderTotal)
	} else {
		orderTotalCents = discountedSubtotalCents + shippingCents + taxCents
	}

	e.syncLineItemTotals(checkout, basket)

	totals := []domain.Total{
		{Type: domain.TotalTypeSubtotal, DisplayText: "Subtotal", Amount: originalSubtotalCents},
	}
	if discountCents > 0 {
		totals = append(totals, domain.Total{Type: domain.TotalTypeDiscount, DisplayText: "Discount", Amount: discountCents})
	}
	if shippingCents > 0 {
		totals = append(totals, domain.Total{Type: domain.TotalTypeFulfillment, DisplayText: "Shipping", Amount: shippingCents})
	}
	if taxCents > 0 {
		totals = append(totals, domain.Total{Type: domain.TotalTypeTax, DisplayText: "Tax", Amount: taxCents})
	}
	totals = append(totals, domain.Total{Type: domain.TotalTypeTotal, DisplayText: "Total", Amount: orderTotalCents})

	checkout.Totals = totals
	log.Printf("Synced basket totals for %s: subtotal=%d discount=%d shipping=%d tax=%d total=%d",
		checkout.ID, originalSubtotalCents, discountCents, shippingCents, taxCents, orderTotalCents)
}

func (e *Engine) syncLineItemTotals(checkout *domain.Checkout, basket *gateway.Basket) {
	for _, remoteItem := range basket.ProductItems {
		basePrice := money.Cents(remoteItem.BasePrice)
		qty := remoteItem.Quantity
		if qty == 0 {
			qty = 1
		}
		itemOriginal := basePrice * int64(qty)
		itemAfterDiscount := money.Cents(remoteItem.PriceAfterItemDiscount)

		var itemDiscount int64
		for _, adj := range remoteItem.PriceAdjustments {
			itemDiscount += money.AbsCents(adj.Price)
		}

		lineItem := checkout.FindLineItem(remoteItem.ProductID)
		if lineItem == nil {
			continue
		}

		// Keep the original unit price on the line item for display.
		lineItem.Item.Price = basePrice
		lineItem.Totals = []domain.Total{
			{Type: domain.TotalTypeSubtotal, DisplayText: "Subtotal", Amount: itemOriginal},
			{Type: domain.TotalTypeItemsDiscount, DisplayText: "Discount", Amount: itemDiscount},
			{Type: domain.TotalTypeTotal, DisplayText: "Total", Amount: itemAfterDiscount},
		}
	}
}
