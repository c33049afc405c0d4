// Package engine recomputes checkout totals. Totals come from exactly
// one of two paths: pure local arithmetic over line items, or a snapshot
// of the remote basket once a promotion has been applied through it. In
// both paths the last checkout-level total is the grand total and equals
// subtotal - discount + fulfillment + tax.
package engine

import (
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/domain"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/gateway"
)

// TaxRate is the flat tax policy applied in local mode once a delivery
// destination is known.
const TaxRate = 0.10

type Engine struct {
	gateway gateway.Gateway
}

func New(gw gateway.Gateway) *Engine {
	return &Engine{gateway: gw}
}

// FulfillmentOptions returns the static shipping option catalog. Option
// totals are in minor currency units.
func FulfillmentOptions() []domain.FulfillmentOption {
	return []domain.FulfillmentOption{
		{
			ID:          "standard",
			Title:       "Standard Shipping",
			Description: "Arrives in 4-5 days",
			Carrier:     "USPS",
			Totals: []domain.Total{
				{Type: domain.TotalTypeSubtotal, DisplayText: "Subtotal", Amount: 500},
				{Type: domain.TotalTypeTax, DisplayText: "Tax", Amount: 0},
				{Type: domain.TotalTypeTotal, DisplayText: "Total", Amount: 500},
			},
		},
		{
			ID:          "express",
			Title:       "Express Shipping",
			Description: "Arrives in 1-2 days",
			Carrier:     "FedEx",
			Totals: []domain.Total{
				{Type: domain.TotalTypeSubtotal, DisplayText: "Subtotal", Amount: 1000},
				{Type: domain.TotalTypeTax, DisplayText: "Tax", Amount: 0},
				{Type: domain.TotalTypeTotal, DisplayText: "Total", Amount: 1000},
			},
		},
	}
}
