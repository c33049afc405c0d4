package engine

import (
	"fmt"

	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/gateway"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/money"
)

// ExtractDiscount derives the authoritative discount amount and title for
// a coupon from the basket's price adjustment records. The remote
// subtotal and total fields are both post-discount values, so subtracting
// them would always yield zero; the adjustments are the only source.
//
// A zero amount with no matching adjustment is the legitimate "coupon
// accepted but no discount" state, not an error.
func ExtractDiscount(basket *gateway.Basket, couponCode string) (int64, string) {
	var totalDiscount float64
	title := fmt.Sprintf("Coupon: %s", couponCode)

	for _, item := range basket.ProductItems {
		for _, adj := range item.PriceAdjustments {
			if adj.CouponCode != couponCode {
				continue
			}
			// Adjustment prices are negative (e.g. -6.25).
			if adj.Price < 0 {
				totalDiscount += -adj.Price
			} else {
				totalDiscount += adj.Price
			}
			if adj.ItemText != "" {
				title = adj.ItemText
			}
		}
	}

	return money.Cents(totalDiscount), title
}
