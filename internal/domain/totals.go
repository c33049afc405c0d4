package domain

type TotalType string

const (
	TotalTypeItemsDiscount TotalType = "items_discount"
	TotalTypeSubtotal      TotalType = "subtotal"
	TotalTypeDiscount      TotalType = "discount"
	TotalTypeFulfillment   TotalType = "fulfillment"
	TotalTypeTax           TotalType = "tax"
	TotalTypeTotal         TotalType = "total"
)

// Total is a tagged amount in minor currency units. Discount amounts are
// stored as positive magnitudes and subtracted where they apply.
type Total struct {
	Type        TotalType `json:"type"`
	DisplayText string    `json:"display_text"`
	Amount      int64     `json:"amount"`
}

// AmountOf returns the amount of the first total with the given type,
// or 0 if no such entry exists.
func AmountOf(totals []Total, t TotalType) int64 {
	for _, total := range totals {
		if total.Type == t {
			return total.Amount
		}
	}
	return 0
}
