package gateway

// Wire types for the SCAPI shopper-baskets API. All monetary fields are
// decimal major currency units; the platform may return explicit nulls,
// which decode to zero values here. Conversion to minor units happens in
// the consumers, never on the wire.

// PriceAdjustment is one promotion applied to one product item. Price is
// negative for discounts.
type PriceAdjustment struct {
	CouponCode string  `json:"couponCode,omitempty"`
	ItemText   string  `json:"itemText,omitempty"`
	Price      float64 `json:"price"`
}

type ProductItem struct {
	ProductID              string            `json:"productId"`
	ProductName            string            `json:"productName,omitempty"`
	BasePrice              float64           `json:"basePrice"`
	Quantity               int               `json:"quantity"`
	PriceAfterItemDiscount float64           `json:"priceAfterItemDiscount"`
	PriceAdjustments       []PriceAdjustment `json:"priceAdjustments,omitempty"`
}

// Basket is the remote platform's view of the cart, authoritative for
// promotions, shipping and tax once a coupon has been applied through it.
type Basket struct {
	BasketID                    string        `json:"basketId"`
	ProductTotal                float64       `json:"productTotal"`
	ProductSubTotal             float64       `json:"productSubTotal"`
	ShippingTotal               float64       `json:"shippingTotal"`
	TaxTotal                    float64       `json:"taxTotal"`
	OrderTotal                  float64       `json:"orderTotal"`
	AdjustedMerchandizeTotalTax float64       `json:"adjustedMerchandizeTotalTax"`
	ProductItems                []ProductItem `json:"productItems,omitempty"`
}

// Address is the platform-side address shape with ISO region codes.
type Address struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Address1    string `json:"address1"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	StateCode   string `json:"stateCode"`
	CountryCode string `json:"countryCode"`
}

type basketItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type shipmentUpdateRequest struct {
	ShippingAddress Address        `json:"shippingAddress"`
	ShippingMethod  shippingMethod `json:"shippingMethod"`
}

type shippingMethod struct {
	ID string `json:"id"`
}

type couponRequest struct {
	Code string `json:"code"`
}

type customerRequest struct {
	Email string `json:"email"`
}

type paymentInstrumentRequest struct {
	PaymentMethodID string      `json:"paymentMethodId"`
	PaymentCard     paymentCard `json:"paymentCard"`
}

type paymentCard struct {
	CardType string `json:"cardType"`
}

type orderRequest struct {
	BasketID string `json:"basketId"`
}
