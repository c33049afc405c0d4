package domain

type AppliedDiscount struct {
	Code      string `json:"code"`
	Title     string `json:"title"`
	Amount    int64  `json:"amount"`
	Automatic bool   `json:"automatic"`
}

type Discounts struct {
	Codes   []string          `json:"codes"`
	Applied []AppliedDiscount `json:"applied"`
}

func (d *Discounts) clone() *Discounts {
	if d == nil {
		return nil
	}
	return &Discounts{
		Codes:   append([]string(nil), d.Codes...),
		Applied: append([]AppliedDiscount(nil), d.Applied...),
	}
}
