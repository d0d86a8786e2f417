package response

import "github.com/shopspring/decimal"

// CartEntry is one product in the cart. A cart holds at most one entry per ID.
type CartEntry struct {
	ID     int64           `json:"id"`
	Title  string          `json:"title"`
	Price  decimal.Decimal `json:"price"`
	Image  string          `json:"image"`
	Amount int             `json:"amount"`
}

func (e CartEntry) Subtotal() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(e.Amount)))
}

type Header struct {
	Size  int    `json:"size"`
	Label string `json:"label"`
}

type CartRow struct {
	CartEntry
	PriceFormatted    string          `json:"priceFormatted"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	SubtotalFormatted string          `json:"subtotalFormatted"`
	DecrementDisabled bool            `json:"decrementDisabled"`
}

type CartPage struct {
	Rows           []CartRow       `json:"rows"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"totalFormatted"`
}
