package response

import "github.com/shopspring/decimal"

type Product struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

// Stock is the quantity of a product currently available for purchase.
type Stock struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}
