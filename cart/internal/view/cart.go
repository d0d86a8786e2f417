package view

import (
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/cart/pkg/response"
)

func Total(entries []response.CartEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Subtotal())
	}
	return total
}

// NewCartPage builds one row per entry in cart order plus the formatted total.
func NewCartPage(entries []response.CartEntry, formatter *PriceFormatter) response.CartPage {
	rows := make([]response.CartRow, 0, len(entries))
	for _, e := range entries {
		subtotal := e.Subtotal()
		rows = append(rows, response.CartRow{
			CartEntry:         e,
			PriceFormatted:    formatter.Format(e.Price),
			Subtotal:          subtotal,
			SubtotalFormatted: formatter.Format(subtotal),
			DecrementDisabled: e.Amount <= 1,
		})
	}

	total := Total(entries)
	return response.CartPage{
		Rows:           rows,
		Total:          total,
		TotalFormatted: formatter.Format(total),
	}
}
