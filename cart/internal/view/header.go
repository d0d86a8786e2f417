package view

import (
	"fmt"

	"github.com/Alturino/storefront/cart/pkg/response"
)

// CartSize is the number of distinct products in the cart. Amounts are not summed.
func CartSize(entries []response.CartEntry) int {
	seen := make(map[int64]struct{}, len(entries))
	for _, e := range entries {
		seen[e.ID] = struct{}{}
	}
	return len(seen)
}

func Label(size int) string {
	if size == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", size)
}

func NewHeader(entries []response.CartEntry) response.Header {
	size := CartSize(entries)
	return response.Header{Size: size, Label: Label(size)}
}
