package request

type AddProduct struct {
	ProductID int64 `validate:"required,gte=1" json:"productId"`
}

// UpdateProductAmount sets the amount of a product already in the cart.
// Amounts below 1 are accepted and ignored.
type UpdateProductAmount struct {
	ProductID int64 `validate:"required,gte=1" json:"productId"`
	Amount    int   `json:"amount"`
}
