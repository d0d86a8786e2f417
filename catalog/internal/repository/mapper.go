package repository

import "github.com/Alturino/storefront/catalog/pkg/response"

func (p Product) Response() response.Product {
	return response.Product{
		ID:    p.ID,
		Title: p.Title,
		Price: p.Price,
		Image: p.Image,
	}
}

func (s Stock) Response() response.Stock {
	return response.Stock{
		ID:     s.ProductID,
		Amount: int(s.Amount),
	}
}

func ProductsResponse(products []Product) []response.Product {
	res := make([]response.Product, 0, len(products))
	for _, p := range products {
		res = append(res, p.Response())
	}
	return res
}
