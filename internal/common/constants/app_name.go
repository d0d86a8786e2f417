package constants

const (
	AppStorefront     = "storefront"
	AppCartService    = "cart-service"
	AppCatalogService = "catalog-service"
	AppStorefrontTui  = "storefront-tui"
)
