package log

const (
	KeyAppName            = "app"
	KeyRequestID          = "requestId"
	KeyTraceID            = "traceId"
	KeySpanID             = "spanId"
	KeyProcess            = "process"
	KeyTag                = "tag"
	KeyRequest            = "request"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestIp          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeyPathValues         = "pathValues"
	KeyConfig             = "config"
	KeyCacheKey           = "cacheKey"
	KeyJsonCache          = "jsonCache"
	KeyDbURL              = "dbUrl"
	KeyProductID          = "productId"
	KeyProduct            = "product"
	KeyProducts           = "products"
	KeyStock              = "stock"
	KeyAmount             = "amount"
	KeyCart               = "cart"
	KeyCartEntry          = "cartEntry"
	KeyCartSize           = "cartSize"
	KeyStorageKey         = "storageKey"
	KeyStorageDriver      = "storageDriver"
	KeyNotification       = "notification"
	KeyOperation          = "operation"
	KeyResponseStatusCode = "responseStatusCode"
	KeyCount              = "count"
)
