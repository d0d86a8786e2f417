package errors

import (
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrProductNotFound    = errors.New("product not found")
	ErrStockNotFound      = errors.New("stock not found")
	ErrCartEntryNotFound  = errors.New("product is not in cart")
	ErrInvalidProductID   = errors.New("invalid productId")
	ErrUnknownStorageKind = errors.New("unknown storage driver")
)

func HandleError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.AddEvent(err.Error())
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}
