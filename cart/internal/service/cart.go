package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	otelApi "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/cart/pkg/response"
	catalogResponse "github.com/Alturino/storefront/catalog/pkg/response"
	"github.com/Alturino/storefront/internal/common/constants"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
)

const (
	OperationAdd       = "add"
	OperationRemove    = "remove"
	OperationUpdate    = "update"
	OperationIncrement = "increment"
	OperationDecrement = "decrement"
)

var cartDistinctItems = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "storefront_cart_distinct_items",
	Help: "Number of distinct products in the cart after the last successful mutation.",
})

type Catalog interface {
	Stock(c context.Context, productID int64) (catalogResponse.Stock, error)
	Product(c context.Context, productID int64) (catalogResponse.Product, error)
}

type Storage interface {
	Load(c context.Context) ([]response.CartEntry, error)
	Save(c context.Context, entries []response.CartEntry) error
}

// CartService owns the cart. Mutations are serialized and every successful one rewrites the
// whole list to storage before it becomes visible to Cart.
type CartService struct {
	mu         sync.Mutex
	cart       []response.CartEntry
	catalog    Catalog
	storage    Storage
	operations metric.Int64Counter
}

func NewCartService(c context.Context, catalog Catalog, storage Storage) (*CartService, error) {
	c, span := otel.Tracer.Start(c, "NewCartService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NewCartService").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "loading persisted cart").Logger()
	logger.Info().Msg("loading persisted cart")
	cart, err := storage.Load(c)
	if err != nil {
		err = fmt.Errorf("failed loading persisted cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(log.KeyCartSize, len(cart)).Msg("loaded persisted cart")

	operations, err := otelApi.Meter(constants.AppStorefront).Int64Counter(
		"cart.operations",
		metric.WithDescription("Cart operations by kind and result."),
	)
	if err != nil {
		err = fmt.Errorf("failed creating cart.operations counter with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	cartDistinctItems.Set(float64(len(cart)))

	return &CartService{
		cart:       cart,
		catalog:    catalog,
		storage:    storage,
		operations: operations,
	}, nil
}

// Cart returns a copy of the current entries in insertion order.
func (s *CartService) Cart() []response.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *CartService) AddProduct(c context.Context, productID int64) (err error) {
	c, span := otel.Tracer.Start(
		c,
		"CartService AddProduct",
		trace.WithAttributes(attribute.Int64(log.KeyProductID, productID)),
	)
	defer span.End()
	defer s.record(c, OperationAdd, &err)

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddProduct").
		Int64(log.KeyProductID, productID).
		Logger()

	s.mu.Lock()
	defer s.mu.Unlock()

	logger = logger.With().Str(log.KeyProcess, "finding stock").Logger()
	logger.Info().Msg("finding stock")
	stock, err := s.catalog.Stock(c, productID)
	if err != nil {
		err = fmt.Errorf("failed finding stock of productId=%d with error=%w", productID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger = logger.With().Int(log.KeyStock, stock.Amount).Logger()
	logger.Info().Msg("found stock")

	cart := s.snapshot()
	if i := indexOf(cart, productID); i >= 0 {
		logger = logger.With().
			Str(log.KeyProcess, "incrementing cart entry").
			Int(log.KeyAmount, cart[i].Amount).
			Logger()
		if stock.Amount <= cart[i].Amount {
			err = fmt.Errorf(
				"failed adding productId=%d with amount=%d and stock=%d with error=%w",
				productID,
				cart[i].Amount,
				stock.Amount,
				commonErrors.ErrOutOfStock,
			)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
		cart[i].Amount++
		logger.Info().Msg("incremented cart entry")
		return s.commit(c, cart)
	}

	if stock.Amount < 1 {
		err = fmt.Errorf(
			"failed adding productId=%d with stock=%d with error=%w",
			productID,
			stock.Amount,
			commonErrors.ErrOutOfStock,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	product, err := s.catalog.Product(c, productID)
	if err != nil {
		err = fmt.Errorf("failed finding productId=%d with error=%w", productID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if product.ID == 0 {
		err = fmt.Errorf(
			"failed finding productId=%d with error=%w",
			productID,
			commonErrors.ErrProductNotFound,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("found product")

	cart = append(cart, response.CartEntry{
		ID:     productID,
		Title:  product.Title,
		Price:  product.Price,
		Image:  product.Image,
		Amount: 1,
	})
	logger.Info().Msg("inserted cart entry")

	return s.commit(c, cart)
}

func (s *CartService) RemoveProduct(c context.Context, productID int64) (err error) {
	c, span := otel.Tracer.Start(
		c,
		"CartService RemoveProduct",
		trace.WithAttributes(attribute.Int64(log.KeyProductID, productID)),
	)
	defer span.End()
	defer s.record(c, OperationRemove, &err)

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveProduct").
		Str(log.KeyProcess, "removing cart entry").
		Int64(log.KeyProductID, productID).
		Logger()

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.snapshot()
	i := indexOf(cart, productID)
	if i < 0 {
		err = fmt.Errorf(
			"failed removing productId=%d with error=%w",
			productID,
			commonErrors.ErrCartEntryNotFound,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	cart = slices.Delete(cart, i, i+1)
	logger.Info().Msg("removed cart entry")

	return s.commit(c, cart)
}

func (s *CartService) UpdateProductAmount(
	c context.Context,
	param request.UpdateProductAmount,
) (err error) {
	c, span := otel.Tracer.Start(
		c,
		"CartService UpdateProductAmount",
		trace.WithAttributes(
			attribute.Int64(log.KeyProductID, param.ProductID),
			attribute.Int(log.KeyAmount, param.Amount),
		),
	)
	defer span.End()
	defer s.record(c, OperationUpdate, &err)

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateProductAmount").
		Logger()

	return s.updateAmount(logger.WithContext(c), param.ProductID, func(int) int { return param.Amount })
}

// IncrementProduct asks for one more unit of a product already in the cart.
func (s *CartService) IncrementProduct(c context.Context, productID int64) (err error) {
	c, span := otel.Tracer.Start(
		c,
		"CartService IncrementProduct",
		trace.WithAttributes(attribute.Int64(log.KeyProductID, productID)),
	)
	defer span.End()
	defer s.record(c, OperationIncrement, &err)

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService IncrementProduct").
		Logger()

	return s.updateAmount(logger.WithContext(c), productID, func(amount int) int { return amount + 1 })
}

// DecrementProduct asks for one unit less. At amount 1 it does nothing.
func (s *CartService) DecrementProduct(c context.Context, productID int64) (err error) {
	c, span := otel.Tracer.Start(
		c,
		"CartService DecrementProduct",
		trace.WithAttributes(attribute.Int64(log.KeyProductID, productID)),
	)
	defer span.End()
	defer s.record(c, OperationDecrement, &err)

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService DecrementProduct").
		Logger()

	return s.updateAmount(logger.WithContext(c), productID, func(amount int) int { return amount - 1 })
}

// updateAmount sets an existing entry to target(current amount). The entry must exist; a target
// below one is then ignored. Lookup, stock check and commit happen under one lock.
func (s *CartService) updateAmount(
	c context.Context,
	productID int64,
	target func(amount int) int,
) error {
	span := trace.SpanFromContext(c)
	logger := zerolog.Ctx(c).
		With().
		Int64(log.KeyProductID, productID).
		Logger()

	s.mu.Lock()
	defer s.mu.Unlock()

	logger = logger.With().Str(log.KeyProcess, "finding cart entry").Logger()
	cart := s.snapshot()
	i := indexOf(cart, productID)
	if i < 0 {
		err := fmt.Errorf(
			"failed updating productId=%d with error=%w",
			productID,
			commonErrors.ErrCartEntryNotFound,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	amount := target(cart[i].Amount)
	logger = logger.With().Int(log.KeyAmount, amount).Logger()

	if amount <= 0 {
		logger.Info().Msg("ignoring non positive amount")
		return nil
	}

	logger = logger.With().Str(log.KeyProcess, "finding stock").Logger()
	logger.Info().Msg("finding stock")
	stock, err := s.catalog.Stock(c, productID)
	if err != nil {
		err = fmt.Errorf("failed finding stock of productId=%d with error=%w", productID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger = logger.With().Int(log.KeyStock, stock.Amount).Logger()
	logger.Info().Msg("found stock")

	if amount > stock.Amount {
		err = fmt.Errorf(
			"failed updating productId=%d to amount=%d with stock=%d with error=%w",
			productID,
			amount,
			stock.Amount,
			commonErrors.ErrOutOfStock,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	cart[i].Amount = amount
	logger.Info().Msg("updated cart entry")

	return s.commit(c, cart)
}

// commit persists cart and, only when that succeeded, makes it the current cart.
// Callers hold s.mu.
func (s *CartService) commit(c context.Context, cart []response.CartEntry) error {
	c, span := otel.Tracer.Start(c, "CartService commit")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService commit").
		Str(log.KeyProcess, "persisting cart").
		Int(log.KeyCartSize, len(cart)).
		Logger()

	logger.Info().Msg("persisting cart")
	if err := s.storage.Save(c, cart); err != nil {
		err = fmt.Errorf("failed persisting cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	s.cart = cart
	cartDistinctItems.Set(float64(len(cart)))
	logger.Info().Msg("persisted cart")

	return nil
}

func (s *CartService) snapshot() []response.CartEntry {
	return slices.Clone(s.cart)
}

func (s *CartService) record(c context.Context, operation string, err *error) {
	result := "success"
	if *err != nil {
		result = "failed"
	}
	s.operations.Add(
		c,
		1,
		metric.WithAttributes(
			attribute.String(log.KeyOperation, operation),
			attribute.String("result", result),
		),
	)
}

func indexOf(cart []response.CartEntry, productID int64) int {
	return slices.IndexFunc(cart, func(e response.CartEntry) bool { return e.ID == productID })
}
