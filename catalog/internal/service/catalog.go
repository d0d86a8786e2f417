package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/storefront/catalog/internal/cache"
	"github.com/Alturino/storefront/catalog/internal/repository"
	"github.com/Alturino/storefront/catalog/pkg/response"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
)

type CatalogService struct {
	queries *repository.Queries
	cache   *redis.Client
}

func NewCatalogService(queries *repository.Queries, cache *redis.Client) CatalogService {
	return CatalogService{queries: queries, cache: cache}
}

func (svc CatalogService) FindProducts(c context.Context) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService FindProducts").
		Str(log.KeyProcess, "finding products in database").
		Logger()

	logger.Trace().Msg("finding products in database")
	products, err := svc.queries.FindProducts(c)
	if err != nil {
		err = fmt.Errorf("failed finding products in database with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(log.KeyProducts, len(products)).Msg("found products in database")

	return repository.ProductsResponse(products), nil
}

// FindProductById reads through the product cache. A cache failure only costs a database read.
func (svc CatalogService) FindProductById(
	c context.Context,
	productID int64,
) (response.Product, error) {
	c, span := otel.Tracer.Start(
		c,
		"CatalogService FindProductById",
		trace.WithAttributes(attribute.Int64(log.KeyProductID, productID)),
	)
	defer span.End()

	cacheKey := cache.ProductKey(productID)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService FindProductById").
		Int64(log.KeyProductID, productID).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in cache").Logger()
	logger.Trace().Msg("finding product in cache")
	jsonCache, err := svc.cache.Get(c, cacheKey).Result()
	if err == nil && jsonCache != "" {
		product := response.Product{}
		if err = json.Unmarshal([]byte(jsonCache), &product); err == nil {
			logger.Info().Msg("found product in cache")
			return product, nil
		}
		err = fmt.Errorf("failed unmarshaling jsonCache with error=%w", err)
		logger.Warn().Err(err).Str(log.KeyJsonCache, jsonCache).Msg(err.Error())
	} else if err != nil && !errors.Is(err, redis.Nil) {
		err = fmt.Errorf("failed finding product in cache with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
	}

	logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
	logger.Trace().Msg("finding product in database")
	row, err := svc.queries.FindProductById(c, productID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf(
			"failed finding productId=%d with error=%w",
			productID,
			commonErrors.ErrProductNotFound,
		)
	}
	if err != nil {
		err = fmt.Errorf("failed finding product in database with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	product := row.Response()
	logger.Info().Msg("found product in database")

	logger = logger.With().Str(log.KeyProcess, "inserting product to cache").Logger()
	logger.Trace().Msg("inserting product to cache")
	value, err := json.Marshal(product)
	if err == nil {
		err = svc.cache.Set(c, cacheKey, value, cache.ProductTTL).Err()
	}
	if err != nil {
		err = fmt.Errorf("failed inserting product to cache with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
		return product, nil
	}
	logger.Info().Msg("inserted product to cache")

	return product, nil
}

// FindStockByProductId always reads the database; stock is never cached.
func (svc CatalogService) FindStockByProductId(
	c context.Context,
	productID int64,
) (response.Stock, error) {
	c, span := otel.Tracer.Start(
		c,
		"CatalogService FindStockByProductId",
		trace.WithAttributes(attribute.Int64(log.KeyProductID, productID)),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService FindStockByProductId").
		Str(log.KeyProcess, "finding stock in database").
		Int64(log.KeyProductID, productID).
		Logger()

	logger.Trace().Msg("finding stock in database")
	stock, err := svc.queries.FindStockByProductId(c, productID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf(
			"failed finding stock of productId=%d with error=%w",
			productID,
			commonErrors.ErrStockNotFound,
		)
	}
	if err != nil {
		err = fmt.Errorf("failed finding stock in database with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Stock{}, err
	}
	logger.Info().Int32(log.KeyStock, stock.Amount).Msg("found stock in database")

	return stock.Response(), nil
}
