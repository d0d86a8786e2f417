package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/storefront/catalog/pkg/response"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
)

type CatalogService interface {
	FindProducts(c context.Context) ([]response.Product, error)
	FindProductById(c context.Context, productID int64) (response.Product, error)
	FindStockByProductId(c context.Context, productID int64) (response.Stock, error)
}

type CatalogController struct {
	service CatalogService
}

// AttachCatalogController serves products and stock as bare JSON objects. Failures use the usual
// status envelope.
func AttachCatalogController(mux *mux.Router, service CatalogService) {
	controller := CatalogController{service: service}

	mux.HandleFunc("/products", controller.FindProducts).Methods(http.MethodGet)
	mux.HandleFunc("/products/{productId}", controller.FindProductById).Methods(http.MethodGet)
	mux.HandleFunc("/stock/{productId}", controller.FindStockByProductId).Methods(http.MethodGet)
}

func (ctrl CatalogController) FindProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogController FindProducts").
		Str(log.KeyProcess, "finding products").
		Logger()

	logger.Info().Msg("finding products")
	c = logger.WithContext(c)
	products, err := ctrl.service.FindProducts(c)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(
			c,
			w,
			map[string]string{},
			inHttp.Failed(http.StatusInternalServerError, err.Error()),
		)
		return
	}
	logger.Info().Int(log.KeyProducts, len(products)).Msg("found products")

	inHttp.WriteRawJson(c, w, http.StatusOK, products)
}

func (ctrl CatalogController) FindProductById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogController FindProductById").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing productId").Logger()
	logger.Info().Msg("parsing productId")
	productID, err := productIDFromPath(r)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, inHttp.Failed(http.StatusBadRequest, err.Error()))
		return
	}
	span.SetAttributes(attribute.Int64(log.KeyProductID, productID))
	logger = logger.With().Int64(log.KeyProductID, productID).Logger()
	logger.Info().Msg("parsed productId")

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	c = logger.WithContext(c)
	product, err := ctrl.service.FindProductById(c, productID)
	if err != nil {
		ctrl.fail(c, w, span, err)
		return
	}
	logger.Info().Msg("found product")

	inHttp.WriteRawJson(c, w, http.StatusOK, product)
}

func (ctrl CatalogController) FindStockByProductId(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindStockByProductId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogController FindStockByProductId").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing productId").Logger()
	logger.Info().Msg("parsing productId")
	productID, err := productIDFromPath(r)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, inHttp.Failed(http.StatusBadRequest, err.Error()))
		return
	}
	span.SetAttributes(attribute.Int64(log.KeyProductID, productID))
	logger = logger.With().Int64(log.KeyProductID, productID).Logger()
	logger.Info().Msg("parsed productId")

	logger = logger.With().Str(log.KeyProcess, "finding stock").Logger()
	logger.Info().Msg("finding stock")
	c = logger.WithContext(c)
	stock, err := ctrl.service.FindStockByProductId(c, productID)
	if err != nil {
		ctrl.fail(c, w, span, err)
		return
	}
	logger.Info().Int(log.KeyStock, stock.Amount).Msg("found stock")

	inHttp.WriteRawJson(c, w, http.StatusOK, stock)
}

func (ctrl CatalogController) fail(c context.Context, w http.ResponseWriter, span trace.Span, err error) {
	statusCode := http.StatusInternalServerError
	if errors.Is(err, commonErrors.ErrProductNotFound) || errors.Is(err, commonErrors.ErrStockNotFound) {
		statusCode = http.StatusNotFound
	}
	commonErrors.HandleError(err, span)
	zerolog.Ctx(c).Error().Err(err).Int(log.KeyResponseStatusCode, statusCode).Msg(err.Error())
	inHttp.WriteJsonResponse(c, w, map[string]string{}, inHttp.Failed(statusCode, err.Error()))
}

func productIDFromPath(r *http.Request) (int64, error) {
	value := mux.Vars(r)["productId"]
	productID, err := strconv.ParseInt(value, 10, 64)
	if err != nil || productID < 1 {
		return 0, fmt.Errorf(
			"failed parsing productId=%s with error=%w",
			value,
			commonErrors.ErrInvalidProductID,
		)
	}
	return productID, nil
}
