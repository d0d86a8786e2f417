package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/storefront/cart/internal/view"
	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/cart/pkg/response"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/common/validate"
	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/notification"
)

type CartService interface {
	Cart() []response.CartEntry
	AddProduct(c context.Context, productID int64) error
	RemoveProduct(c context.Context, productID int64) error
	UpdateProductAmount(c context.Context, param request.UpdateProductAmount) error
	IncrementProduct(c context.Context, productID int64) error
	DecrementProduct(c context.Context, productID int64) error
}

type CartController struct {
	service   CartService
	notifier  *notification.Notifier
	formatter *view.PriceFormatter
}

func AttachCartController(
	mux *mux.Router,
	service CartService,
	notifier *notification.Notifier,
	formatter *view.PriceFormatter,
) {
	controller := CartController{service: service, notifier: notifier, formatter: formatter}

	router := mux.PathPrefix("/cart").Subrouter()
	router.HandleFunc("", controller.FindCart).Methods(http.MethodGet)
	router.HandleFunc("/header", controller.FindHeader).Methods(http.MethodGet)
	router.HandleFunc("/products", controller.AddProduct).Methods(http.MethodPost)
	router.HandleFunc("/products/{productId}", controller.UpdateProductAmount).
		Methods(http.MethodPut)
	router.HandleFunc("/products/{productId}", controller.RemoveProduct).
		Methods(http.MethodDelete)
	router.HandleFunc("/products/{productId}/increment", controller.IncrementProduct).
		Methods(http.MethodPost)
	router.HandleFunc("/products/{productId}/decrement", controller.DecrementProduct).
		Methods(http.MethodPost)

	mux.HandleFunc("/notifications", controller.DrainNotifications).Methods(http.MethodGet)
}

func (ctrl CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindCart").
		Str(log.KeyProcess, "building cart page").
		Logger()

	logger.Info().Msg("building cart page")
	inHttp.WriteJsonResponse(
		c,
		w,
		map[string]string{},
		inHttp.Success("successfully found cart", ctrl.cartData()),
	)
	logger.Info().Msg("built cart page")
}

func (ctrl CartController) FindHeader(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindHeader")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindHeader").
		Str(log.KeyProcess, "building header").
		Logger()

	logger.Info().Msg("building header")
	header := view.NewHeader(ctrl.service.Cart())
	inHttp.WriteJsonResponse(
		c,
		w,
		map[string]string{},
		inHttp.Success("successfully found header", map[string]interface{}{"header": header}),
	)
	logger.Info().Int(log.KeyCartSize, header.Size).Msg("built header")
}

func (ctrl CartController) AddProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddProduct").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.AddProduct{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		ctrl.fail(c, w, span, notification.OperationAdd, http.StatusBadRequest, err)
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Info().Msg("validating request body")
	if err := validate.New().StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		ctrl.fail(c, w, span, notification.OperationAdd, http.StatusBadRequest, err)
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().
		Str(log.KeyProcess, "adding product").
		Int64(log.KeyProductID, reqBody.ProductID).
		Logger()
	logger.Info().Msg("adding product")
	c = logger.WithContext(c)
	if err := ctrl.service.AddProduct(c, reqBody.ProductID); err != nil {
		err = fmt.Errorf("failed adding productId=%d with error=%w", reqBody.ProductID, err)
		ctrl.fail(c, w, span, notification.OperationAdd, statusCode(err), err)
		return
	}
	logger.Info().Msg("added product")

	inHttp.WriteJsonResponse(
		c,
		w,
		map[string]string{},
		inHttp.Success("successfully added product", ctrl.cartData()),
	)
}

func (ctrl CartController) UpdateProductAmount(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateProductAmount")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController UpdateProductAmount").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing productId").Logger()
	logger.Info().Msg("parsing productId")
	productID, err := productIDFromPath(r)
	if err != nil {
		ctrl.fail(c, w, span, notification.OperationUpdate, http.StatusBadRequest, err)
		return
	}
	span.SetAttributes(attribute.Int64(log.KeyProductID, productID))
	logger = logger.With().Int64(log.KeyProductID, productID).Logger()
	logger.Info().Msg("parsed productId")

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.UpdateProductAmount{}
	if err = json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		ctrl.fail(c, w, span, notification.OperationUpdate, http.StatusBadRequest, err)
		return
	}
	reqBody.ProductID = productID
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Info().Msg("validating request body")
	if err = validate.New().StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		ctrl.fail(c, w, span, notification.OperationUpdate, http.StatusBadRequest, err)
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().
		Str(log.KeyProcess, "updating product amount").
		Int(log.KeyAmount, reqBody.Amount).
		Logger()
	logger.Info().Msg("updating product amount")
	c = logger.WithContext(c)
	if err = ctrl.service.UpdateProductAmount(c, reqBody); err != nil {
		err = fmt.Errorf("failed updating productId=%d with error=%w", productID, err)
		ctrl.fail(c, w, span, notification.OperationUpdate, statusCode(err), err)
		return
	}
	logger.Info().Msg("updated product amount")

	inHttp.WriteJsonResponse(
		c,
		w,
		map[string]string{},
		inHttp.Success("successfully updated product amount", ctrl.cartData()),
	)
}

func (ctrl CartController) IncrementProduct(w http.ResponseWriter, r *http.Request) {
	ctrl.step(w, r, "CartController IncrementProduct", ctrl.service.IncrementProduct)
}

func (ctrl CartController) DecrementProduct(w http.ResponseWriter, r *http.Request) {
	ctrl.step(w, r, "CartController DecrementProduct", ctrl.service.DecrementProduct)
}

func (ctrl CartController) step(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	fn func(context.Context, int64) error,
) {
	c, span := otel.Tracer.Start(r.Context(), name)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, name).
		Str(log.KeyProcess, "parsing productId").
		Logger()

	logger.Info().Msg("parsing productId")
	productID, err := productIDFromPath(r)
	if err != nil {
		ctrl.fail(c, w, span, notification.OperationUpdate, http.StatusBadRequest, err)
		return
	}
	span.SetAttributes(attribute.Int64(log.KeyProductID, productID))
	logger = logger.With().Int64(log.KeyProductID, productID).Logger()
	logger.Info().Msg("parsed productId")

	logger = logger.With().Str(log.KeyProcess, "stepping product amount").Logger()
	logger.Info().Msg("stepping product amount")
	c = logger.WithContext(c)
	if err = fn(c, productID); err != nil {
		err = fmt.Errorf("failed stepping productId=%d with error=%w", productID, err)
		ctrl.fail(c, w, span, notification.OperationUpdate, statusCode(err), err)
		return
	}
	logger.Info().Msg("stepped product amount")

	inHttp.WriteJsonResponse(
		c,
		w,
		map[string]string{},
		inHttp.Success("successfully updated product amount", ctrl.cartData()),
	)
}

func (ctrl CartController) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveProduct").
		Str(log.KeyProcess, "parsing productId").
		Logger()

	logger.Info().Msg("parsing productId")
	productID, err := productIDFromPath(r)
	if err != nil {
		ctrl.fail(c, w, span, notification.OperationRemove, http.StatusBadRequest, err)
		return
	}
	span.SetAttributes(attribute.Int64(log.KeyProductID, productID))
	logger = logger.With().Int64(log.KeyProductID, productID).Logger()
	logger.Info().Msg("parsed productId")

	logger = logger.With().Str(log.KeyProcess, "removing product").Logger()
	logger.Info().Msg("removing product")
	c = logger.WithContext(c)
	if err = ctrl.service.RemoveProduct(c, productID); err != nil {
		err = fmt.Errorf("failed removing productId=%d with error=%w", productID, err)
		ctrl.fail(c, w, span, notification.OperationRemove, statusCode(err), err)
		return
	}
	logger.Info().Msg("removed product")

	inHttp.WriteJsonResponse(
		c,
		w,
		map[string]string{},
		inHttp.Success("successfully removed product", ctrl.cartData()),
	)
}

func (ctrl CartController) DrainNotifications(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController DrainNotifications")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController DrainNotifications").
		Str(log.KeyProcess, "draining notifications").
		Logger()

	logger.Info().Msg("draining notifications")
	notifications := ctrl.notifier.Drain()
	logger.Info().Int(log.KeyCount, len(notifications)).Msg("drained notifications")

	inHttp.WriteJsonResponse(
		c,
		w,
		map[string]string{},
		inHttp.Success(
			"successfully drained notifications",
			map[string]interface{}{"notifications": notifications},
		),
	)
}

func (ctrl CartController) cartData() map[string]interface{} {
	cart := ctrl.service.Cart()
	return map[string]interface{}{
		"cart":   view.NewCartPage(cart, ctrl.formatter),
		"header": view.NewHeader(cart),
	}
}

// fail records err, pushes the user facing notification and answers with its message.
func (ctrl CartController) fail(
	c context.Context,
	w http.ResponseWriter,
	span trace.Span,
	op notification.Operation,
	statusCode int,
	err error,
) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyOperation, string(op)).
		Int(log.KeyResponseStatusCode, statusCode).
		Logger()

	commonErrors.HandleError(err, span)
	logger.Error().Err(err).Msg(err.Error())
	n, _ := ctrl.notifier.Notify(c, op, err)
	inHttp.WriteJsonResponse(c, w, map[string]string{}, inHttp.Failed(statusCode, n.Message))
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, commonErrors.ErrOutOfStock):
		return http.StatusConflict
	case errors.Is(err, commonErrors.ErrCartEntryNotFound),
		errors.Is(err, commonErrors.ErrProductNotFound),
		errors.Is(err, commonErrors.ErrStockNotFound):
		return http.StatusNotFound
	case errors.Is(err, commonErrors.ErrInvalidProductID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
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
