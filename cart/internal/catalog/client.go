package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/storefront/catalog/pkg/response"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/config"
	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
)

var errNotFound = errors.New("resource not found")

// Client is a thin wrapper over the remote catalog and stock endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.Catalog) *Client {
	return NewClientWithHTTP(cfg.BaseURL, &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (cl *Client) Stock(c context.Context, productID int64) (response.Stock, error) {
	c, span := otel.Tracer.Start(
		c,
		"CatalogClient Stock",
		trace.WithAttributes(attribute.Int64(log.KeyProductID, productID)),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogClient Stock").
		Int64(log.KeyProductID, productID).
		Logger()

	stock := response.Stock{}
	err := cl.get(c, fmt.Sprintf("/stock/%d", productID), &stock)
	if errors.Is(err, errNotFound) {
		err = fmt.Errorf("failed finding stock of productId=%d with error=%w", productID, commonErrors.ErrStockNotFound)
	}
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Stock{}, err
	}
	logger.Debug().Int(log.KeyStock, stock.Amount).Msg("found stock")

	return stock, nil
}

func (cl *Client) Product(c context.Context, productID int64) (response.Product, error) {
	c, span := otel.Tracer.Start(
		c,
		"CatalogClient Product",
		trace.WithAttributes(attribute.Int64(log.KeyProductID, productID)),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogClient Product").
		Int64(log.KeyProductID, productID).
		Logger()

	product := response.Product{}
	err := cl.get(c, fmt.Sprintf("/products/%d", productID), &product)
	if err == nil && product.ID == 0 {
		err = errNotFound
	}
	if errors.Is(err, errNotFound) {
		err = fmt.Errorf("failed finding productId=%d with error=%w", productID, commonErrors.ErrProductNotFound)
	}
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Debug().Any(log.KeyProduct, product).Msg("found product")

	return product, nil
}

func (cl *Client) Products(c context.Context) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "CatalogClient Products")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogClient Products").
		Logger()

	products := []response.Product{}
	if err := cl.get(c, "/products", &products); err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Debug().Int(log.KeyProducts, len(products)).Msg("found products")

	return products, nil
}

func (cl *Client) get(c context.Context, path string, v interface{}) error {
	req, err := http.NewRequestWithContext(c, http.MethodGet, cl.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed creating request to path=%s with error=%w", path, err)
	}
	req.Header.Set("Accept", inHttp.ValueHeaderApplicationJson)
	if requestID := log.RequestIDFromContext(c); requestID != "" {
		req.Header.Set(inHttp.KeyHeaderRequestID, requestID)
	}

	resp, err := cl.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed requesting path=%s with error=%w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("catalog returned statusCode=%d for path=%s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed reading response of path=%s with error=%w", path, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return errNotFound
	}
	if err = json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed decoding response of path=%s with error=%w", path, err)
	}
	return nil
}
