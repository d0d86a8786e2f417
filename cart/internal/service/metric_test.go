package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/internal/log"
)

func TestOperationsAreRecordedByKind(t *testing.T) {
	c := context.Background()
	f := newFakeCatalog()
	svc, _, _ := setup(t)(c, []response.CartEntry{entry(f, 2, 1)})

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(c)
	operations, err := provider.Meter("test").Int64Counter("cart.operations")
	require.NoError(t, err)
	svc.operations = operations

	require.NoError(t, svc.IncrementProduct(c, 2))
	require.NoError(t, svc.DecrementProduct(c, 2))
	require.Error(t, svc.IncrementProduct(c, 1))

	rm := metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(c, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)
	sum, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	require.True(t, ok)

	counts := map[string]int64{}
	for _, dp := range sum.DataPoints {
		operation, _ := dp.Attributes.Value(attribute.Key(log.KeyOperation))
		result, _ := dp.Attributes.Value(attribute.Key("result"))
		counts[operation.AsString()+" "+result.AsString()] += dp.Value
	}
	assert.Equal(t, map[string]int64{
		OperationIncrement + " success": 1,
		OperationDecrement + " success": 1,
		OperationIncrement + " failed":  1,
	}, counts)
}
