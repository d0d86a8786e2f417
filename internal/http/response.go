package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/otel"
)

func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	body map[string]interface{},
) {
	c, span := otel.Tracer.Start(c, "WriteJsonResponse")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str("tag", "WriteJsonResponse").Logger()

	w.Header().Set(KeyHeaderContentType, ValueHeaderApplicationJson)
	for k, v := range header {
		w.Header().Add(k, v)
	}

	if v, ok := body["statusCode"]; ok {
		w.WriteHeader(v.(int))
	}

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
}

// WriteRawJson writes v as the whole body, without the status envelope.
func WriteRawJson(c context.Context, w http.ResponseWriter, statusCode int, v interface{}) {
	c, span := otel.Tracer.Start(c, "WriteRawJson")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str("tag", "WriteRawJson").Logger()

	w.Header().Set(KeyHeaderContentType, ValueHeaderApplicationJson)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
}

func Failed(statusCode int, message string) map[string]interface{} {
	return map[string]interface{}{
		"status":     StatusFailed,
		"statusCode": statusCode,
		"message":    message,
	}
}

func Success(message string, data map[string]interface{}) map[string]interface{} {
	body := map[string]interface{}{
		"status":     StatusSuccess,
		"statusCode": http.StatusOK,
		"message":    message,
	}
	if data != nil {
		body["data"] = data
	}
	return body
}
